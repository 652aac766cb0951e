package gles

import "github.com/richinsley/gl2jni/logging"

// CheckError drains the driver's error queue, logging each code against op.
// Driver errors are diagnostic only; the drained codes are returned so
// callers and tests can inspect them.
func CheckError(f Functions, op string) []Enum {
	var codes []Enum
	for e := f.GetError(); e != NO_ERROR; e = f.GetError() {
		logging.Info("after %s() glError (0x%x)", op, uint32(e))
		codes = append(codes, e)
	}
	return codes
}

// LogString logs one of the driver identification strings.
func LogString(f Functions, name string, s Enum) {
	logging.Info("GL %s = %s", name, f.GetString(s))
}
