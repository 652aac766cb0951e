// Package graphics describes a surface with a current GL ES 2.0 context.
package graphics

// Context is a GL ES context bound to a drawable surface.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the back buffer and processes pending events.
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
}
