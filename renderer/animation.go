package renderer

// greySteps is the number of 0.01 increments in one unit of luminance.
const greySteps = 100

// Grey is the background luminance. It rises by 0.01 per frame and drops
// back to 0 once it would exceed 1.0. The value is held as a count of
// hundredths so 1.00 is reached exactly.
type Grey struct {
	hundredths int
}

// Advance steps the counter and returns the new luminance.
func (g *Grey) Advance() float32 {
	g.hundredths++
	if g.hundredths > greySteps {
		g.hundredths = 0
	}
	return g.Value()
}

func (g Grey) Value() float32 {
	return float32(g.hundredths) / greySteps
}
