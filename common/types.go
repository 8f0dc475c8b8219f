// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Color3 is an RGB color with float channels in the [0, 1] range.
type Color3 struct {
	R, G, B float32
}

// Color4 is an RGBA color with float channels in the [0, 1] range.
type Color4 struct {
	R, G, B, A float32
}

// Add returns the channel-wise sum of c and o.
func (c Color3) Add(o Color3) Color3 {
	return Color3{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns the channel-wise product of c and o.
func (c Color3) Mul(o Color3) Color3 {
	return Color3{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale returns c with every channel multiplied by s.
func (c Color3) Scale(s float32) Color3 {
	return Color3{c.R * s, c.G * s, c.B * s}
}

// Lerp linearly interpolates from c to o by t.
func (c Color3) Lerp(o Color3, t float32) Color3 {
	return Color3{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// Clamp returns c with every channel clamped to [0, 1].
func (c Color3) Clamp() Color3 {
	return Color3{Clamp(c.R, 0, 1), Clamp(c.G, 0, 1), Clamp(c.B, 0, 1)}
}

// WithAlpha extends c to a Color4.
func (c Color3) WithAlpha(a float32) Color4 {
	return Color4{c.R, c.G, c.B, a}
}

// Array returns the channels as a vector, as stored in GPU uniforms.
func (c Color3) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// RGB drops the alpha channel.
func (c Color4) RGB() Color3 {
	return Color3{c.R, c.G, c.B}
}

// Array returns the channels as a vector, as stored in GPU uniforms.
func (c Color4) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// Bytes quantizes the color to 8 bits per channel in R, G, B, A order.
// Channels are clamped first and rounded to nearest.
func (c Color4) Bytes() [4]byte {
	return [4]byte{ToByte(c.R), ToByte(c.G), ToByte(c.B), ToByte(c.A)}
}

// ToByte converts a [0, 1] channel value to an 8 bit value, rounding to nearest.
func ToByte(v float32) byte {
	return byte(Clamp(v, 0, 1)*255 + 0.5)
}
