package common

import "fmt"

// Color is an RGB color as understood by the server, each channel in the range
// 0 to 255.
type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// Slice returns the color as the [r,g,b] triplet used on the wire
func (c Color) Slice() []int {
	return []int{int(c.Red), int(c.Green), int(c.Blue)}
}

func (c Color) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.Red, c.Green, c.Blue)
}
