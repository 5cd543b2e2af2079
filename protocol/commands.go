package protocol

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/pdf/gohyperion/common"
)

// ColorCommand sets a static color, or a full LED frame when Color holds one
// triplet per LED
type ColorCommand struct {
	Command  string `json:"command"`
	Priority int    `json:"priority"`
	Color    []int  `json:"color"`
	Duration int64  `json:"duration,omitempty"`
}

// Name implements Command
func (c *ColorCommand) Name() string { return c.Command }

// EffectCommand starts a named effect
type EffectCommand struct {
	Command  string      `json:"command"`
	Effect   EffectParam `json:"effect"`
	Priority int         `json:"priority"`
	Duration int64       `json:"duration,omitempty"`
}

// EffectParam names an effect and optionally overrides its arguments
type EffectParam struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args,omitempty"`
}

// Name implements Command
func (c *EffectCommand) Name() string { return c.Command }

// ClearCommand clears the source at Priority
type ClearCommand struct {
	Command  string `json:"command"`
	Priority int    `json:"priority"`
}

// Name implements Command
func (c *ClearCommand) Name() string { return c.Command }

// SimpleCommand carries no payload, used for clearall and serverinfo
type SimpleCommand struct {
	Command string `json:"command"`
}

// Name implements Command
func (c *SimpleCommand) Name() string { return c.Command }

// ImageCommand sends an RGB888 image, encoded as base64
type ImageCommand struct {
	Command     string `json:"command"`
	ImageWidth  int    `json:"imagewidth"`
	ImageHeight int    `json:"imageheight"`
	ImageData   string `json:"imagedata"`
	Priority    int    `json:"priority"`
	Duration    int64  `json:"duration,omitempty"`
}

// Name implements Command
func (c *ImageCommand) Name() string { return c.Command }

// TransformCommand updates a color transform
type TransformCommand struct {
	Command   string    `json:"command"`
	Transform Transform `json:"transform"`
}

// Name implements Command
func (c *TransformCommand) Name() string { return c.Command }

// CorrectionCommand updates a color correction
type CorrectionCommand struct {
	Command    string     `json:"command"`
	Correction Correction `json:"correction"`
}

// Name implements Command
func (c *CorrectionCommand) Name() string { return c.Command }

// TemperatureCommand updates a color temperature
type TemperatureCommand struct {
	Command     string     `json:"command"`
	Temperature Correction `json:"temperature"`
}

// Name implements Command
func (c *TemperatureCommand) Name() string { return c.Command }

// AdjustmentCommand updates a color adjustment
type AdjustmentCommand struct {
	Command    string     `json:"command"`
	Adjustment Adjustment `json:"adjustment"`
}

// Name implements Command
func (c *AdjustmentCommand) Name() string { return c.Command }

// NewColor returns a command setting all LEDs to color
func NewColor(color common.Color, priority int, duration time.Duration) *ColorCommand {
	return &ColorCommand{
		Command:  CommandColor,
		Priority: priority,
		Color:    color.Slice(),
		Duration: milliseconds(duration),
	}
}

// NewLEDFrame returns a color command carrying one value per channel per LED,
// laid out as r,g,b,r,g,b...
func NewLEDFrame(data []byte, priority int, duration time.Duration) *ColorCommand {
	values := make([]int, len(data))
	for i, v := range data {
		values[i] = int(v)
	}
	return &ColorCommand{
		Command:  CommandColor,
		Priority: priority,
		Color:    values,
		Duration: milliseconds(duration),
	}
}

// NewEffect returns a command starting the named effect.  Args may be nil to
// use the effect's declared arguments.
func NewEffect(name string, args map[string]interface{}, priority int, duration time.Duration) *EffectCommand {
	return &EffectCommand{
		Command:  CommandEffect,
		Effect:   EffectParam{Name: name, Args: args},
		Priority: priority,
		Duration: milliseconds(duration),
	}
}

// NewClear returns a command clearing the given priority
func NewClear(priority int) *ClearCommand {
	return &ClearCommand{Command: CommandClear, Priority: priority}
}

// NewClearAll returns a command clearing every priority
func NewClearAll() *SimpleCommand {
	return &SimpleCommand{Command: CommandClearAll}
}

// NewServerInfo returns a command requesting the server state
func NewServerInfo() *SimpleCommand {
	return &SimpleCommand{Command: CommandServerInfo}
}

// NewImage returns a command sending raw RGB888 pixel data of the given
// dimensions.  The data length must be exactly width*height*3.
func NewImage(data []byte, width, height, priority int, duration time.Duration) (*ImageCommand, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	if len(data) != width*height*3 {
		return nil, fmt.Errorf("image data is %d bytes, expected %d for %dx%d RGB888", len(data), width*height*3, width, height)
	}
	return &ImageCommand{
		Command:     CommandImage,
		ImageWidth:  width,
		ImageHeight: height,
		ImageData:   base64.StdEncoding.EncodeToString(data),
		Priority:    priority,
		Duration:    milliseconds(duration),
	}, nil
}

// NewTransform returns a command updating the transform identified by t.ID
func NewTransform(t Transform) *TransformCommand {
	return &TransformCommand{Command: CommandTransform, Transform: t}
}

// NewCorrection returns a command updating the correction identified by id
func NewCorrection(id string, color common.Color) *CorrectionCommand {
	return &CorrectionCommand{
		Command:    CommandCorrection,
		Correction: Correction{ID: id, CorrectionValues: triplet(color)},
	}
}

// NewTemperature returns a command updating the temperature identified by id
func NewTemperature(id string, color common.Color) *TemperatureCommand {
	return &TemperatureCommand{
		Command:     CommandTemperature,
		Temperature: Correction{ID: id, CorrectionValues: triplet(color)},
	}
}

// NewAdjustment returns a command updating the adjustment identified by a.ID
func NewAdjustment(a Adjustment) *AdjustmentCommand {
	return &AdjustmentCommand{Command: CommandAdjustment, Adjustment: a}
}

func triplet(c common.Color) [3]int {
	return [3]int{int(c.Red), int(c.Green), int(c.Blue)}
}
