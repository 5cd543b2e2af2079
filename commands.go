package gohyperion

import (
	"time"

	"github.com/pdf/gohyperion/common"
	"github.com/pdf/gohyperion/imagedata"
	"github.com/pdf/gohyperion/protocol"
)

// The commands below are fire-and-forget: none of them waits for a response.
// Each connects first if required, and returns common.ErrNotConnected without
// sending anything if that fails.  A duration of zero leaves the command
// active until cleared.

// SetColor sets all LEDs to color at the given priority
func (c *Client) SetColor(color common.Color, priority int, duration time.Duration) error {
	return c.SendCommand(protocol.NewColor(color, priority, duration))
}

// SetEffect starts the named effect.  Args overrides the effect's declared
// arguments, and may be nil.
func (c *Client) SetEffect(name string, args map[string]interface{}, priority int, duration time.Duration) error {
	return c.SendCommand(protocol.NewEffect(name, args, priority, duration))
}

// Clear clears the color or effect registered at priority
func (c *Client) Clear(priority int) error {
	return c.SendCommand(protocol.NewClear(priority))
}

// ClearAll clears every color and effect
func (c *Client) ClearAll() error {
	return c.SendCommand(protocol.NewClearAll())
}

// SetImage sends raw RGB888 pixel data of the given dimensions, which the
// server maps onto the LEDs
func (c *Client) SetImage(data []byte, width, height, priority int, duration time.Duration) error {
	cmd, err := protocol.NewImage(data, width, height, priority, duration)
	if err != nil {
		return err
	}
	return c.SendCommand(cmd)
}

// SetImageFile loads the image at path, fits it within width x height,
// changes its brightness by the given fraction in [-1,1] (0 for none) and
// sends it with SetImage
func (c *Client) SetImageFile(path string, width, height int, brightness float64, priority int, duration time.Duration) error {
	img, err := imagedata.Load(path, width, height, brightness)
	if err != nil {
		return err
	}
	return c.SetImage(img.Data, img.Width, img.Height, priority, duration)
}

// SetTransform updates the color transform identified by t.ID
func (c *Client) SetTransform(t protocol.Transform) error {
	return c.SendCommand(protocol.NewTransform(t))
}

// SetCorrection updates the color correction identified by id
func (c *Client) SetCorrection(id string, values common.Color) error {
	return c.SendCommand(protocol.NewCorrection(id, values))
}

// SetTemperature updates the color temperature identified by id
func (c *Client) SetTemperature(id string, values common.Color) error {
	return c.SendCommand(protocol.NewTemperature(id, values))
}

// SetAdjustment updates the color adjustment identified by a.ID
func (c *Client) SetAdjustment(a protocol.Adjustment) error {
	return c.SendCommand(protocol.NewAdjustment(a))
}

// SendLEDFrame sets each LED individually, data holding r,g,b for every LED in
// order
func (c *Client) SendLEDFrame(data []byte, priority int, duration time.Duration) error {
	return c.SendCommand(protocol.NewLEDFrame(data, priority, duration))
}
