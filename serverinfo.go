package gohyperion

import (
	"github.com/pdf/gohyperion/common"
	"github.com/pdf/gohyperion/protocol"
)

// RequestServerInfo sends a serverinfo request and returns the raw response,
// or an empty string if the request could not be sent or nothing was
// received.
func (c *Client) RequestServerInfo() string {
	raw, _ := c.requestServerInfo()
	return raw
}

func (c *Client) requestServerInfo() (string, error) {
	if err := c.SendCommand(protocol.NewServerInfo()); err != nil {
		return ``, err
	}
	return c.Receive(c.receiveTimeout), nil
}

// ServerInfo requests and parses the current server state.  Every call queries
// the server, nothing is cached.
func (c *Client) ServerInfo() (*protocol.ServerInfo, error) {
	raw, err := c.requestServerInfo()
	if err != nil {
		return nil, err
	}
	return protocol.ParseServerInfo(raw)
}

func (c *Client) info() (*protocol.Info, error) {
	si, err := c.ServerInfo()
	if err != nil {
		return nil, err
	}
	return &si.Info, nil
}

// Effects returns all effects declared by the server
func (c *Client) Effects() ([]protocol.Effect, error) {
	info, err := c.info()
	if err != nil {
		return nil, err
	}
	return info.Effects, nil
}

// EffectNames returns the names of all effects declared by the server
func (c *Client) EffectNames() ([]string, error) {
	info, err := c.info()
	if err != nil {
		return nil, err
	}
	return info.EffectNames(), nil
}

// ActiveEffects returns the effects currently running on the server
func (c *Client) ActiveEffects() ([]protocol.ActiveEffect, error) {
	info, err := c.info()
	if err != nil {
		return nil, err
	}
	return info.ActiveEffects, nil
}

// ActiveEffectNames returns the names of the effects currently running on the
// server.  Returns a *common.LookupError if a running effect does not match
// any declared effect, which happens when it was started with custom args.
func (c *Client) ActiveEffectNames() ([]string, error) {
	info, err := c.info()
	if err != nil {
		return nil, err
	}
	return info.ActiveEffectNames()
}

// ActiveColor returns the active static colors in every format the server
// reports
func (c *Client) ActiveColor() ([]protocol.LedColor, error) {
	info, err := c.info()
	if err != nil {
		return nil, err
	}
	return info.ActiveLedColor, nil
}

func (c *Client) activeColor() (protocol.LedColor, error) {
	colors, err := c.ActiveColor()
	if err != nil {
		return protocol.LedColor{}, err
	}
	if len(colors) == 0 {
		return protocol.LedColor{}, common.ErrNoActiveColor
	}
	return colors[0], nil
}

// ActiveColorRGB returns the active static color
func (c *Client) ActiveColorRGB() (common.Color, error) {
	color, err := c.activeColor()
	if err != nil {
		return common.Color{}, err
	}
	return color.Color()
}

// ActiveColorHex returns the active static color in 0xRRGGBB notation
func (c *Client) ActiveColorHex() (string, error) {
	color, err := c.activeColor()
	if err != nil {
		return ``, err
	}
	return color.Hex()
}

// ActiveColorHSL returns the active static color as hue, saturation and
// lightness
func (c *Client) ActiveColorHSL() ([3]float64, error) {
	color, err := c.activeColor()
	if err != nil {
		return [3]float64{}, err
	}
	return color.HSL()
}

// Transform returns the configured color transforms
func (c *Client) Transform() ([]protocol.Transform, error) {
	info, err := c.info()
	if err != nil {
		return nil, err
	}
	return info.Transform, nil
}

// Temperature returns the configured color temperatures
func (c *Client) Temperature() ([]protocol.Correction, error) {
	info, err := c.info()
	if err != nil {
		return nil, err
	}
	return info.Temperature, nil
}

// Adjustment returns the configured color adjustments
func (c *Client) Adjustment() ([]protocol.Adjustment, error) {
	info, err := c.info()
	if err != nil {
		return nil, err
	}
	return info.Adjustment, nil
}

// Correction returns the configured color corrections
func (c *Client) Correction() ([]protocol.Correction, error) {
	info, err := c.info()
	if err != nil {
		return nil, err
	}
	return info.Correction, nil
}

// Priorities returns the sources currently registered with the server
func (c *Client) Priorities() ([]protocol.Priority, error) {
	info, err := c.info()
	if err != nil {
		return nil, err
	}
	return info.Priorities, nil
}

// Hostname returns the name of the host the server runs on
func (c *Client) Hostname() (string, error) {
	info, err := c.info()
	if err != nil {
		return ``, err
	}
	return info.Hostname, nil
}

// BuildInfo returns the server build information
func (c *Client) BuildInfo() ([]protocol.Build, error) {
	info, err := c.info()
	if err != nil {
		return nil, err
	}
	return info.Build, nil
}
