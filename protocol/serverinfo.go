package protocol

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pdf/gohyperion/common"
)

// InfoMarker opens the info object in a serverinfo response.  Anything the
// server wrote before it is skipped.
const InfoMarker = `{"info":{`

// ServerInfo is the reply to a serverinfo command
type ServerInfo struct {
	Info    Info `json:"info"`
	Success bool `json:"success"`
}

// Info describes the current state of the server
type Info struct {
	Hostname       string         `json:"hostname"`
	Build          []Build        `json:"hyperion_build"`
	Priorities     []Priority     `json:"priorities"`
	Transform      []Transform    `json:"transform"`
	Temperature    []Correction   `json:"temperature"`
	Adjustment     []Adjustment   `json:"adjustment"`
	Correction     []Correction   `json:"correction"`
	Effects        []Effect       `json:"effects"`
	ActiveEffects  []ActiveEffect `json:"activeEffects"`
	ActiveLedColor []LedColor     `json:"activeLedColor"`
}

// Build identifies the server build
type Build struct {
	Version string `json:"version"`
	Time    string `json:"time"`
}

// Priority is a source currently registered with the server
type Priority struct {
	Priority   int    `json:"priority"`
	DurationMs int64  `json:"duration_ms,omitempty"`
	Owner      string `json:"owner,omitempty"`
	Origin     string `json:"origin,omitempty"`
	Active     bool   `json:"active,omitempty"`
	Visible    bool   `json:"visible,omitempty"`
}

// Effect is an effect declared by the server
type Effect struct {
	Name   string                 `json:"name"`
	Script string                 `json:"script"`
	Args   map[string]interface{} `json:"args"`
}

// ActiveEffect is an effect currently running on the server
type ActiveEffect struct {
	Script   string                 `json:"script"`
	Args     map[string]interface{} `json:"args"`
	Priority int                    `json:"priority"`
	Timeout  int64                  `json:"timeout,omitempty"`
}

// Transform holds the color transform parameters identified by ID
type Transform struct {
	ID               string     `json:"id"`
	Blacklevel       [3]float64 `json:"blacklevel"`
	Gamma            [3]float64 `json:"gamma"`
	LuminanceGain    float64    `json:"luminanceGain"`
	LuminanceMinimum float64    `json:"luminanceMinimum"`
	SaturationGain   float64    `json:"saturationGain"`
	SaturationLGain  float64    `json:"saturationLGain"`
	Threshold        [3]float64 `json:"threshold"`
	ValueGain        float64    `json:"valueGain"`
	Whitelevel       [3]float64 `json:"whitelevel"`
}

// Correction holds per-channel correction values, used for both color
// correction and color temperature
type Correction struct {
	ID               string `json:"id"`
	CorrectionValues [3]int `json:"correctionValues"`
}

// Adjustment maps each primary to the RGB value it should be rendered as
type Adjustment struct {
	ID          string `json:"id"`
	RedAdjust   [3]int `json:"redAdjust"`
	GreenAdjust [3]int `json:"greenAdjust"`
	BlueAdjust  [3]int `json:"blueAdjust"`
}

// LedColor is the active static color in the formats reported by the server
type LedColor struct {
	RGB []int     `json:"RGB Value,omitempty"`
	HEX []string  `json:"HEX Value,omitempty"`
	HSL []float64 `json:"HSL Value,omitempty"`
}

// ParseServerInfo decodes a raw serverinfo response.  Decoding starts at the
// first InfoMarker, and stops at the end of the info object.
func ParseServerInfo(raw string) (*ServerInfo, error) {
	idx := strings.Index(raw, InfoMarker)
	if idx < 0 {
		return nil, &common.ParseError{Reason: `response contains no info object`}
	}
	info := new(ServerInfo)
	dec := json.NewDecoder(strings.NewReader(raw[idx:]))
	if err := dec.Decode(info); err != nil {
		return nil, &common.ParseError{Reason: `invalid info object`, Err: err}
	}
	return info, nil
}

// EffectNames returns the names of all declared effects
func (i *Info) EffectNames() []string {
	names := make([]string, len(i.Effects))
	for n, e := range i.Effects {
		names[n] = e.Name
	}
	return names
}

// ActiveEffectNames resolves each active effect to the name of the declared
// effect with the same script and args.  If any active effect matches no
// declaration, a *common.LookupError listing the unmatched entries is
// returned.
func (i *Info) ActiveEffectNames() ([]string, error) {
	names := make([]string, 0, len(i.ActiveEffects))
	var unmatched []ActiveEffect
	for _, active := range i.ActiveEffects {
		effect, ok := i.findEffect(active)
		if !ok {
			unmatched = append(unmatched, active)
			continue
		}
		names = append(names, effect.Name)
	}
	if len(unmatched) > 0 {
		b, err := json.MarshalIndent(unmatched, ``, `    `)
		if err != nil {
			b = []byte(fmt.Sprintf("%+v", unmatched))
		}
		return names, &common.LookupError{Unmatched: string(b)}
	}
	return names, nil
}

func (i *Info) findEffect(active ActiveEffect) (Effect, bool) {
	for _, e := range i.Effects {
		if e.Script == active.Script && argsEqual(e.Args, active.Args) {
			return e, true
		}
	}
	return Effect{}, false
}

// argsEqual compares decoded effect arguments, treating absent and empty
// argument objects as equal
func argsEqual(a, b map[string]interface{}) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}

// Color returns the RGB value as a common.Color
func (l LedColor) Color() (common.Color, error) {
	if len(l.RGB) != 3 {
		return common.Color{}, common.ErrNoActiveColor
	}
	return common.Color{Red: clamp(l.RGB[0]), Green: clamp(l.RGB[1]), Blue: clamp(l.RGB[2])}, nil
}

// Hex returns the color in the server's 0xRRGGBB notation, deriving it from
// the RGB value when the server did not supply one
func (l LedColor) Hex() (string, error) {
	if len(l.HEX) > 0 {
		return l.HEX[0], nil
	}
	c, err := l.colorful()
	if err != nil {
		return ``, err
	}
	return `0x` + strings.ToUpper(strings.TrimPrefix(c.Hex(), `#`)), nil
}

// HSL returns hue in degrees, saturation and lightness in [0,1], deriving
// them from the RGB value when the server did not supply them
func (l LedColor) HSL() ([3]float64, error) {
	if len(l.HSL) == 3 {
		return [3]float64{l.HSL[0], l.HSL[1], l.HSL[2]}, nil
	}
	c, err := l.colorful()
	if err != nil {
		return [3]float64{}, err
	}
	h, s, lum := c.Hsl()
	return [3]float64{h, s, lum}, nil
}

func (l LedColor) colorful() (colorful.Color, error) {
	c, err := l.Color()
	if err != nil {
		return colorful.Color{}, err
	}
	return colorful.Color{
		R: float64(c.Red) / 255,
		G: float64(c.Green) / 255,
		B: float64(c.Blue) / 255,
	}, nil
}

func clamp(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
