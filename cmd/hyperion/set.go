package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdf/gohyperion/common"
	"github.com/pdf/gohyperion/protocol"
)

var (
	flagDuration   time.Duration
	flagEffectArgs string
	flagWidth      int
	flagHeight     int
	flagBrightness float64

	flagRedAdjust   []int
	flagGreenAdjust []int
	flagBlueAdjust  []int

	flagBlacklevel       []float64
	flagWhitelevel       []float64
	flagGamma            []float64
	flagThreshold        []float64
	flagLuminanceGain    float64
	flagLuminanceMinimum float64
	flagSaturationGain   float64
	flagSaturationLGain  float64
	flagValueGain        float64

	cmdColor = &cobra.Command{
		Use:     `color <red> <green> <blue>`,
		Short:   `set all LEDs to a color`,
		Args:    cobra.ExactArgs(3),
		PreRun:  setupClient,
		Run:     setColor,
		PostRun: closeClient,
	}

	cmdEffect = &cobra.Command{
		Use:     `effect <name>`,
		Short:   `start an effect`,
		Args:    cobra.ExactArgs(1),
		PreRun:  setupClient,
		Run:     effect,
		PostRun: closeClient,
	}

	cmdClear = &cobra.Command{
		Use:     `clear`,
		Short:   `clear the color or effect at --priority`,
		PreRun:  setupClient,
		Run:     clearPriority,
		PostRun: closeClient,
	}

	cmdClearAll = &cobra.Command{
		Use:     `clearall`,
		Short:   `clear all colors and effects`,
		PreRun:  setupClient,
		Run:     clearAll,
		PostRun: closeClient,
	}

	cmdImage = &cobra.Command{
		Use:     `image <file>`,
		Short:   `send an image file`,
		Args:    cobra.ExactArgs(1),
		PreRun:  setupClient,
		Run:     sendImage,
		PostRun: closeClient,
	}

	cmdTransform = &cobra.Command{
		Use:     `transform <id>`,
		Short:   `update a color transform`,
		Args:    cobra.ExactArgs(1),
		PreRun:  setupClient,
		Run:     transform,
		PostRun: closeClient,
	}

	cmdCorrection = &cobra.Command{
		Use:     `correction <id> <red> <green> <blue>`,
		Short:   `update a color correction`,
		Args:    cobra.ExactArgs(4),
		PreRun:  setupClient,
		Run:     correction,
		PostRun: closeClient,
	}

	cmdTemperature = &cobra.Command{
		Use:     `temperature <id> <red> <green> <blue>`,
		Short:   `update a color temperature`,
		Args:    cobra.ExactArgs(4),
		PreRun:  setupClient,
		Run:     temperature,
		PostRun: closeClient,
	}

	cmdAdjustment = &cobra.Command{
		Use:     `adjustment <id>`,
		Short:   `update a color adjustment`,
		Args:    cobra.ExactArgs(1),
		PreRun:  setupClient,
		Run:     adjustment,
		PostRun: closeClient,
	}
)

func init() {
	for _, c := range []*cobra.Command{cmdColor, cmdEffect, cmdImage} {
		c.Flags().DurationVarP(&flagDuration, `duration`, `d`, 0, `how long the command stays active, forever when zero`)
	}
	cmdEffect.Flags().StringVarP(&flagEffectArgs, `args`, `a`, ``, `effect arguments as a JSON object`)

	cmdImage.Flags().IntVar(&flagWidth, `width`, 64, `maximum width to scale the image to`)
	cmdImage.Flags().IntVar(&flagHeight, `height`, 64, `maximum height to scale the image to`)
	cmdImage.Flags().Float64Var(&flagBrightness, `brightness`, 0, `brightness change in [-1,1]`)

	cmdAdjustment.Flags().IntSliceVar(&flagRedAdjust, `red`, []int{255, 0, 0}, `RGB value red is rendered as`)
	cmdAdjustment.Flags().IntSliceVar(&flagGreenAdjust, `green`, []int{0, 255, 0}, `RGB value green is rendered as`)
	cmdAdjustment.Flags().IntSliceVar(&flagBlueAdjust, `blue`, []int{0, 0, 255}, `RGB value blue is rendered as`)

	f := cmdTransform.Flags()
	f.Float64SliceVar(&flagBlacklevel, `blacklevel`, []float64{0, 0, 0}, `per channel black level`)
	f.Float64SliceVar(&flagWhitelevel, `whitelevel`, []float64{1, 1, 1}, `per channel white level`)
	f.Float64SliceVar(&flagGamma, `gamma`, []float64{1, 1, 1}, `per channel gamma`)
	f.Float64SliceVar(&flagThreshold, `threshold`, []float64{0, 0, 0}, `per channel threshold`)
	f.Float64Var(&flagLuminanceGain, `luminance-gain`, 1, `luminance gain`)
	f.Float64Var(&flagLuminanceMinimum, `luminance-minimum`, 0, `luminance minimum`)
	f.Float64Var(&flagSaturationGain, `saturation-gain`, 1, `saturation gain`)
	f.Float64Var(&flagSaturationLGain, `saturation-l-gain`, 1, `saturation gain in HSL space`)
	f.Float64Var(&flagValueGain, `value-gain`, 1, `value gain`)
}

func setColor(c *cobra.Command, args []string) {
	col, err := parseColor(args)
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Invalid color`)
	}
	if err := client.SetColor(col, cfg.Priority, flagDuration); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not set color`)
	}
}

func effect(c *cobra.Command, args []string) {
	var effectArgs map[string]interface{}
	if flagEffectArgs != `` {
		if err := json.Unmarshal([]byte(flagEffectArgs), &effectArgs); err != nil {
			logger.WithField(`error`, err).Fatalln(`Invalid effect args`)
		}
	}
	if err := client.SetEffect(args[0], effectArgs, cfg.Priority, flagDuration); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not start effect`)
	}
}

func clearPriority(c *cobra.Command, args []string) {
	if err := client.Clear(cfg.Priority); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not clear priority`)
	}
}

func clearAll(c *cobra.Command, args []string) {
	if err := client.ClearAll(); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not clear`)
	}
}

func sendImage(c *cobra.Command, args []string) {
	err := client.SetImageFile(args[0], flagWidth, flagHeight, flagBrightness, cfg.Priority, flagDuration)
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not send image`)
	}
}

func transform(c *cobra.Command, args []string) {
	t := protocol.Transform{
		ID:               args[0],
		LuminanceGain:    flagLuminanceGain,
		LuminanceMinimum: flagLuminanceMinimum,
		SaturationGain:   flagSaturationGain,
		SaturationLGain:  flagSaturationLGain,
		ValueGain:        flagValueGain,
	}
	var err error
	for _, p := range []struct {
		name  string
		value []float64
		dst   *[3]float64
	}{
		{`blacklevel`, flagBlacklevel, &t.Blacklevel},
		{`whitelevel`, flagWhitelevel, &t.Whitelevel},
		{`gamma`, flagGamma, &t.Gamma},
		{`threshold`, flagThreshold, &t.Threshold},
	} {
		if *p.dst, err = floatTriplet(p.value); err != nil {
			logger.WithField(`error`, err).Fatalf("Invalid %s", p.name)
		}
	}
	if err := client.SetTransform(t); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not set transform`)
	}
}

func correction(c *cobra.Command, args []string) {
	col, err := parseColor(args[1:])
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Invalid correction`)
	}
	if err := client.SetCorrection(args[0], col); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not set correction`)
	}
}

func temperature(c *cobra.Command, args []string) {
	col, err := parseColor(args[1:])
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Invalid temperature`)
	}
	if err := client.SetTemperature(args[0], col); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not set temperature`)
	}
}

func adjustment(c *cobra.Command, args []string) {
	a := protocol.Adjustment{ID: args[0]}
	var err error
	if a.RedAdjust, err = intTriplet(flagRedAdjust); err == nil {
		if a.GreenAdjust, err = intTriplet(flagGreenAdjust); err == nil {
			a.BlueAdjust, err = intTriplet(flagBlueAdjust)
		}
	}
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Invalid adjustment`)
	}
	if err := client.SetAdjustment(a); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not set adjustment`)
	}
}

func parseColor(args []string) (common.Color, error) {
	var values [3]uint8
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return common.Color{}, fmt.Errorf("channel %d: %w", i, err)
		}
		values[i] = uint8(v)
	}
	return common.Color{Red: values[0], Green: values[1], Blue: values[2]}, nil
}

func intTriplet(values []int) ([3]int, error) {
	if len(values) != 3 {
		return [3]int{}, fmt.Errorf("expected 3 values, got %d", len(values))
	}
	for _, v := range values {
		if v < 0 || v > 255 {
			return [3]int{}, fmt.Errorf("value %d out of range [0,255]", v)
		}
	}
	return [3]int{values[0], values[1], values[2]}, nil
}

func floatTriplet(values []float64) ([3]float64, error) {
	if len(values) != 3 {
		return [3]float64{}, fmt.Errorf("expected 3 values, got %d", len(values))
	}
	return [3]float64{values[0], values[1], values[2]}, nil
}
