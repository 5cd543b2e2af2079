package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdf/gohyperion/layout"
)

var (
	flagHorizontal int
	flagVertical   int
	flagOutput     string

	cmdLayout = &cobra.Command{
		Use:   `layout`,
		Short: `generate the leds configuration of a serpentine LED matrix`,
		Run:   generateLayout,
	}
)

func init() {
	cmdLayout.Flags().IntVar(&flagHorizontal, `horizontal`, 16, `LEDs per row`)
	cmdLayout.Flags().IntVar(&flagVertical, `vertical`, 16, `number of rows, 0 for a single strip along the bottom`)
	cmdLayout.Flags().StringVarP(&flagOutput, `output`, `o`, ``, `write to this file instead of stdout`)
}

func generateLayout(c *cobra.Command, args []string) {
	l, err := layout.Matrix(flagHorizontal, flagVertical)
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Invalid layout`)
	}

	out := os.Stdout
	if flagOutput != `` {
		out, err = os.Create(flagOutput)
		if err != nil {
			logger.WithFields(logrus.Fields{
				`filename`: flagOutput,
				`error`:    err,
			}).Fatalln(`Could not open file`)
		}
		defer out.Close()
	}
	if err := l.WriteJSON(out); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not write layout`)
	}
}
