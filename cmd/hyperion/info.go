package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdf/gohyperion/common"
)

var (
	cmdInfo = &cobra.Command{
		Use:     `info`,
		Short:   `print the server state as JSON`,
		PreRun:  setupClient,
		Run:     info,
		PostRun: closeClient,
	}

	cmdEffects = &cobra.Command{
		Use:     `effects`,
		Short:   `list the effects declared by the server`,
		PreRun:  setupClient,
		Run:     effects,
		PostRun: closeClient,
	}

	cmdActive = &cobra.Command{
		Use:     `active`,
		Short:   `list running effects and the active color`,
		PreRun:  setupClient,
		Run:     active,
		PostRun: closeClient,
	}

	cmdPriorities = &cobra.Command{
		Use:     `priorities`,
		Short:   `list the sources registered with the server`,
		PreRun:  setupClient,
		Run:     priorities,
		PostRun: closeClient,
	}
)

func info(c *cobra.Command, args []string) {
	si, err := client.ServerInfo()
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not get server info`)
	}
	printJSON(si.Info)
}

func effects(c *cobra.Command, args []string) {
	names, err := client.EffectNames()
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not get effects`)
	}
	fmt.Println(strings.Join(names, "\n"))
}

func active(c *cobra.Command, args []string) {
	names, err := client.ActiveEffectNames()
	var lookupErr *common.LookupError
	switch {
	case errors.As(err, &lookupErr):
		logger.Warnln(lookupErr.Error())
	case err != nil:
		logger.WithField(`error`, err).Fatalln(`Could not get active effects`)
	}
	for _, name := range names {
		fmt.Printf("effect: %s\n", name)
	}

	hex, err := client.ActiveColorHex()
	switch {
	case errors.Is(err, common.ErrNoActiveColor):
		fmt.Println(`color: none`)
	case err != nil:
		logger.WithField(`error`, err).Fatalln(`Could not get active color`)
	default:
		fmt.Printf("color: %s\n", hex)
	}
}

func priorities(c *cobra.Command, args []string) {
	list, err := client.Priorities()
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not get priorities`)
	}
	for _, p := range list {
		line := fmt.Sprintf("%d", p.Priority)
		if p.DurationMs > 0 {
			line += fmt.Sprintf("\t%dms", p.DurationMs)
		}
		if p.Owner != `` {
			line += "\t" + p.Owner
		}
		fmt.Println(line)
	}
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent(``, `  `)
	if err := enc.Encode(v); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not encode output`)
	}
}
