// Command hyperion allows performing basic operations on a Hyperion server
// over its JSON interface
package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pdf/gohyperion"
	"github.com/pdf/gohyperion/config"
)

var (
	client *gohyperion.Client
	cfg    config.Config

	flagConfig         string
	flagHost           string
	flagPort           int
	flagTimeout        time.Duration
	flagReceiveTimeout time.Duration
	flagPriority       int
	flagLogLevel       string
	flagLogFile        string

	logger = logrus.New()
	app    = &cobra.Command{
		Use:   `hyperion`,
		Short: `Control a Hyperion server over its JSON interface`,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			loadConfig(c)
			setLogger()
		},
	}

	cmdGenerateBashComp = &cobra.Command{
		Use:   `bashcomp <filename>`,
		Short: "generate bash completion at <file>",
		Run:   generateBashComp,
	}

	cmdGenerateDocs = &cobra.Command{
		Use:   `docs <path>`,
		Short: "generate markdown documentation at <path>",
		Run:   generateDocs,
	}
)

func init() {
	gohyperion.SetLogger(logger)

	flags := app.PersistentFlags()
	flags.StringVarP(&flagConfig, `config`, `c`, ``, `config file (TOML or YAML), defaults to `+config.DefaultPath)
	flags.StringVarP(&flagHost, `host`, `H`, ``, `server host`)
	flags.IntVarP(&flagPort, `port`, `p`, 0, `server JSON port`)
	flags.DurationVarP(&flagTimeout, `timeout`, `t`, 0, `connection timeout`)
	flags.DurationVar(&flagReceiveTimeout, `receive-timeout`, 0, `time to wait for the server to go quiet when reading responses`)
	flags.IntVarP(&flagPriority, `priority`, `P`, 0, `command priority, lower values win`)
	flags.StringVarP(&flagLogLevel, `log-level`, `L`, ``, `log level, one of: [debug,info,warn,error]`)
	flags.StringVar(&flagLogFile, `log-file`, ``, `write logs to this file, rotating it as it grows`)

	app.AddCommand(cmdInfo, cmdEffects, cmdActive, cmdPriorities)
	app.AddCommand(cmdColor, cmdEffect, cmdClear, cmdClearAll, cmdImage)
	app.AddCommand(cmdTransform, cmdCorrection, cmdTemperature, cmdAdjustment)
	app.AddCommand(cmdLayout, cmdUI)
	app.AddCommand(cmdGenerateBashComp)
	app.AddCommand(cmdGenerateDocs)
}

func main() {
	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(c *cobra.Command) {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		logger.WithFields(logrus.Fields{
			`filename`: flagConfig,
			`error`:    err,
		}).Fatalln(`Could not load config`)
	}
	flags := c.Flags()
	if flags.Changed(`host`) {
		cfg.Host = flagHost
	}
	if flags.Changed(`port`) {
		cfg.Port = flagPort
	}
	if flags.Changed(`timeout`) {
		cfg.ConnectTimeout = flagTimeout
	}
	if flags.Changed(`receive-timeout`) {
		cfg.ReceiveTimeout = flagReceiveTimeout
	}
	if flags.Changed(`priority`) {
		cfg.Priority = flagPriority
	}
	if flags.Changed(`log-level`) {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed(`log-file`) {
		cfg.Log.File = flagLogFile
	}
	if err := cfg.Validate(); err != nil {
		logger.WithField(`error`, err).Fatalln(`Invalid settings`)
	}
}

func setupClient(c *cobra.Command, args []string) {
	client = gohyperion.NewClient(cfg.Host, cfg.Port)
	client.SetConnectTimeout(cfg.ConnectTimeout)
	client.SetReceiveTimeout(cfg.ReceiveTimeout)
	if err := client.Open(cfg.ConnectTimeout); err != nil {
		logger.WithField(`error`, err).Fatalln(`Failed connecting to server`)
	}
}

func closeClient(c *cobra.Command, args []string) {
	if err := client.Close(false); err != nil {
		logger.WithField(`error`, err).Fatalln(`Failed closing client`)
	}
}

func generateBashComp(c *cobra.Command, args []string) {
	if len(args) != 1 {
		_ = c.Usage()
		fmt.Println()
		logger.Fatalln(`Missing filename`)
	}

	buf := new(bytes.Buffer)
	f, err := os.Create(args[0])
	if err != nil {
		logger.WithFields(logrus.Fields{
			`filename`: args[0],
			`error`:    err,
		}).Fatalln(`Could not open file`)
	}
	defer f.Close()
	if err := app.GenBashCompletion(buf); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not generate completion`)
	}
	if _, err := buf.WriteTo(f); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not write completion`)
	}
}

func generateDocs(c *cobra.Command, args []string) {
	if len(args) != 1 {
		_ = c.Usage()
		fmt.Println()
		logger.Fatalln(`Missing output path`)
	}

	path := args[0]
	if path[len(path)-1] != os.PathSeparator {
		path += string(os.PathSeparator)
	}
	if err := doc.GenMarkdownTree(app, path); err != nil {
		logger.WithField(`error`, err).Fatalln(`Could not generate docs`)
	}
}

func setLogger() {
	switch cfg.Log.Level {
	case `debug`:
		logger.Level = logrus.DebugLevel
	case `info`:
		logger.Level = logrus.InfoLevel
	case `warn`:
		logger.Level = logrus.WarnLevel
	case `error`:
		logger.Level = logrus.ErrorLevel
	default:
		logger.Level = logrus.InfoLevel
	}
	if cfg.Log.File != `` {
		logger.Out = &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
		}
		logger.Formatter = &logrus.JSONFormatter{}
	}
}
