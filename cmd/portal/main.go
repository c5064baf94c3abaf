package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/school-portal/gateway"
	"github.com/jrsteele09/school-portal/internal/config"
	"github.com/jrsteele09/school-portal/portal"
	"github.com/jrsteele09/school-portal/sessions"
	"github.com/jrsteele09/school-portal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(os.Args); err != nil {
		if !errors.Is(err, errHelp) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c.GetLogLevel())

	store, closeStore, err := storage.Open(c)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Err(err).Msg("Failed to close session storage")
		}
	}()

	reg := prometheus.NewRegistry()
	gateway.RegisterCollectors(reg)
	if path := c.GetMetricsFile(); path != "" {
		defer func() {
			if err := writeMetrics(path, reg); err != nil {
				log.Err(err).Str("path", path).Msg("Failed to write metrics")
			}
		}()
	}

	gw := gateway.New(c, sessions.NewManager(store), gateway.WithNavigator(loginPrompt{out: os.Stderr}))
	cli := &commandLine{
		appName: c.GetAppName(),
		gw:      gw,
		client:  portal.New(gw),
		out:     os.Stdout,
	}
	return cli.run(args)
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

// writeMetrics saves the gathered counters to path for the node exporter's
// textfile collector or a later scrape.
func writeMetrics(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("prometheus.WriteToTextfile: %w", err)
	}
	return nil
}
