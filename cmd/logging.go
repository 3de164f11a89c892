package cmd

import (
	"os"

	"github.com/achilleasa/parallax/log"
	"github.com/urfave/cli"
)

var logger = log.New("parallax")

func setupLogging(ctx *cli.Context) {
	if file := ctx.GlobalString("log-file"); file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			logger.Warningf("could not open log file %s: %v", file, err)
		} else {
			log.SetSink(f)
		}
	}

	if name := ctx.GlobalString("log-level"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			logger.Warning(err.Error())
		} else {
			log.SetLevel(level)
		}
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
