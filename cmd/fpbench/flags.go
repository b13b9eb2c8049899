package main

import (
	"runtime"

	"github.com/urfave/cli/v3"
)

var (
	threads   int64
	be        uint64
	bm        uint64
	logLevel  string
	logFormat string
	seed      int64
)

func benchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "threads",
			Usage:       "worker goroutine pool size",
			Value:       int64(runtime.NumCPU()),
			Destination: &threads,
		},
		&cli.Uint64Flag{
			Name:        "be",
			Usage:       "exponent bit width override (0 = canonical)",
			Destination: &be,
		},
		&cli.Uint64Flag{
			Name:        "bm",
			Usage:       "mantissa bit width override (0 = canonical)",
			Destination: &bm,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &logFormat,
		},
		&cli.Int64Flag{
			Name:        "seed",
			Usage:       "PRNG seed for reproducible matrix generation",
			Value:       42,
			Destination: &seed,
		},
	}
}
