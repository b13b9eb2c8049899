package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/flwende/fp/internal/fplog"
)

func main() {
	app := &cli.Command{
		Name:  "fpbench",
		Usage: "benchmark driver for the block-compressed dense linear algebra engine",
		Flags: benchFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := fplog.ParseLevel(logLevel)
			var log fplog.Logger
			if logFormat == "json" {
				log = fplog.JSON(os.Stdout, level)
			} else {
				log = fplog.Text(os.Stderr, level)
			}
			return fplog.WithContext(ctx, log), nil
		},
		Action: runBenchmark,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
