package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/pkmnkit/internal/platform/cmd"
	"github.com/louisbranch/pkmnkit/internal/platform/config"
	"github.com/louisbranch/pkmnkit/internal/tools/localecheck"
)

func main() {
	cfg, err := localecheck.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.RunWithTelemetry(ctx, cmd.ToolLocaleCheck, func(ctx context.Context) error {
		return localecheck.Run(ctx, cfg, os.Stdout)
	}); err != nil {
		stop()
		config.Exitf("check locales: %v", err)
	}
}
