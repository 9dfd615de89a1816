package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/gogpu/lightatlas"
)

// setupLogging installs a text logger on w at the level chosen by the
// global -v and -vv flags.
func setupLogging(ctx *cli.Context, w io.Writer) {
	level := slog.LevelWarn
	if ctx.GlobalBool("v") {
		level = slog.LevelInfo
	}
	if ctx.GlobalBool("vv") {
		level = slog.LevelDebug
	}
	lightatlas.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func setupStderrLogging(ctx *cli.Context) {
	setupLogging(ctx, os.Stderr)
}
