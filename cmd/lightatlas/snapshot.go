package main

import (
	"github.com/urfave/cli"

	"github.com/gogpu/lightatlas"
	"github.com/gogpu/lightatlas/snapshot"
)

// Snapshot converges the atlas over the demo world and saves it.
func Snapshot(ctx *cli.Context) error {
	setupStderrLogging(ctx)

	q, err := qualityFromFlags(ctx)
	if err != nil {
		return err
	}
	e, err := engineFromFlags(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	a, err := lightatlas.NewAtlas(q, e)
	if err != nil {
		return err
	}

	w := newWorld(uint32(ctx.Int("seed")))
	runBench(a, demoSource(w), ctx.Int("ticks"), 0)

	img := snapshot.Image(a.Grid(), float32(ctx.Float64("exposure")))
	out := ctx.String("out")
	if err := snapshot.Save(out, snapshot.Scale(img, ctx.Int("scale"), ctx.Bool("smooth"))); err != nil {
		return err
	}
	lightatlas.Logger().Info("snapshot written", "path", out, "quality", q.String(), "player", w.player)
	return nil
}
