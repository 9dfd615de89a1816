package main

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/gogpu/lightatlas"
)

const (
	defaultBudgetMS = 15
	defaultExposure = 0.25
)

// Calibrate measures this machine and prints the chosen settings.
func Calibrate(ctx *cli.Context) error {
	setupStderrLogging(ctx)

	c := lightatlas.NewCalibrator()
	c.Budget = time.Duration(ctx.Float64("budget") * float64(time.Millisecond))
	if n := ctx.Int("workers"); n > 0 {
		c.Workers = n
	}
	c.TargetCount = ctx.Int("targets")
	c.Conservative = ctx.Bool("conservative")

	q, m, err := c.Estimate()
	over := errors.Is(err, lightatlas.ErrBudgetExceeded)
	if err != nil && !over {
		return err
	}
	fmt.Print(calibrationTable(q, m, c.Budget, over))
	return nil
}

// calibrationTable formats the outcome of a calibration run.
func calibrationTable(q lightatlas.Quality, m lightatlas.Measurement, budget time.Duration, over bool) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Setting", "Value"})
	table.Append([]string{"samples", fmt.Sprintf("%d", q.SampleCount)})
	table.Append([]string{"checkerboard", fmt.Sprintf("%t", q.Checkerboard)})
	table.Append([]string{"skip frame", fmt.Sprintf("%t", q.SkipOneFrame)})
	table.Append([]string{"atlas size", fmt.Sprintf("%dx%d", q.Size().X, q.Size().Y)})
	if m.Raw > 0 {
		table.Append([]string{"measured", m.Raw.String()})
		table.Append([]string{"per thread", m.PerThread.String()})
		table.Append([]string{"rays", fmt.Sprintf("%d", m.Stats.Rays)})
		table.Append([]string{"box tests", fmt.Sprintf("%d", m.Stats.Tests)})
	}
	status := "within budget"
	if over {
		status = "OVER BUDGET"
	}
	table.SetFooter([]string{status, fmt.Sprintf("%s / %s", m.Estimate, budget)})
	table.Render()
	return buf.String()
}

// qualityFromFlags returns explicit settings when --samples is given,
// the conservative settings with --conservative, and a calibrated
// estimate otherwise.
func qualityFromFlags(ctx *cli.Context) (lightatlas.Quality, error) {
	if n := ctx.Int("samples"); n > 0 {
		return lightatlas.Quality{
			SampleCount:  n,
			Checkerboard: ctx.Bool("checkerboard"),
			SkipOneFrame: ctx.Bool("skip"),
			AtlasHeight:  ctx.Int("height"),
		}, nil
	}

	c := lightatlas.NewCalibrator()
	if n := ctx.Int("workers"); n > 0 {
		c.Workers = n
	}
	c.BatchWidth = ctx.Int("width")
	c.Conservative = ctx.Bool("conservative")
	q, _, err := c.Estimate()
	if err != nil && !errors.Is(err, lightatlas.ErrBudgetExceeded) {
		return lightatlas.Quality{}, err
	}
	return q, nil
}

// engineFromFlags creates the update engine selected by the shared flags.
func engineFromFlags(ctx *cli.Context) (*lightatlas.Engine, error) {
	return lightatlas.NewEngine(
		lightatlas.WithWorkers(ctx.Int("workers")),
		lightatlas.WithBatchWidth(ctx.Int("width")),
		lightatlas.WithSeed(uint32(ctx.Int("seed"))),
	)
}
