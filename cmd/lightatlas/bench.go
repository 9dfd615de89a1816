package main

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/gogpu/lightatlas"
)

const tickDT = 1.0 / 60

// benchRow aggregates the frame stats of a window of ticks.
type benchRow struct {
	First, Last int
	Updates     int
	Moves       int
	Stats       lightatlas.Stats
}

// add folds one tick into the row.
func (r *benchRow) add(fs lightatlas.FrameStats) {
	r.Last = int(fs.Frame)
	if fs.Updated {
		r.Updates++
	}
	if fs.Moved {
		r.Moves++
	}
	r.Stats = r.Stats.Add(fs.Stats)
}

// frameSource yields the player position and targets for tick i.
type frameSource func(i int) (lightatlas.Vec2, []lightatlas.Target)

// demoSource steps the demo world once per tick.
func demoSource(w *world) frameSource {
	return func(int) (lightatlas.Vec2, []lightatlas.Target) {
		w.step(tickDT)
		return w.player, w.targets()
	}
}

// syntheticSource circles the player through a fixed random field.
func syntheticSource(seed uint32, n int) frameSource {
	targets := lightatlas.SyntheticTargets(lightatlas.NewStream(seed), n, lightatlas.Vec2{}, lightatlas.V2(64, 64))
	return func(i int) (lightatlas.Vec2, []lightatlas.Target) {
		t := float64(i) * tickDT
		return lightatlas.V2(float32(math.Cos(t))*20, float32(math.Sin(t))*20), targets
	}
}

// runBench ticks a for the given number of frames and groups the results
// into rows of window ticks.
func runBench(a *lightatlas.Atlas, src frameSource, ticks, window int) []benchRow {
	if window < 1 {
		window = ticks
	}
	var rows []benchRow
	for i := range ticks {
		if i%window == 0 {
			rows = append(rows, benchRow{First: i + 1})
		}
		center, targets := src(i)
		rows[len(rows)-1].add(a.Tick(center, tickDT, targets))
	}
	return rows
}

// Bench runs the atlas against a moving scene and prints statistics.
func Bench(ctx *cli.Context) error {
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

	seed := uint32(ctx.Int("seed"))
	var src frameSource
	switch ctx.String("scene") {
	case "demo":
		src = demoSource(newWorld(seed))
	case "synthetic":
		src = syntheticSource(seed, ctx.Int("targets"))
	default:
		return fmt.Errorf("unknown scene %q", ctx.String("scene"))
	}

	start := time.Now()
	rows := runBench(a, src, ctx.Int("ticks"), ctx.Int("window"))
	wall := time.Since(start)

	fmt.Printf("quality: %s, workers: %d, batch width: %d\n", q, e.Workers(), e.BatchWidth())
	fmt.Print(benchTable(rows, a.Totals(), wall))
	return nil
}

// benchTable formats bench rows with a TOTAL footer.
func benchTable(rows []benchRow, totals lightatlas.Stats, wall time.Duration) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Ticks", "Updates", "Moves", "Rays", "Box tests", "Update time", "Per update"})

	updates := 0
	for _, r := range rows {
		updates += r.Updates
		table.Append([]string{
			fmt.Sprintf("%d-%d", r.First, r.Last),
			fmt.Sprintf("%d", r.Updates),
			fmt.Sprintf("%d", r.Moves),
			fmt.Sprintf("%d", r.Stats.Rays),
			fmt.Sprintf("%d", r.Stats.Tests),
			r.Stats.Elapsed.Round(time.Microsecond).String(),
			perUpdate(r.Stats.Elapsed, r.Updates).String(),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d", updates),
		"",
		fmt.Sprintf("%d", totals.Rays),
		fmt.Sprintf("%d", totals.Tests),
		wall.Round(time.Microsecond).String(),
		perUpdate(totals.Elapsed, updates).String(),
	})
	table.Render()
	return buf.String()
}

func perUpdate(d time.Duration, n int) time.Duration {
	if n == 0 {
		return 0
	}
	return (d / time.Duration(n)).Round(time.Microsecond)
}
