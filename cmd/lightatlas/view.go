package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gputypes"
	"github.com/urfave/cli"

	"github.com/gogpu/lightatlas"
	"github.com/gogpu/lightatlas/texture"
)

const (
	cellsPerVoxel = 2
	moveStep      = 0.5
)

// viewer draws the atlas into a terminal, one voxel per two cells.
type viewer struct {
	screen   tcell.Screen
	world    *world
	engine   *lightatlas.Engine
	atlas    *lightatlas.Atlas
	exposure float32

	last  lightatlas.FrameStats
	pixel []byte
}

// View opens the live terminal preview.
func View(ctx *cli.Context) error {
	// Log lines on stderr would tear the terminal view.
	var logOut io.Writer = io.Discard
	if path := ctx.String("log"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	setupLogging(ctx, logOut)

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

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := &viewer{
		screen:   screen,
		world:    newWorld(uint32(ctx.Int("seed"))),
		engine:   e,
		atlas:    a,
		exposure: float32(ctx.Float64("exposure")),
	}
	v.run()
	return nil
}

func (v *viewer) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !v.handleInput(ev) {
				return
			}

		case <-ticker.C:
			v.tick(tickDT)
			v.draw()
		}
	}
}

// handleInput applies one terminal event and reports whether the view
// should keep running.
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.world.move(lightatlas.V2(0, -moveStep))
		case tcell.KeyDown:
			v.world.move(lightatlas.V2(0, moveStep))
		case tcell.KeyLeft:
			v.world.move(lightatlas.V2(-moveStep, 0))
		case tcell.KeyRight:
			v.world.move(lightatlas.V2(moveStep, 0))
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.world.fire()
			case 'l':
				v.atlas.SetFullyLit(!v.atlas.IsFullyLit())
			case 'c':
				v.toggleCheckerboard()
			}
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// toggleCheckerboard rebuilds the atlas with checkerboard updates flipped.
func (v *viewer) toggleCheckerboard() {
	q := v.atlas.Quality()
	q.Checkerboard = !q.Checkerboard
	a, err := lightatlas.NewAtlas(q, v.engine, lightatlas.WithCenter(v.atlas.Grid().Center()))
	if err != nil {
		lightatlas.Logger().Warn("view: toggle checkerboard", "err", err)
		return
	}
	a.SetFullyLit(v.atlas.IsFullyLit())
	v.atlas = a
}

func (v *viewer) tick(dt float32) {
	v.world.step(dt)
	v.last = v.atlas.Tick(v.world.player, dt, v.world.targets())
}

func (v *viewer) draw() {
	v.screen.Clear()

	g := v.atlas.Grid()
	size := g.Size()
	v.pixel = texture.Encode(v.atlas.Texels(), v.pixel, gputypes.TextureFormatRGBA8Unorm, v.exposure)
	for y := range size.Y {
		for x := range size.X {
			p := v.pixel[(y*size.X+x)*4:]
			c := tcell.NewRGBColor(int32(p[0]), int32(p[1]), int32(p[2]))
			style := tcell.StyleDefault.Foreground(c)
			for i := range cellsPerVoxel {
				v.screen.SetContent(x*cellsPerVoxel+i, y, '█', nil, style)
			}
		}
	}

	// Player marker on top of its voxel.
	pv := v.world.player.Sub(g.Origin()).Round()
	if pv.X >= 0 && pv.X < size.X && pv.Y >= 0 && pv.Y < size.Y {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
		v.screen.SetContent(pv.X*cellsPerVoxel, pv.Y, '@', nil, style)
	}

	q := v.atlas.Quality()
	status := []string{
		fmt.Sprintf("tick %d  rays %d  tests %d  %s", v.last.Frame, v.last.Rays, v.last.Tests, v.last.Elapsed.Round(time.Microsecond)),
		fmt.Sprintf("samples %d  checkerboard %t  skip %t  lit %t", q.SampleCount, q.Checkerboard, q.SkipOneFrame, v.atlas.IsFullyLit()),
		"arrows move  space fire  c checkerboard  l fully lit  q quit",
	}
	for i, line := range status {
		v.drawText(0, size.Y+1+i, line, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	v.screen.Show()
}

func (v *viewer) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
