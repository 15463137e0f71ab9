// Package sandbox runs the interactive collision playground: static scene
// bodies plus a probe the user drives into them.
package sandbox

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/collide/internal/config"
	"github.com/tomz197/collide/internal/draw"
	"github.com/tomz197/collide/internal/input"
	"github.com/tomz197/collide/internal/logging"
	"github.com/tomz197/collide/internal/object"
	"github.com/tomz197/collide/internal/scene"
	"github.com/tomz197/collide/internal/vector"
)

// Options configures a sandbox run. Zero values fall back to defaults.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Scene        *scene.Scene
	Logger       *zap.Logger
	FrameTime    time.Duration
}

// Run drives the sandbox with the Input → Update → Draw cycle until q is
// pressed, r ends, or ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	s, err := newSession(ctx, w, opts)
	if err != nil {
		return err
	}
	stream := input.StartStream(r)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	s.log.Info("sandbox started",
		zap.Int("bodies", len(s.bodies)),
		zap.Int("overlaps", len(s.overlaps)))

	last := time.Now()
	for ctx.Err() == nil {
		frameStart := time.Now()
		delta := frameStart.Sub(last)
		last = frameStart

		in := input.ReadInput(stream)
		if in.Quit {
			break
		}

		s.updateScreen()
		if err := s.update(delta, in); err != nil {
			return err
		}
		if err := s.drawFrame(); err != nil {
			return err
		}

		if elapsed := time.Since(frameStart); elapsed < s.frameTime {
			select {
			case <-ctx.Done():
			case <-time.After(s.frameTime - elapsed):
			}
		}
	}

	s.log.Info("sandbox stopped", zap.Error(context.Cause(ctx)))
	draw.ClearScreen(w)
	return nil
}

// session is the state of one sandbox run.
type session struct {
	log       *zap.Logger
	sizeFunc  draw.TermSizeFunc
	frameTime time.Duration

	canvas *draw.Canvas
	text   *draw.ChunkWriter
	layout [4]int // cols, rows, offCol, offRow

	bodies   []*object.Body
	shapes   []*scene.Shape
	probe    *object.Probe
	overlaps []scene.Contact

	touching map[string]bool
}

func newSession(ctx context.Context, w io.Writer, opts Options) (*session, error) {
	s := &session{
		log:       opts.Logger,
		sizeFunc:  opts.TermSizeFunc,
		frameTime: opts.FrameTime,
		touching:  make(map[string]bool),
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	if s.sizeFunc == nil {
		s.sizeFunc = draw.DefaultTermSizeFunc
	}
	if s.frameTime <= 0 {
		s.frameTime = config.TargetFrameTime
	}

	sc := opts.Scene
	if sc == nil {
		sc = scene.Default()
	}
	for _, sh := range sc.Shapes {
		sh = sh.Clone()
		s.shapes = append(s.shapes, sh)
		s.bodies = append(s.bodies, object.NewBody(sh))
	}
	probe := sc.Probe
	if probe == nil {
		probe = scene.NewCircle("probe", vector.New(config.ViewWidth/2, config.ViewHeight/4), 4)
	}
	s.probe = object.NewProbe(probe, config.ProbeSpeed, config.ProbeSubSteps)

	overlaps, err := scene.Evaluate(ctx, s.shapes, config.EvaluateWorkers)
	if err != nil {
		return nil, fmt.Errorf("evaluate scene: %w", err)
	}
	s.overlaps = overlaps

	cols, rows, offCol, offRow := s.termSize()
	s.layout = [4]int{cols, rows, offCol, offRow}
	s.canvas = draw.NewCanvas(cols, rows, config.ViewWidth, config.ViewHeight)
	s.canvas.SetOffset(offCol, offRow)
	s.text = draw.NewChunkWriter(w, offCol, offRow)
	return s, nil
}

func (s *session) termSize() (cols, rows, offCol, offRow int) {
	w, h, err := s.sizeFunc()
	if err != nil || w <= 0 || h <= 0 {
		w, h = 80, 24
	}
	return draw.ClampTermSize(w, h, config.MaxTermWidth, config.MaxTermHeight)
}

// updateScreen follows terminal resizes.
func (s *session) updateScreen() {
	cols, rows, offCol, offRow := s.termSize()
	layout := [4]int{cols, rows, offCol, offRow}
	if layout == s.layout {
		return
	}
	s.layout = layout
	s.log.Debug("resize", zap.Ints("layout", layout[:]))
	s.canvas.Resize(cols, rows)
	s.canvas.SetOffset(offCol, offRow)
	s.text.SetOffset(offCol, offRow)
}

func (s *session) update(delta time.Duration, in input.Input) error {
	ctx := object.UpdateContext{
		Delta:     delta,
		Input:     in,
		Obstacles: s.shapes,
	}
	if err := s.probe.Update(ctx); err != nil {
		return err
	}

	now := make(map[string]bool, len(s.probe.Contacts))
	for _, c := range s.probe.Contacts {
		now[c.A.Name] = true
		if !s.touching[c.A.Name] {
			s.log.Debug("contact",
				zap.String("body", c.A.Name),
				zap.Stringer("dir", c.Result.Dir),
				zap.Float32("depth", c.Result.Depth))
		}
	}
	for name := range s.touching {
		if !now[name] {
			s.log.Debug("separated", zap.String("body", name))
		}
	}
	s.touching = now

	for _, b := range s.bodies {
		b.Touching = now[b.Shape.Name]
	}
	return nil
}

func (s *session) drawFrame() error {
	draw.ClearScreen(s.text)
	s.canvas.Clear()

	ctx := object.DrawContext{Canvas: s.canvas, Text: s.text}
	for _, b := range s.bodies {
		if err := b.Draw(ctx); err != nil {
			return err
		}
	}
	if err := s.probe.Draw(ctx); err != nil {
		return err
	}

	if err := s.canvas.Render(s.text); err != nil {
		return err
	}
	if err := s.canvas.RenderBorder(s.text); err != nil {
		return err
	}
	s.drawHUD()
	return s.text.Flush()
}
