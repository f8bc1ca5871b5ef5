package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/softpipe/pkg/pipeline"
	"github.com/taigrr/softpipe/pkg/render"
	"golang.org/x/sync/errgroup"
)

const (
	torqueStrength = 0.02 // Radians per frame added by one key press
	zoomStep       = 0.5
	minDistance    = 1.5
)

type viewOptions struct {
	fps int
}

func newViewCmd(scene *sceneOptions) *cobra.Command {
	opts := &viewOptions{fps: 30}

	cmd := &cobra.Command{
		Use:   "view [model]",
		Short: "Render interactively in the terminal",
		Long: `Render the model in the terminal using half-block characters.

Keys:
  1-6          render mode (wire, wire-vertex, fill, fill-wire, textured, textured-wire)
  c            toggle backface culling
  l            toggle lighting
  p / space    pause the automatic turn
  arrows/wasd  spin the model
  + / -, wheel zoom
  r            reset
  q, esc       quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), scene, opts, args)
		},
	}
	cmd.Flags().IntVar(&opts.fps, "fps", opts.fps, "target frames per second")
	return cmd
}

// viewState is shared by the event and render goroutines.
type viewState struct {
	mu       sync.Mutex
	width    int // Terminal columns
	height   int // Terminal rows
	cfg      pipeline.Config
	paused   bool
	motion   *motion
	distance float64 // Reset distance
}

// fbSize returns the framebuffer size for the terminal size: one column per
// pixel, two pixel rows per cell, last row kept for the status line.
func fbSize(cols, rows int) (int, int) {
	return max(1, cols), max(1, (rows-1)*2)
}

func runView(ctx context.Context, scene *sceneOptions, opts *viewOptions, args []string) error {
	if opts.fps < 1 {
		return fmt.Errorf("invalid fps %d", opts.fps)
	}

	logs, err := scene.setupLogging()
	if err != nil {
		return err
	}
	defer logs.Close()

	cfg, err := scene.config()
	if err != nil {
		return err
	}
	bg, err := render.ParseColor(scene.bg)
	if err != nil {
		return err
	}
	obj, err := scene.loadObject(args)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	fbW, fbH := fbSize(width, height)
	r, err := pipeline.NewRenderer(fbW, fbH, cfg)
	if err != nil {
		return err
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	// Button tracking with SGR coordinates, for wheel zoom.
	fmt.Fprint(os.Stdout, "\x1b[?1000h\x1b[?1006h")
	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1000l\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		_ = term.Shutdown(context.Background())
	}()

	state := &viewState{
		width:    width,
		height:   height,
		cfg:      cfg,
		motion:   newMotion(opts.fps, scene.distance),
		distance: scene.distance,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return handleEvents(ctx, term, state)
	})
	g.Go(func() error {
		defer cancel()
		return renderLoop(ctx, term, r, obj, state, bg, opts.fps)
	})
	return g.Wait()
}

func handleEvents(ctx context.Context, term *uv.Terminal, s *viewState) error {
	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if quit := s.apply(term, ev); quit {
				return nil
			}
		}
	}
}

// apply updates the state for one terminal event and reports whether the
// viewer should exit.
func (s *viewState) apply(term *uv.Terminal, ev uv.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		s.width, s.height = ev.Width, ev.Height
		term.Erase()
		term.Resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c", "q"):
			return true
		case ev.MatchString("1", "2", "3", "4", "5", "6"):
			s.cfg.Mode = pipeline.RenderMode(ev.Code - '1')
		case ev.MatchString("c"):
			if s.cfg.Cull == pipeline.CullBackface {
				s.cfg.Cull = pipeline.CullNone
			} else {
				s.cfg.Cull = pipeline.CullBackface
			}
		case ev.MatchString("l"):
			s.cfg.Lighting = !s.cfg.Lighting
		case ev.MatchString("p", "space"):
			s.paused = !s.paused
		case ev.MatchString("r"):
			s.motion.reset(s.distance)
		case ev.MatchString("w", "up"):
			s.motion.Impulse(-torqueStrength, 0)
		case ev.MatchString("s", "down"):
			s.motion.Impulse(torqueStrength, 0)
		case ev.MatchString("a", "left"):
			s.motion.Impulse(0, torqueStrength)
		case ev.MatchString("d", "right"):
			s.motion.Impulse(0, -torqueStrength)
		case ev.MatchString("+", "="):
			s.motion.Zoom(-zoomStep, minDistance)
		case ev.MatchString("-", "_"):
			s.motion.Zoom(zoomStep, minDistance)
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			s.motion.Zoom(-zoomStep, minDistance)
		case uv.MouseWheelDown:
			s.motion.Zoom(zoomStep, minDistance)
		}
	}
	return false
}

// frame is the per-frame snapshot of viewState the renderer works from.
type frame struct {
	cols, rows int
	cfg        pipeline.Config
	paused     bool
}

// step advances the animation one frame and copies what the render loop
// needs while holding the lock.
func (s *viewState) step(obj *pipeline.Object, cam *render.Camera) frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.motion.Step(s.paused)
	obj.Rotation = s.motion.Rotation()
	placeCamera(cam, s.motion.Distance)
	return frame{cols: s.width, rows: s.height, cfg: s.cfg, paused: s.paused}
}

func renderLoop(ctx context.Context, term *uv.Terminal, r *pipeline.Renderer, obj *pipeline.Object, s *viewState, bg render.Color, fps int) error {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var fpsMeter fpsCounter
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		f := s.step(obj, r.Camera())
		if f.rows < 2 || f.cols < 1 {
			continue
		}
		if err := r.Resize(fbSize(f.cols, f.rows)); err != nil {
			return err
		}
		if f.cfg != r.Config() {
			if err := r.SetConfig(f.cfg); err != nil {
				return err
			}
		}

		drawFrame(r, obj, bg)

		r.Framebuffer().Draw(term, uv.Rect(0, 0, f.cols, f.rows-1))
		drawStatus(term, f.rows-1, f.cols, statusLine(f, r.Stats(), fpsMeter.tick()))
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
	}
}

// drawFrame renders obj into r's framebuffer. A degenerate camera basis
// only costs the view update: the frame is drawn with the previous view.
func drawFrame(r *pipeline.Renderer, obj *pipeline.Object, bg render.Color) {
	if err := r.BeginFrame(bg); err != nil {
		pipeline.Logger().Warn("drawing with previous view", "err", err)
	}
	r.Draw(obj)
}

func statusLine(f frame, st pipeline.Stats, fps float64) string {
	light := "on"
	if !f.cfg.Lighting {
		light = "off"
	}
	s := fmt.Sprintf(" %s | cull %s | light %s | %d tris | %.0f fps",
		f.cfg.Mode, f.cfg.Cull, light, st.Triangles, fps)
	if f.paused {
		s += " | paused"
	}
	return s
}

// drawStatus writes text into one terminal row, padding with blanks.
func drawStatus(scr uv.Screen, row, cols int, text string) {
	runes := []rune(text)
	for x := range cols {
		content := " "
		if x < len(runes) {
			content = string(runes[x])
		}
		scr.SetCell(x, row, &uv.Cell{Content: content, Width: 1})
	}
}

// fpsCounter averages the frame rate over one-second windows.
type fpsCounter struct {
	frames int
	start  time.Time
	fps    float64
}

func (c *fpsCounter) tick() float64 {
	now := time.Now()
	if c.start.IsZero() {
		c.start = now
	}
	c.frames++
	if elapsed := now.Sub(c.start); elapsed >= time.Second {
		c.fps = float64(c.frames) / elapsed.Seconds()
		c.frames = 0
		c.start = now
	}
	return c.fps
}
