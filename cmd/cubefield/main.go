package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"strings"
	"time"

	"cubefield/internal/app"
	"cubefield/internal/config"
	"cubefield/internal/graphics"
	"cubefield/internal/graphics/renderables/axesgrid"
	"cubefield/internal/graphics/renderables/crosshair"
	"cubefield/internal/graphics/renderables/cubes"
	"cubefield/internal/graphics/renderables/hud"
	"cubefield/internal/graphics/renderables/wireframe"
	renderer "cubefield/internal/graphics/renderer"
	"cubefield/internal/input"
	"cubefield/internal/logging"
	"cubefield/internal/window"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

// shutdownGrace is how long a signal waits for the frame loop to release GL resources
const shutdownGrace = 2 * time.Second

func init() {
	// GLFW and GL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "optional YAML config applied over the preset")
	variant := flag.String("variant", "classic", "preset to use: "+strings.Join(config.Presets(), ", "))
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	settings, err := config.Load(*configPath, *variant)
	if err != nil {
		logging.New("cubefield", true).Errorf("%v", err)
		closer.Exit(1)
	}
	logger := logging.New("cubefield", *debug || settings.Log.Debug)
	logger.Infof("variant %s", settings.Variant)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	// closer runs this on SIGINT/SIGTERM from its own goroutine; the main
	// thread notices the cancelled context and tears down GL itself.
	closer.Bind(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(shutdownGrace):
			logger.Warnf("frame loop did not stop within %v", shutdownGrace)
		}
	})

	err = run(ctx, settings, logger)
	close(done)
	if err != nil {
		logger.Errorf("%v", err)
		closer.Exit(1)
	}
	closer.Close()
}

func run(ctx context.Context, s config.Settings, logger logging.Logger) error {
	config.ApplyRender(s)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	w, err := window.Open(s.Window)
	if err != nil {
		return err
	}
	defer w.Destroy()

	grid := app.BuildGrid(s, logger)

	fbw, fbh := window.FramebufferSize(w)
	projection := graphics.NewProjection(fbw, fbh, s.Render.FOV, s.Render.Near, s.Render.Far)

	rs := []renderer.Renderable{cubes.NewCubes(grid)}
	if s.Render.ShowAxesGrid {
		rs = append(rs, axesgrid.NewAxesGrid(10))
	}
	rs = append(rs,
		wireframe.NewWireframe(mgl32.Vec3{0, 0, 0}),
		crosshair.NewCrosshair(),
		hud.NewHUD(projection),
	)

	r, err := renderer.NewRenderer(projection, mgl32.Vec3(s.Render.Background), rs...)
	if err != nil {
		return err
	}
	defer r.Dispose()

	a := app.New(w, s, grid, r, input.NewInputManager(), logger)
	return a.Run(ctx)
}
