// Command quadview opens a window and draws a textured quad. Space cycles the configured
// textures, W/A/S/D/Q/E move the camera and Escape quits. Debug commands are read from stdin.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/Carmen-Shannon/oxy-quad/common"
	"github.com/Carmen-Shannon/oxy-quad/engine"
	"github.com/Carmen-Shannon/oxy-quad/engine/camera"
	"github.com/Carmen-Shannon/oxy-quad/engine/config"
	"github.com/Carmen-Shannon/oxy-quad/engine/console"
	"github.com/Carmen-Shannon/oxy-quad/engine/renderer"
	"github.com/Carmen-Shannon/oxy-quad/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-quad/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

func init() {
	// GLFW and the surface must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a TOML or YAML config file")
	flag.Parse()

	os.Exit(run(*configPath))
}

func run(configPath string) int {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "quadview:", err)
			return 1
		}
		cfg = loaded
	}

	level, _ := cfg.SlogLevel()
	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	log := common.Logger()

	cache := texture.NewCache(texture.NewFileLoader())
	cycle := engine.NewTextureCycle(cfg.Textures)
	for id, err := range cache.Preload(cfg.Textures, os.Stderr) {
		log.Warn("texture skipped", "texture", id, "error", err)
		cycle.Remove(id)
	}
	if cycle.Len() == 0 {
		log.Error("no usable texture")
		return 1
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		log.Error("window", "error", err)
		return 1
	}
	defer win.Close()

	presentMode := renderer.PresentModeVSync
	if strings.EqualFold(cfg.Renderer.PresentMode, renderer.PresentModeUncapped.String()) {
		presentMode = renderer.PresentModeUncapped
	}
	bg := cfg.Renderer.ClearColor
	options := []renderer.RendererBuilderOption{
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithBackgroundColor(wgpu.Color{R: bg[0], G: bg[1], B: bg[2], A: 1}),
		renderer.WithTextureLoader(cache),
	}
	if cfg.Camera.Enabled {
		eye, target, up := cfg.Camera.Eye, cfg.Camera.Target, cfg.Camera.Up
		options = append(options, renderer.WithCamera(camera.NewCamera(
			camera.WithEye(eye[0], eye[1], eye[2]),
			camera.WithTarget(target[0], target[1], target[2]),
			camera.WithUp(up[0], up[1], up[2]),
			camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
			camera.WithFov(common.Radians(cfg.Camera.Fov)),
		)))
	}

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, cycle.Current(), cfg.Shader, options...)
	if err != nil {
		log.Error("renderer", "error", err)
		return 1
	}
	defer r.Release()

	eng := engine.NewEngine(win, r,
		engine.WithTextureCycle(cycle),
		engine.WithTextureCache(cache),
		engine.WithCameraStep(cfg.Camera.Step),
		engine.WithTextureWatch(cfg.Watch),
		engine.WithProfiling(cfg.Profiler),
	)

	if cfg.Console {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		con := console.NewConsole(r, console.WithExitHandler(func() { eng.Quit(0) }))
		go func() {
			if err := con.Run(ctx); err != nil {
				log.Warn("console stopped", "error", err)
			}
		}()
	}

	return eng.Run()
}
