// Package app runs the illustrator: window, input, rendering and the
// timers that drive redraws and shader reloads.
package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/mesh-illustrator/internal/config"
	"github.com/Faultbox/mesh-illustrator/internal/engine/camera"
	"github.com/Faultbox/mesh-illustrator/internal/engine/debug"
	"github.com/Faultbox/mesh-illustrator/internal/engine/input"
	"github.com/Faultbox/mesh-illustrator/internal/engine/picking"
	"github.com/Faultbox/mesh-illustrator/internal/engine/registry"
	"github.com/Faultbox/mesh-illustrator/internal/engine/renderer"
	"github.com/Faultbox/mesh-illustrator/internal/engine/shader"
	"github.com/Faultbox/mesh-illustrator/internal/engine/window"
	"github.com/Faultbox/mesh-illustrator/internal/importer"
	"github.com/Faultbox/mesh-illustrator/internal/logger"
	"github.com/Faultbox/mesh-illustrator/internal/session"
)

const title = "Mesh Illustrator"

// App is the running illustrator.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	registry *registry.Registry
	session  *session.Session
	program  *shader.Program
	reloader *shader.Reloader
	shots    *debug.ScreenshotCapture
	opts     importer.Options

	fullscreen  bool
	dialogOpen  bool
	pendingOpen chan string
	lastDir     string

	log *zap.Logger
}

// New creates the window, rendering context and shader program.
func New(cfg *config.Config) (*App, error) {
	log := logger.Named("app")
	log.Info("initializing illustrator",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	opts, err := importer.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:         cfg,
		input:       input.New(),
		camera:      camera.NewOrbitCamera(),
		registry:    registry.New(),
		shots:       debug.NewScreenshotCapture("screenshots", "illustrator"),
		opts:        opts,
		fullscreen:  cfg.Window.Fullscreen,
		pendingOpen: make(chan string, 1),
		log:         log,
	}
	a.session = session.New(a.registry, cfg)

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	fbw, fbh := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      fbw,
		Height:     fbh,
		Background: cfg.Render.Background,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.program = shader.Build(shader.GLDevice{}, cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	a.renderer.SetProgram(a.program)
	a.reloader = shader.NewReloader(a.program, cfg.Shaders.Vertex, cfg.Shaders.Fragment,
		cfg.Render.ShaderReloadInterval, cfg.Shaders.Watch)

	log.Info("illustrator initialized", zap.String("shader_status", a.program.Status().String()))
	return a, nil
}

// Open imports a mesh file and frames the camera on everything loaded.
func (a *App) Open(path string) error {
	added, err := importer.Import(path, a.registry, a.opts)
	if err != nil {
		return err
	}
	a.lastDir = filepath.Dir(path)
	a.session.UpdateBrush()
	a.fitCamera()
	a.window.SetTitle(fmt.Sprintf("%s - %s", title, filepath.Base(path)))
	a.log.Info("file loaded", zap.String("path", path), zap.Int("meshes", len(added)))
	return nil
}

// Run starts the main loop. Redraws happen on the fast tick unless
// paused; shader reloads run on the slow tick inside the reloader.
func (a *App) Run() error {
	a.running = true

	redraw := time.NewTicker(a.cfg.Render.RedrawInterval)
	defer redraw.Stop()

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		<-redraw.C

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		a.processPendingOpen()

		now := time.Now()
		if a.reloader.Tick(now) {
			a.renderer.SetProgram(a.program)
		}

		if a.session.Paused {
			continue
		}

		a.render()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up resources.
func (a *App) Close() {
	a.log.Info("closing illustrator")

	if a.reloader != nil {
		if err := a.reloader.Close(); err != nil {
			a.log.Warn("closing shader watcher", zap.Error(err))
		}
	}
	if a.program != nil {
		a.program.Delete()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) render() {
	aspect := a.renderer.Aspect()
	a.renderer.Begin()
	a.renderer.Draw(a.registry, &a.session.Uniforms, renderer.Frame{
		View:       a.camera.ViewMatrix(),
		Projection: a.camera.ProjectionMatrix(aspect),
		Eye:        a.camera.Position(),
	})
	a.renderer.End()
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := a.window.DrawableSize()
			a.renderer.Resize(w, h)

		case input.EventKeyDown:
			a.command(commandForKey(event.Key))

		case input.EventMouseMove:
			if a.input.IsButtonDown(sdl.BUTTON_LEFT) {
				a.camera.HandleDrag(float32(event.RelX), float32(event.RelY))
				continue
			}
			a.session.Hover(a.rayAt(event.MouseX, event.MouseY))

		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_LEFT && !a.input.Dragged() {
				a.session.Pick(a.rayAt(event.MouseX, event.MouseY))
			}

		case input.EventMouseWheel:
			a.camera.HandleZoom(event.WheelY)
		}
	}
}

func (a *App) command(cmd session.Command) {
	switch cmd {
	case session.CmdNone:
	case session.CmdQuit:
		a.running = false
	case session.CmdOpen:
		a.openFileDialog()
	case session.CmdFitCamera:
		a.fitCamera()
	case session.CmdScreenshot:
		a.screenshot()
	case session.CmdToggleFullscreen:
		a.toggleFullscreen()
	default:
		a.session.Apply(cmd)
	}
}

// rayAt casts a ray through a point given in window coordinates.
func (a *App) rayAt(x, y int) picking.Ray {
	w, h := a.window.GetSize()
	inv := a.camera.ViewProjection(a.renderer.Aspect()).Inverse()
	return picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), inv)
}

func (a *App) fitCamera() {
	if b, ok := a.registry.Bounds(); ok {
		a.camera.FitToBounds(b)
	}
}

// openFileDialog shows a native file dialog. Rendering pauses while it is
// open; the chosen path is imported on the main thread.
func (a *App) openFileDialog() {
	if a.dialogOpen {
		return
	}
	a.dialogOpen = true
	a.session.Paused = true

	start := a.lastDir
	go func() {
		b := dialog.File().
			Filter("Mesh Files", "obj", "gltf", "glb").
			Filter("All Files", "*").
			Title("Select a file.")
		if start != "" {
			b = b.SetStartDir(start)
		}
		filename, err := b.Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				a.log.Warn("file dialog error", zap.Error(err))
			}
			filename = ""
		}
		a.pendingOpen <- filename
	}()
}

func (a *App) processPendingOpen() {
	select {
	case path := <-a.pendingOpen:
		a.dialogOpen = false
		a.session.Paused = false
		if path == "" {
			a.log.Info("no file specified")
			return
		}
		if err := a.Open(path); err != nil {
			a.log.Error("failed to open file", zap.String("path", path), zap.Error(err))
		}
	default:
	}
}

func (a *App) screenshot() {
	a.render()
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) toggleFullscreen() {
	a.fullscreen = !a.fullscreen
	a.window.SetFullscreen(a.fullscreen)
}
