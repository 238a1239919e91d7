package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/c8/cpu"
	"github.com/hexaflex/chip8/devices/c8/keypad"
	"github.com/hexaflex/chip8/devices/c8/screen"
)

// App defines application context.
type App struct {
	config       *Config        // Application configuration.
	window       *glfw.Window   // OpenGL/GLFW context.
	cpu          *CPUController // VM with program to be run.
	display      *screen.Device // Display renderer.
	keypad       *keypad.Device // Keyboard and gamepad input.
	titleUpdated time.Time      // Value used to periodically update window title.
	lastRendered time.Time      // Last time a frame was rendered.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.display = screen.New(screen.DefaultForeground, screen.DefaultBackground)
	a.keypad = keypad.New()

	quirks := cpu.Quirks{ShiftUsesVY: config.ShiftUsesVY}
	trace := newTracer(os.Stdout, config)
	a.cpu = NewCPUController(trace, quirks, config.Frequency, a.keypad, a.display, a.keypad)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	log.Println(Version())
	printHelp()

	if err := a.cpu.Startup(); err != nil {
		return err
	}

	if err := loadProgram(a.cpu, a.config); err != nil {
		return err
	}

	if !a.config.Debug {
		a.cpu.Start()
	}

	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	a.keypad.Update()

	if err := a.cpu.Update(); err != nil {
		log.Println(err)
	}

	if pixels, ok := a.cpu.Frame(); ok {
		a.display.Update(pixels)
	}

	// Periodically render display contents.
	if time.Since(a.lastRendered) >= time.Second/60 {
		a.lastRendered = time.Now()
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		a.display.Draw()
		a.window.SwapBuffers()
	}

	// Periodically update the window title to show the current cpu clock frequency.
	if time.Since(a.titleUpdated) >= time.Second {
		a.titleUpdated = time.Now()
		a.window.SetTitle(a.title())
	}

	glfw.PollEvents()

	if !a.cpu.Running() {
		time.Sleep(time.Millisecond * 10)
	}
}

// title returns the window title.
func (a *App) title() string {
	state := prettyFrequency(a.cpu.Frequency())
	if !a.cpu.Running() {
		state = "paused"
	}

	title := fmt.Sprintf("%s %s - %s - %s", AppName, AppVersion, programName(a.config), state)
	if a.cpu.Timers().Beeping() {
		title += " - beep"
	}

	return title
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	if err := a.cpu.Shutdown(); err != nil {
		log.Println(err)
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if a.keypad.KeyEvent(key, action) || action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF5:
		running := a.cpu.Running()
		if err = loadProgram(a.cpu, a.config); err == nil && running {
			a.cpu.Start()
		}
	case glfw.KeyF6:
		a.cpu.ToggleRun()
	case glfw.KeyF7:
		if !a.cpu.Running() {
			err = a.cpu.Step()
		}
	case glfw.KeyF8:
		a.config.PrintTrace = !a.config.PrintTrace
	}

	if err != nil && err != io.EOF {
		log.Println(err)
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := cpu.DisplayWidth * a.config.ScaleFactor
	height := cpu.DisplayHeight * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, a.title(), monitor, nil)
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	glfw.SwapInterval(0)

	err = gl.Init()
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// printHelp writes a short overview of supported shortcut keys to stdout.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the program.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F5       (re)load the program from disk and reset the machine.\n")
	sb.WriteString(" F6       Start/Stop program execution.\n")
	sb.WriteString(" F7       Perform a single execution step while stopped.\n")
	sb.WriteString(" F8       Enable/Disable instruction trace output.\n")
	sb.WriteString(" keypad   1234/QWER/ASDF/ZXCV map onto 123C/456D/789E/A0BF.")
	log.Println(sb.String())
}
