// Package console reads debug commands from a terminal and applies them to the renderer.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-quad/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/mattn/go-shellwords"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Prompt is printed before each line when the input is an interactive terminal.
const Prompt = ">"

// ErrUsage is returned by Execute when a known command has malformed arguments.
var ErrUsage = errors.New("usage")

// Colors is the table of named clear colors accepted by "set renderer.clear_color".
var Colors = map[string]wgpu.Color{
	"red":   {R: 1, G: 0, B: 0, A: 1},
	"green": {R: 0, G: 1, B: 0, A: 1},
	"blue":  {R: 0, G: 0, B: 1, A: 1},
}

const helpText = `commands:
  set renderer.clear_color <red|green|blue>
  set renderer.texture <path>
  set camera.eye <x> <y> <z>
  set camera.target <x> <y> <z>
  set camera.fov <degrees>
  move camera <dx> <dy> <dz>
  help
  exit`

// Target is what console commands act on.
type Target interface {
	// SetBackgroundColor sets the clear color.
	//
	// Parameters:
	//   - c: the clear color
	SetBackgroundColor(c wgpu.Color)

	// SetTexture makes the identified image the active texture.
	//
	// Parameters:
	//   - identifier: the texture identifier
	//
	// Returns:
	//   - error: an error if the texture could not be applied
	SetTexture(identifier string) error

	// MoveCamera translates the camera eye.
	//
	// Parameters:
	//   - dx, dy, dz: the translation
	//
	// Returns:
	//   - error: an error if the camera is disabled
	MoveCamera(dx, dy, dz float32) error

	// SetCameraEye places the camera eye.
	//
	// Parameters:
	//   - x, y, z: the eye position
	//
	// Returns:
	//   - error: an error if the camera is disabled
	SetCameraEye(x, y, z float32) error

	// SetCameraTarget sets the point the camera looks at.
	//
	// Parameters:
	//   - x, y, z: the target position
	//
	// Returns:
	//   - error: an error if the camera is disabled
	SetCameraTarget(x, y, z float32) error

	// SetCameraFov sets the vertical field of view.
	//
	// Parameters:
	//   - degrees: the field of view in degrees
	//
	// Returns:
	//   - error: an error if the camera is disabled or the angle is out of range
	SetCameraFov(degrees float32) error
}

type console struct {
	target Target
	in     io.Reader
	out    *termenv.Output
	onExit func()

	interactive bool
}

// Console is a line-oriented command interpreter.
type Console interface {
	// Execute runs one command line. Blank lines and unknown commands are ignored.
	//
	// Parameters:
	//   - line: the raw input line
	//
	// Returns:
	//   - error: ErrUsage for malformed arguments of a known command, or the target's error
	Execute(line string) error

	// Run reads lines until the input ends or ctx is cancelled. Errors from Execute are printed
	// and do not stop the loop.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: a read error, or nil on end of input or cancellation
	Run(ctx context.Context) error
}

var _ Console = &console{}

// NewConsole creates a console acting on target. By default it reads os.Stdin and writes os.Stdout.
//
// Parameters:
//   - target: the object commands act on
//   - options: functional options overriding input, output and the exit handler
//
// Returns:
//   - Console: the console
func NewConsole(target Target, options ...ConsoleBuilderOption) Console {
	c := &console{
		target: target,
		in:     os.Stdin,
		out:    termenv.NewOutput(os.Stdout),
		onExit: func() { os.Exit(0) },
	}
	for _, opt := range options {
		opt(c)
	}
	if f, ok := c.in.(*os.File); ok {
		c.interactive = term.IsTerminal(int(f.Fd()))
	}
	return c
}

func (c *console) Execute(line string) error {
	args, err := shellwords.Parse(line)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "exit":
		c.onExit()
		return nil
	case "help":
		fmt.Fprintln(c.out, helpText)
		return nil
	case "set":
		return c.set(args[1:])
	case "move":
		return c.move(args[1:])
	default:
		common.Logger().Debug("console: unknown command", "command", args[0])
		return nil
	}
}

func (c *console) set(args []string) error {
	if len(args) == 0 {
		return nil
	}
	switch args[0] {
	case "renderer.clear_color":
		if len(args) < 2 {
			return fmt.Errorf("%w: set renderer.clear_color <red|green|blue>", ErrUsage)
		}
		color, ok := Colors[args[1]]
		if !ok {
			common.Logger().Debug("console: unknown color", "color", args[1])
			return nil
		}
		c.target.SetBackgroundColor(color)
		return nil
	case "renderer.texture":
		if len(args) < 2 {
			return fmt.Errorf("%w: set renderer.texture <path>", ErrUsage)
		}
		return c.target.SetTexture(args[1])
	case "camera.eye":
		v, err := parseFloats(args[1:], 3, "set camera.eye <x> <y> <z>")
		if err != nil {
			return err
		}
		return c.target.SetCameraEye(v[0], v[1], v[2])
	case "camera.target":
		v, err := parseFloats(args[1:], 3, "set camera.target <x> <y> <z>")
		if err != nil {
			return err
		}
		return c.target.SetCameraTarget(v[0], v[1], v[2])
	case "camera.fov":
		v, err := parseFloats(args[1:], 1, "set camera.fov <degrees>")
		if err != nil {
			return err
		}
		return c.target.SetCameraFov(v[0])
	default:
		common.Logger().Debug("console: unknown setting", "setting", args[0])
		return nil
	}
}

func (c *console) move(args []string) error {
	if len(args) == 0 || args[0] != "camera" {
		return nil
	}
	d, err := parseFloats(args[1:], 3, "move camera <dx> <dy> <dz>")
	if err != nil {
		return err
	}
	return c.target.MoveCamera(d[0], d[1], d[2])
}

// parseFloats parses exactly n numeric arguments, reporting usage on any mismatch.
func parseFloats(args []string, n int, usage string) ([]float32, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	out := make([]float32, n)
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrUsage, s)
		}
		out[i] = float32(v)
	}
	return out, nil
}

func (c *console) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		c.prompt()
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return err
		case line := <-lines:
			if err := c.Execute(strings.TrimSpace(line)); err != nil {
				fmt.Fprintln(c.out, c.out.String(err.Error()).Foreground(c.out.Color("1")))
			}
		}
	}
}

func (c *console) prompt() {
	if !c.interactive {
		return
	}
	fmt.Fprint(c.out, c.out.String(Prompt+" ").Bold())
}
