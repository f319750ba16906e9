package console

import (
	"io"

	"github.com/muesli/termenv"
)

// ConsoleBuilderOption is a functional option used to configure a Console during construction.
type ConsoleBuilderOption func(*console)

// WithInput sets the reader commands are read from.
//
// Parameters:
//   - r: the input reader
//
// Returns:
//   - ConsoleBuilderOption: a function that sets the input
func WithInput(r io.Reader) ConsoleBuilderOption {
	return func(c *console) {
		c.in = r
	}
}

// WithOutput sets the writer for the prompt, help and error messages.
//
// Parameters:
//   - w: the output writer
//
// Returns:
//   - ConsoleBuilderOption: a function that sets the output
func WithOutput(w io.Writer) ConsoleBuilderOption {
	return func(c *console) {
		c.out = termenv.NewOutput(w)
	}
}

// WithExitHandler replaces the handler of the "exit" command, which by default exits the
// process with status 0.
//
// Parameters:
//   - fn: the function called on "exit"
//
// Returns:
//   - ConsoleBuilderOption: a function that sets the exit handler
func WithExitHandler(fn func()) ConsoleBuilderOption {
	return func(c *console) {
		if fn != nil {
			c.onExit = fn
		}
	}
}
