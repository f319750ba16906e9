package texture

import (
	"os"

	"github.com/Carmen-Shannon/oxy-quad/common"
	"github.com/mitchellh/go-homedir"
)

// Loader resolves a texture identifier into decoded staging data.
type Loader interface {
	// Load reads and decodes the texture named by identifier.
	//
	// Parameters:
	//   - identifier: the texture identifier, typically a file path
	//
	// Returns:
	//   - common.TextureStagingData: the decoded RGBA8 pixels
	//   - error: a *DecodeError or *InvalidDimensionsError on failure
	Load(identifier string) (common.TextureStagingData, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(identifier string) (common.TextureStagingData, error)

func (f LoaderFunc) Load(identifier string) (common.TextureStagingData, error) {
	return f(identifier)
}

var _ Loader = LoaderFunc(nil)

// NewFileLoader returns a Loader that treats identifiers as file paths. A leading ~ is
// expanded to the user's home directory.
//
// Returns:
//   - Loader: the file-backed loader
func NewFileLoader() Loader {
	return LoaderFunc(loadFile)
}

func loadFile(identifier string) (common.TextureStagingData, error) {
	path, err := homedir.Expand(identifier)
	if err != nil {
		return common.TextureStagingData{}, &DecodeError{Source: identifier, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return common.TextureStagingData{}, &DecodeError{Source: identifier, Err: err}
	}
	return Decode(identifier, data)
}
