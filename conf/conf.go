// Package conf loads and saves ggo game configurations. The format is a
// TOML file with a single [conf] table; a lot of the shape is lifted
// whole-hog from LÖVE because it is stuff every game needs anyway.
package conf

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Conf holds the engine-level settings a game ships alongside its assets,
// conventionally as "conf.toml" in the resource directory.
type Conf struct {
	// Version is the ggo version the game is designed to work with.
	Version string `toml:"version"`

	// WindowTitle is the window title.
	WindowTitle string `toml:"window_title"`

	// WindowIcon is a resource path to the window's icon. Empty means
	// no icon.
	WindowIcon string `toml:"window_icon"`

	// WindowWidth and WindowHeight are the window's default size.
	WindowWidth  int `toml:"window_width"`
	WindowHeight int `toml:"window_height"`
}

// file is the on-disk shape: the settings live under a [conf] table.
type file struct {
	Conf Conf `toml:"conf"`
}

// Default returns the configuration used when no conf.toml is present.
func Default() Conf {
	return Conf{
		Version:      "0.0.0",
		WindowTitle:  "An easy, good game",
		WindowWidth:  800,
		WindowHeight: 600,
	}
}

// Decode reads a TOML configuration from r. Settings absent from the file
// keep their defaults.
func Decode(r io.Reader) (Conf, error) {
	f := file{Conf: Default()}
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return Conf{}, fmt.Errorf("conf: decode: %w", err)
	}
	return f.Conf, nil
}

// Encode writes c to w as a TOML [conf] table, the same shape Decode
// reads.
func (c Conf) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(file{Conf: c}); err != nil {
		return fmt.Errorf("conf: encode: %w", err)
	}
	return nil
}
