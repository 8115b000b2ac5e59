// Package config loads the dashboard configuration.
//
// Configuration is written in CUE. The embedded default.cue carries the
// schema and every default; an optional user file is unified on top, so a
// user file only states what it changes.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/nutridash/internal/dispatch"
	"github.com/roach88/nutridash/internal/menu"
	"github.com/roach88/nutridash/internal/view"
)

//go:embed default.cue
var defaultCUE []byte

// Config is the decoded dashboard configuration.
type Config struct {
	Dataset   string              `json:"dataset"`
	Histogram Histogram           `json:"histogram"`
	Reference view.Reference      `json:"reference"`
	Scatter   Scatter             `json:"scatter"`
	Outputs   map[string][]string `json:"outputs"`
}

// Histogram configures the calorie histogram.
type Histogram struct {
	Bins int `json:"bins"`
}

// Scatter names the plotted attributes.
type Scatter struct {
	X    string `json:"x"`
	Y    string `json:"y"`
	Size string `json:"size"`
}

// Error reports an invalid configuration file.
type Error struct {
	File    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %s", e.File, e.Message)
}

// Default returns the built-in configuration.
func Default() (*Config, error) {
	return LoadBytes("", nil)
}

// Load reads path and unifies it with the defaults. An empty path yields
// the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{File: path, Message: err.Error()}
	}
	return LoadBytes(path, src)
}

// LoadBytes unifies src (named name for diagnostics) with the defaults.
// A nil src yields the defaults.
func LoadBytes(name string, src []byte) (*Config, error) {
	ctx := cuecontext.New()

	value := ctx.CompileBytes(defaultCUE, cue.Filename("default.cue"))
	if err := value.Err(); err != nil {
		return nil, &Error{File: "default.cue", Message: cueerrors.Details(err, nil)}
	}

	if src != nil {
		user := ctx.CompileBytes(src, cue.Filename(name))
		if err := user.Err(); err != nil {
			return nil, &Error{File: name, Message: cueerrors.Details(err, nil)}
		}
		value = value.Unify(user)
	}

	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, &Error{File: name, Message: cueerrors.Details(err, nil)}
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, &Error{File: name, Message: cueerrors.Details(err, nil)}
	}
	return &cfg, nil
}

// ViewOptions converts the configuration into generator options.
func (c *Config) ViewOptions() (dispatch.ViewOptions, error) {
	opts := dispatch.ViewOptions{
		Bins:      c.Histogram.Bins,
		Reference: c.Reference,
	}

	var err error
	if opts.Scatter.X, err = menu.ParseAttribute(c.Scatter.X); err != nil {
		return dispatch.ViewOptions{}, fmt.Errorf("scatter.x: %w", err)
	}
	if opts.Scatter.Y, err = menu.ParseAttribute(c.Scatter.Y); err != nil {
		return dispatch.ViewOptions{}, fmt.Errorf("scatter.y: %w", err)
	}
	if c.Scatter.Size != "" {
		if opts.Scatter.Size, err = menu.ParseAttribute(c.Scatter.Size); err != nil {
			return dispatch.ViewOptions{}, fmt.Errorf("scatter.size: %w", err)
		}
	}
	return opts, nil
}

// Dependencies converts the outputs table into the dispatcher's form.
func (c *Config) Dependencies() (map[dispatch.OutputID][]dispatch.InputID, error) {
	deps := make(map[dispatch.OutputID][]dispatch.InputID, len(c.Outputs))
	for out, inputs := range c.Outputs {
		ids := make([]dispatch.InputID, 0, len(inputs))
		for _, name := range inputs {
			id, err := dispatch.ParseInputID(name)
			if err != nil {
				return nil, fmt.Errorf("outputs.%s: %w", out, err)
			}
			ids = append(ids, id)
		}
		deps[dispatch.OutputID(out)] = ids
	}
	return deps, nil
}

// Bindings builds the standard dispatcher bindings from the configuration.
func (c *Config) Bindings() ([]dispatch.Binding, error) {
	opts, err := c.ViewOptions()
	if err != nil {
		return nil, err
	}
	deps, err := c.Dependencies()
	if err != nil {
		return nil, err
	}
	return dispatch.StandardBindings(opts, deps), nil
}
