package cgen

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Options is the API-level configuration for one generation pass.
type Options struct {
	// Output/layout
	IndentWidth int
	Banner      bool
	SourceName  string

	// Declaration hoisting: when set, a block that needs scope-local
	// declarations outside any function gets them at file scope instead of
	// failing the pass.
	HoistOrphansToFileScope bool

	Logger *slog.Logger
}

func Defaults() Options {
	return Options{
		IndentWidth:             2,
		Banner:                  true,
		SourceName:              "",
		HoistOrphansToFileScope: false,
	}
}

func (o Options) Validate() error {
	if o.IndentWidth < 1 || o.IndentWidth > 8 {
		return fmt.Errorf("indent must be between 1 and 8 spaces")
	}
	if strings.ContainsAny(o.SourceName, "\n*") {
		return fmt.Errorf("source name cannot contain newlines or '*'")
	}
	return nil
}

func (o Options) normalize() Options {
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

func (o Options) indent() string {
	return strings.Repeat(" ", o.IndentWidth)
}
