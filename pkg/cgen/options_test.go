package cgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Options)
		wantErr bool
	}{
		{"defaults", func(*Options) {}, false},
		{"wide indent", func(o *Options) { o.IndentWidth = 8 }, false},
		{"zero indent", func(o *Options) { o.IndentWidth = 0 }, true},
		{"too wide", func(o *Options) { o.IndentWidth = 9 }, true},
		{"plain source", func(o *Options) { o.SourceName = "prog.json" }, false},
		{"comment close", func(o *Options) { o.SourceName = "a*/b" }, true},
		{"multi line source", func(o *Options) { o.SourceName = "a\nb" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Defaults()
			tt.modify(&opts)
			err := opts.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestOptionsNormalize(t *testing.T) {
	opts := Defaults().normalize()
	require.NotNil(t, opts.Logger)
	require.Equal(t, "  ", opts.indent())
}
