package rtl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/atomcss/internal/normalize"
)

func decl(p, v string) normalize.Declaration {
	return normalize.Declaration{Property: p, Value: v}
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name    string
		in      normalize.Declaration
		opts    Options
		wantLTR normalize.Declaration
		wantRTL *normalize.Declaration
	}{
		{
			name:    "direction independent",
			in:      decl("color", "red"),
			wantLTR: decl("color", "red"),
		},
		{
			name:    "standard logical property untouched",
			in:      decl("margin-inline-start", "4px"),
			wantLTR: decl("margin-inline-start", "4px"),
		},
		{
			name:    "padding start",
			in:      decl("padding-start", "4px"),
			wantLTR: decl("padding-left", "4px"),
			wantRTL: &normalize.Declaration{Property: "padding-right", Value: "4px"},
		},
		{
			name:    "end offset",
			in:      decl("end", "0"),
			wantLTR: decl("right", "0"),
			wantRTL: &normalize.Declaration{Property: "left", Value: "0"},
		},
		{
			name:    "corner radius",
			in:      decl("border-top-start-radius", "2px"),
			wantLTR: decl("border-top-left-radius", "2px"),
			wantRTL: &normalize.Declaration{Property: "border-top-right-radius", Value: "2px"},
		},
		{
			name:    "float inline-start",
			in:      decl("float", "inline-start"),
			wantLTR: decl("float", "left"),
			wantRTL: &normalize.Declaration{Property: "float", Value: "right"},
		},
		{
			name:    "float physical",
			in:      decl("float", "left"),
			wantLTR: decl("float", "left"),
		},
		{
			name:    "cursor",
			in:      decl("cursor", "ne-resize"),
			wantLTR: decl("cursor", "ne-resize"),
			wantRTL: &normalize.Declaration{Property: "cursor", Value: "nw-resize"},
		},
		{
			name:    "background position",
			in:      decl("background-position", "top end"),
			wantLTR: decl("background-position", "top right"),
			wantRTL: &normalize.Declaration{Property: "background-position", Value: "top left"},
		},
		{
			name:    "shadow without legacy flipping",
			in:      decl("box-shadow", "1px 2px 3px red"),
			wantLTR: decl("box-shadow", "1px 2px 3px red"),
		},
		{
			name:    "shadow with legacy flipping",
			in:      decl("box-shadow", "1px 2px 3px red, inset -4px 0 blue"),
			opts:    Options{LegacyValueFlipping: true},
			wantLTR: decl("box-shadow", "1px 2px 3px red, inset -4px 0 blue"),
			wantRTL: &normalize.Declaration{Property: "box-shadow", Value: "-1px 2px 3px red, inset 4px 0 blue"},
		},
		{
			name:    "shadow variable left alone",
			in:      decl("text-shadow", "var(--shadow)"),
			opts:    Options{LegacyValueFlipping: true},
			wantLTR: decl("text-shadow", "var(--shadow)"),
		},
		{
			name:    "custom property",
			in:      decl("--start", "start"),
			wantLTR: decl("--start", "start"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ltr, rtl := Transform(tt.in, tt.opts)
			assert.Equal(t, tt.wantLTR, ltr)
			if tt.wantRTL == nil {
				assert.Nil(t, rtl)
				return
			}
			require.NotNil(t, rtl)
			assert.Equal(t, *tt.wantRTL, *rtl)
		})
	}
}
