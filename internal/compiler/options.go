package compiler

import (
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/rtl"
	"github.com/yacobolo/atomcss/internal/shorthands"
)

// Options configures one compilation run
type Options struct {
	// StyleResolution selects the shorthand strategy
	StyleResolution shorthands.Name

	// Dev adds readable namespace classes to merges and records runtime
	// injection calls
	Dev bool

	// Debug prefixes class names with their property and records source
	// locations for merges
	Debug bool

	// ClassNamePrefix starts every generated class and variable name
	ClassNamePrefix string

	// GenConditionalClasses keeps conditional lookup tables even when every
	// condition is statically known
	GenConditionalClasses bool

	// SkipConditional leaves conditional merges to be evaluated at runtime
	SkipConditional bool

	// LegacyValueFlipping mirrors shadows for RTL
	LegacyValueFlipping bool

	// VendorPrefixes emits -webkit- copies where engines still need them
	VendorPrefixes bool

	// UseLayers groups the stylesheet into @layer blocks by priority
	UseLayers bool

	// FileName is the style-definition source, used for variable hashes and
	// dev class names
	FileName string

	Logger *zap.Logger
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		StyleResolution: shorthands.ApplicationOrder,
		ClassNamePrefix: "x",
	}
}

func (o Options) rtl() rtl.Options {
	return rtl.Options{LegacyValueFlipping: o.LegacyValueFlipping}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
