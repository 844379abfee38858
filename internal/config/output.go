package config

import (
	"fmt"

	"github.com/jromang/picochess/internal/errors"
	"github.com/jromang/picochess/internal/export"
)

// OutputConfig holds settings related to game rendering.
type OutputConfig struct {
	// Columns is the maximum line length, 0 for no wrapping
	Columns int `mapstructure:"columns"`

	// IncludeComments keeps comments and NAGs in batch exports
	IncludeComments bool `mapstructure:"include_comments"`

	// IncludeVariations keeps variations in batch exports
	IncludeVariations bool `mapstructure:"include_variations"`
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Columns:           80,
		IncludeComments:   true,
		IncludeVariations: true,
	}
}

// Validate checks the output settings.
func (o *OutputConfig) Validate() error {
	if o.Columns < 0 {
		return fmt.Errorf("%w: columns %d", errors.ErrInvalidConfig, o.Columns)
	}
	return nil
}

// ExportOptions returns the movetext options these settings select.
func (o *OutputConfig) ExportOptions() export.Options {
	return export.Options{
		Comments:   o.IncludeComments,
		Variations: o.IncludeVariations,
	}
}
