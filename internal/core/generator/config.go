package generator

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNoOutput marks a generator without a target path.
	ErrNoOutput = errors.New("no output path")

	// ErrNothingToGenerate marks a run without objects.
	ErrNothingToGenerate = errors.New("nothing to generate")
)

// Config selects where and how the generated text is written.
type Config struct {
	// Output is the generated file. With Separate it names the pair,
	// the extension is replaced by .h and .cpp.
	Output string `yaml:"output" json:"output"`

	// Namespace wraps everything but the includes, empty for none.
	Namespace string `yaml:"namespace" json:"namespace"`

	// Includes go into every file, ImplIncludes only into the implementation.
	Includes     []string `yaml:"includes" json:"includes"`
	ImplIncludes []string `yaml:"impl_includes" json:"impl_includes"`

	// Separate writes a header and implementation pair instead of one file.
	Separate bool `yaml:"separate" json:"separate"`

	// Bare drops the banner and the pragma, for fragments included elsewhere.
	Bare bool `yaml:"bare" json:"bare"`

	// ExportMacro is stamped on every exported declaration.
	ExportMacro string `yaml:"export" json:"export"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return ErrNoOutput
	}
	if c.Separate && c.Bare {
		return errors.Errorf("%s: bare output can't be split into a header and implementation", c.Output)
	}
	return nil
}

// HeaderPath is the file receiving the header pass.
func (c Config) HeaderPath() string {
	if !c.Separate {
		return c.Output
	}
	return strings.TrimSuffix(c.Output, filepath.Ext(c.Output)) + ".h"
}

// ImplementationPath is the file receiving the implementation pass. Without
// Separate it's the same as HeaderPath.
func (c Config) ImplementationPath() string {
	if !c.Separate {
		return c.Output
	}
	return strings.TrimSuffix(c.Output, filepath.Ext(c.Output)) + ".cpp"
}
