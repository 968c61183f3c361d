package generator

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/leviathan-engine/filegen/internal/core/emit"
	"github.com/leviathan-engine/filegen/internal/core/observability/log"
	"github.com/leviathan-engine/filegen/pkg/generic"
)

const (
	banner = "// Automatically Generated File Do not edit! //\n//\n\n"

	// ReadOnly is the mode generated files are left with.
	ReadOnly fs.FileMode = 0o444

	writable fs.FileMode = 0o644
)

// Object is anything that can write itself in both passes.
type Object interface {
	Name() string
	Emit(w *emit.Writer, pass emit.Pass) error
}

// Exportable objects get the generator's export macro stamped on them.
type Exportable interface {
	SetExport(macro string)
}

// Includer objects need extra includes in the implementation file.
type Includer interface {
	ExtraIncludes() []string
}

// Artifact is one rendered file.
type Artifact struct {
	Path        string
	Content     []byte
	Fingerprint uint64
}

type Generator struct {
	config  Config
	objects []Object
	logger  log.Log
	buffers *generic.Pool[*bytes.Buffer]
}

type Option func(*Generator)

func WithLogger(logger log.Log) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func New(config Config, opts ...Option) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		config:  config,
		logger:  log.Nop(),
		buffers: generic.NewResetPool(func() *bytes.Buffer { return &bytes.Buffer{} }, (*bytes.Buffer).Reset),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With(log.String("output", config.Output))
	return g, nil
}

func (g *Generator) Config() Config { return g.config }

// Add appends obj to the emission order.
func (g *Generator) Add(objects ...Object) {
	for _, obj := range objects {
		if e, ok := obj.(Exportable); ok {
			e.SetExport(g.config.ExportMacro)
		}
		g.objects = append(g.objects, obj)
	}
}

func (g *Generator) Objects() []Object { return g.objects }

// Render produces the file contents without touching the disk.
func (g *Generator) Render() ([]Artifact, error) {
	if len(g.objects) == 0 {
		return nil, errors.Wrapf(ErrNothingToGenerate, "%s", g.config.Output)
	}

	if !g.config.Separate {
		content, err := g.render(g.config.Output, emit.Header, emit.Implementation)
		if err != nil {
			return nil, err
		}
		return []Artifact{newArtifact(g.config.Output, content)}, nil
	}

	header, err := g.render(g.config.HeaderPath(), emit.Header)
	if err != nil {
		return nil, err
	}
	impl, err := g.render(g.config.ImplementationPath(), emit.Implementation)
	if err != nil {
		return nil, err
	}

	return []Artifact{
		newArtifact(g.config.HeaderPath(), header),
		newArtifact(g.config.ImplementationPath(), impl),
	}, nil
}

func newArtifact(path string, content []byte) Artifact {
	return Artifact{Path: path, Content: content, Fingerprint: xxhash.Sum64(content)}
}

func (g *Generator) render(path string, passes ...emit.Pass) ([]byte, error) {
	buf := g.buffers.Get()
	defer g.buffers.Put(buf)

	w := emit.NewWriterOn(buf)

	header := len(passes) == 1 && passes[0].IsHeader()
	implementation := passes[len(passes)-1].IsImplementation()

	if !g.config.Bare {
		w.Write(banner)
		if !implementation || !g.config.Separate {
			w.Line("#pragma once")
		}
	}

	includes := append([]string(nil), g.config.Includes...)
	if implementation {
		if g.config.Separate {
			includes = append(includes, filepath.Base(g.config.HeaderPath()))
		}
		if !header {
			includes = append(includes, g.config.ImplIncludes...)
			includes = append(includes, g.extraIncludes()...)
		}
	}
	for _, inc := range includes {
		w.Line(include(inc))
	}
	if len(includes) > 0 {
		w.Blank()
	}

	if g.config.Namespace != "" {
		w.Line("namespace " + g.config.Namespace + "{")
		w.Blank()
	}

	for _, pass := range passes {
		for _, obj := range g.objects {
			if err := obj.Emit(w, pass); err != nil {
				return nil, errors.Wrapf(err, "%s: emitting %s (%s)", path, obj.Name(), pass)
			}
			g.logger.Debug("Emitted object",
				log.String("object", obj.Name()),
				log.String("pass", pass.String()))
		}
	}

	if g.config.Namespace != "" {
		w.Line("}")
	}

	return bytes.Clone(buf.Bytes()), nil
}

func (g *Generator) extraIncludes() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, obj := range g.objects {
		i, ok := obj.(Includer)
		if !ok {
			continue
		}
		for _, inc := range i.ExtraIncludes() {
			if _, dup := seen[inc]; dup {
				continue
			}
			seen[inc] = struct{}{}
			out = append(out, inc)
		}
	}
	return out
}

func include(path string) string {
	if strings.HasPrefix(path, "<") {
		return "#include " + path
	}
	return `#include "` + path + `"`
}

// Run renders everything and then writes each artifact, leaving it read only.
// Files whose content didn't change are not rewritten.
func (g *Generator) Run(ctx context.Context) ([]Artifact, error) {
	artifacts, err := g.Render()
	if err != nil {
		return nil, err
	}

	for _, a := range artifacts {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if err = g.write(a); err != nil {
			return nil, err
		}
	}
	return artifacts, nil
}

func (g *Generator) write(a Artifact) error {
	if err := os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", a.Path)
	}

	info, err := os.Stat(a.Path)
	switch {
	case err == nil:
		existing, readErr := os.ReadFile(a.Path)
		if readErr == nil && xxhash.Sum64(existing) == a.Fingerprint {
			g.logger.Info("File is up to date", log.String("path", a.Path))
			if info.Mode().Perm() != ReadOnly {
				return errors.Wrapf(os.Chmod(a.Path, ReadOnly), "protecting %s", a.Path)
			}
			return nil
		}
		if info.Mode().Perm()&0o200 == 0 {
			if err = os.Chmod(a.Path, writable); err != nil {
				return errors.Wrapf(err, "unprotecting %s", a.Path)
			}
		}
	case !errors.Is(err, fs.ErrNotExist):
		return errors.Wrapf(err, "checking %s", a.Path)
	}

	if err = os.WriteFile(a.Path, a.Content, writable); err != nil {
		return errors.Wrapf(err, "writing %s", a.Path)
	}
	if err = os.Chmod(a.Path, ReadOnly); err != nil {
		return errors.Wrapf(err, "protecting %s", a.Path)
	}

	g.logger.Info("Wrote file",
		log.String("path", a.Path),
		log.Int("bytes", len(a.Content)),
		log.Uint64("fingerprint", a.Fingerprint))
	return nil
}
