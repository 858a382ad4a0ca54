package csdlgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/csdlgen/internal/classify"
	"github.com/aretw0/csdlgen/internal/flatten"
	"github.com/aretw0/csdlgen/internal/identity"
	"github.com/aretw0/csdlgen/internal/logging"
	"github.com/aretw0/csdlgen/internal/presentation/csdl"
	"github.com/aretw0/csdlgen/internal/validator"
	"github.com/aretw0/csdlgen/pkg/adapters/file"
	"github.com/aretw0/csdlgen/pkg/annotation"
	"github.com/aretw0/csdlgen/pkg/observability"
	"github.com/aretw0/csdlgen/pkg/odata"
	"github.com/aretw0/csdlgen/pkg/ports"
	"github.com/aretw0/csdlgen/pkg/registry"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// Version of the generator.
const Version = "0.4.0"

// DefaultFilename is the name the document is saved under.
const DefaultFilename = "csdl.xml"

// ErrDiagnostics is returned by Emit in strict mode when declarations produced errors.
var ErrDiagnostics = errors.New("program has error diagnostics")

// Extension declares additional annotation kinds and decorators for every render.
type Extension func(ann *odata.Annotations, reg *registry.Registry)

// Emitter renders programs to CSDL and saves them to a document store.
type Emitter struct {
	logger          *slog.Logger
	excluded        []string
	store           ports.DocumentStore
	filename        string
	metrics         *observability.Metrics
	entityContainer bool
	strict          bool
	extensions      []Extension
}

// Option defines a functional option for configuring the Emitter.
type Option func(*Emitter)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Emitter) {
		e.logger = logger
	}
}

// WithExcludedNamespaces replaces the default ["Cadl"] prefix list.
func WithExcludedNamespaces(prefixes ...string) Option {
	return func(e *Emitter) {
		e.excluded = append([]string{}, prefixes...)
	}
}

// WithStore sets where Emit writes the document. Defaults to the file store.
func WithStore(store ports.DocumentStore) Option {
	return func(e *Emitter) {
		e.store = store
	}
}

// WithFilename sets the document name used by Emit.
func WithFilename(name string) Option {
	return func(e *Emitter) {
		e.filename = name
	}
}

// WithMetrics records renders and saves on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Emitter) {
		e.metrics = m
	}
}

// WithEntityContainer enables the EntityContainer placeholder for namespaces with routed interfaces.
func WithEntityContainer(enabled bool) Option {
	return func(e *Emitter) {
		e.entityContainer = enabled
	}
}

// WithStrict makes Emit refuse to save a document whose declarations produced errors.
func WithStrict(strict bool) Option {
	return func(e *Emitter) {
		e.strict = strict
	}
}

// WithExtension registers custom annotation kinds or decorators.
func WithExtension(ext Extension) Option {
	return func(e *Emitter) {
		e.extensions = append(e.extensions, ext)
	}
}

// New initializes an Emitter.
func New(opts ...Option) *Emitter {
	e := &Emitter{
		excluded: flatten.DefaultExcluded,
		filename: DefaultFilename,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.store == nil {
		e.store = file.New(file.DefaultDir)
	}

	return e
}

// SchemaInfo summarizes one rendered Schema.
type SchemaInfo struct {
	Namespace            string   `json:"namespace"`
	EntityTypes          int      `json:"entityTypes"`
	ComplexTypes         int      `json:"complexTypes"`
	EnumTypes            int      `json:"enumTypes"`
	NavigationProperties int      `json:"navigationProperties"`
	EntitySets           []string `json:"entitySets,omitempty"`
}

// Result is the outcome of a render.
type Result struct {
	Document    []byte
	Diagnostics annotation.Diagnostics
	Schemas     []SchemaInfo
	// Annotations holds the store populated from the program declarations.
	Annotations *odata.Annotations
	// Namespaces are the namespaces that produced a Schema, in document order.
	Namespaces []*typegraph.Namespace
}

// Apply runs the program declarations against a fresh annotation store.
func (e *Emitter) Apply(prog *typegraph.Program) (*odata.Annotations, annotation.Diagnostics) {
	ann := odata.New()
	reg := ann.NewRegistry()
	for _, ext := range e.extensions {
		ext(ann, reg)
	}

	diags := reg.Apply(prog.Declarations)
	for _, d := range diags {
		e.logger.Warn("declaration rejected",
			"code", d.Code,
			"site", d.Site.String(),
			"severity", d.Severity.String(),
			"msg", d.Message,
		)
	}
	return ann, diags
}

// Render applies declarations and renders the program. It never fails: rejected
// declarations are reported in Result.Diagnostics and simply do not take effect.
func (e *Emitter) Render(prog *typegraph.Program) *Result {
	start := time.Now()

	ann, diags := e.Apply(prog)

	builder := csdl.NewBuilder(ann, csdl.Options{
		Excluded:        e.excluded,
		EntityContainer: e.entityContainer,
		Routes:          ann,
	})

	namespaces := builder.Namespaces(prog.Global)
	schemas := make([]csdl.Element, 0, len(namespaces))
	infos := make([]SchemaInfo, 0, len(namespaces))
	for _, ns := range namespaces {
		schemas = append(schemas, builder.Schema(ns))
		infos = append(infos, summarize(ns, ann))
	}

	res := &Result{
		Document:    []byte(csdl.Document(schemas)),
		Diagnostics: diags,
		Schemas:     infos,
		Annotations: ann,
		Namespaces:  namespaces,
	}

	elapsed := time.Since(start)
	e.metrics.ObserveRender(elapsed, len(schemas), diags)
	e.logger.Debug("rendered document",
		"schemas", len(schemas),
		"bytes", len(res.Document),
		"diagnostics", len(diags),
		"duration", elapsed,
	)

	return res
}

// Validate applies declarations and additionally checks the program for problems
// the renderer tolerates, such as ambiguous keys or navigation to scalars.
func (e *Emitter) Validate(prog *typegraph.Program) annotation.Diagnostics {
	ann, diags := e.Apply(prog)
	return append(diags, validator.ValidateProgram(prog, ann, e.excluded)...)
}

// Emit renders the program and saves the document to the configured store.
func (e *Emitter) Emit(ctx context.Context, prog *typegraph.Program) (*Result, error) {
	res := e.Render(prog)

	if e.strict && res.Diagnostics.HasErrors() {
		return res, fmt.Errorf("%w: %w", ErrDiagnostics, res.Diagnostics)
	}

	err := e.store.Save(ctx, e.filename, res.Document)
	e.metrics.ObserveSave(err)
	if err != nil {
		e.logger.Error("failed to save document", "name", e.filename, "error", err)
		return res, fmt.Errorf("failed to save %s: %w", e.filename, err)
	}

	e.logger.Info("document saved", "name", e.filename, "schemas", len(res.Schemas))
	return res, nil
}

// Store returns the document store used by Emit.
func (e *Emitter) Store() ports.DocumentStore {
	return e.store
}

// Filename returns the document name used by Emit.
func (e *Emitter) Filename() string {
	return e.filename
}

func summarize(ns *typegraph.Namespace, ann *odata.Annotations) SchemaInfo {
	info := SchemaInfo{
		Namespace: identity.NamespaceString(ns),
		EnumTypes: ns.Enums.Len(),
	}
	for _, m := range ns.Models.Values() {
		if class, _ := classify.ClassifyModel(ann, m); class == classify.Entity {
			info.EntityTypes++
		} else {
			info.ComplexTypes++
		}
		for _, p := range m.Properties.Values() {
			if classify.ClassifyProperty(ann, p).Navigation {
				info.NavigationProperties++
			}
		}
	}
	for _, set := range csdl.EntitySets(ns, ann) {
		info.EntitySets = append(info.EntitySets, set.Path)
	}
	return info
}
