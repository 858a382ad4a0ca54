package typegraph

import "fmt"

// Site locates a declaration so diagnostics can point back at it.
type Site struct {
	File string `json:"file,omitempty" yaml:"file,omitempty"`
	Path string `json:"path" yaml:"path"`
}

func (s Site) String() string {
	if s.File == "" {
		return s.Path
	}
	return fmt.Sprintf("%s:%s", s.File, s.Path)
}

// Declaration attaches a named decorator with arguments to a graph node.
// Declarations are applied by the declaration phase before rendering.
type Declaration struct {
	Name   string
	Target Type
	Args   []any
	Site   Site
}

// Program is a resolved type graph plus its pending declarations.
type Program struct {
	Global       *Namespace
	Declarations []Declaration
}

// NewProgram creates a program with an empty global namespace.
func NewProgram() *Program {
	return &Program{Global: NewNamespace("")}
}

// Declare records a declaration against target.
func (p *Program) Declare(name string, target Type, site Site, args ...any) {
	p.Declarations = append(p.Declarations, Declaration{
		Name:   name,
		Target: target,
		Args:   args,
		Site:   site,
	})
}
