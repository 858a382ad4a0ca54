package ports

import (
	"context"

	"github.com/aretw0/csdlgen/pkg/typegraph"
)

// ProgramSource yields the program to render. Long-running adapters call it per
// request, so a source that re-reads its file picks up edits without a restart.
type ProgramSource func(ctx context.Context) (*typegraph.Program, error)
