// Package pricing implements the composite product pricing and
// selection-validation engine: cost resolution over the (possibly cyclic)
// catalog graph, effective add-on prices, selection validation and order
// line pricing.
//
// Every operation is a pure function of a read-only CatalogReader snapshot.
// The engine holds no mutable state, so one Engine can serve concurrent
// requests; the only per-call state is the resolver's ancestor set and memo,
// both local to a single ResolverCusto invocation.
package pricing

import (
	"context"

	"github.com/google/uuid"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

// CatalogReader supplies nodes and edges from a consistent, tenant-scoped
// catalog snapshot. Unknown ids are errors — the caller is expected to pass
// validated foreign keys.
type CatalogReader interface {
	Insumo(ctx context.Context, id uuid.UUID) (*model.Insumo, error)
	Produto(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	Receita(ctx context.Context, id uuid.UUID) (*model.Receita, error)
	ComponentesDaReceita(ctx context.Context, receitaID uuid.UUID) ([]model.ReceitaComponente, error)
	Combo(ctx context.Context, id uuid.UUID) (*model.Combo, error)
	ItensDoCombo(ctx context.Context, comboID uuid.UUID) ([]model.ComboItem, error)
}

// Engine evaluates costs and prices over a CatalogReader.
type Engine struct {
	reader CatalogReader
}

func New(reader CatalogReader) *Engine {
	return &Engine{reader: reader}
}
