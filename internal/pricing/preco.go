package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

// PrecoEfetivoDoComplementoItem resolves the price that applies to an addable
// option in its complemento context: the per-item override when set, else the
// referenced entity's own default sale price.
func (e *Engine) PrecoEfetivoDoComplementoItem(ctx context.Context, item model.ComplementoItem) (decimal.Decimal, error) {
	if item.PrecoOverride != nil {
		return *item.PrecoOverride, nil
	}
	ref, err := RefDoComplementoItem(item)
	if err != nil {
		return decimal.Zero, err
	}
	return e.precoPadrao(ctx, ref)
}

// PrecoEfetivoDoSecaoItem resolves the price of a combo section option.
// Section pricing is additive by definition: the value is always the item's
// incremental price, zero included — there is no default fallback.
func PrecoEfetivoDoSecaoItem(item model.ComboSecaoItem) decimal.Decimal {
	return item.PrecoIncremental
}

// precoPadrao is the entity's own default sale price. For combos with no
// base price the cost resolver stands in, so a purely composed combo still
// prices its add-on use sensibly.
func (e *Engine) precoPadrao(ctx context.Context, ref Ref) (decimal.Decimal, error) {
	switch ref.Kind {
	case KindProduto:
		p, err := e.reader.Produto(ctx, ref.ID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("produto %s: %w", ref.ID, err)
		}
		return p.PrecoVenda, nil
	case KindReceita:
		r, err := e.reader.Receita(ctx, ref.ID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("receita %s: %w", ref.ID, err)
		}
		return r.PrecoVenda, nil
	case KindCombo:
		c, err := e.reader.Combo(ctx, ref.ID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("combo %s: %w", ref.ID, err)
		}
		if c.PrecoBase.IsPositive() {
			return c.PrecoBase, nil
		}
		return e.ResolverCusto(ctx, ref)
	default:
		return decimal.Zero, fmt.Errorf("tipo %q nao tem preco de venda: %w", ref.Kind, ErrItemBaseInvalido)
	}
}
