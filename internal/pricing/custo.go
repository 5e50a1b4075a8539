package pricing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// custoState is the per-call resolution state. ancestrais holds the refs
// currently on the DFS stack (the cycle guard); memo caches refs already
// fully resolved within this call tree so diamond-shaped graphs are not
// traversed twice. The two never overlap: a memo hit is only possible after
// the ref was popped from ancestrais.
//
// State is created fresh on every top-level call and discarded on return —
// costs can legitimately change between calls as the catalog mutates, so
// nothing here may outlive one invocation.
type custoState struct {
	ancestrais map[Ref]bool
	memo       map[Ref]decimal.Decimal
}

// ResolverCusto computes the monetary cost of any catalog node.
//
// Cycles (a receita that reaches itself through any number of hops) are not
// errors: the cyclic edge contributes zero and a warning is logged, so a bad
// edit never takes catalog reads down. Malformed edges are fatal
// (ErrComponenteInvalido). All arithmetic is exact decimal; rounding happens
// only at the boundary (Arredondar).
func (e *Engine) ResolverCusto(ctx context.Context, ref Ref) (decimal.Decimal, error) {
	st := &custoState{
		ancestrais: make(map[Ref]bool),
		memo:       make(map[Ref]decimal.Decimal),
	}
	return e.resolverCusto(ctx, ref, st)
}

func (e *Engine) resolverCusto(ctx context.Context, ref Ref, st *custoState) (decimal.Decimal, error) {
	// Cycle guard first — a node still being resolved must NOT be served from
	// the memo, that is exactly the cycle case.
	if st.ancestrais[ref] {
		log.Warn().
			Str("node", ref.String()).
			Msg("composicao circular detectada — aresta avaliada como custo zero")
		return decimal.Zero, nil
	}
	if c, ok := st.memo[ref]; ok {
		return c, nil
	}

	var custo decimal.Decimal
	switch ref.Kind {
	case KindInsumo:
		insumo, err := e.reader.Insumo(ctx, ref.ID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("insumo %s: %w", ref.ID, err)
		}
		custo = insumo.Custo

	case KindProduto:
		produto, err := e.reader.Produto(ctx, ref.ID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("produto %s: %w", ref.ID, err)
		}
		custo = custoDoProduto(produto.PrecoCusto, produto.PrecoVenda)

	case KindReceita:
		st.ancestrais[ref] = true
		componentes, err := e.reader.ComponentesDaReceita(ctx, ref.ID)
		if err != nil {
			delete(st.ancestrais, ref)
			return decimal.Zero, fmt.Errorf("componentes da receita %s: %w", ref.ID, err)
		}
		total := decimal.Zero
		for _, comp := range componentes {
			alvo, err := RefDoComponente(comp)
			if err != nil {
				delete(st.ancestrais, ref)
				return decimal.Zero, fmt.Errorf("receita %s: %w", ref.ID, err)
			}
			unitario, err := e.resolverCusto(ctx, alvo, st)
			if err != nil {
				delete(st.ancestrais, ref)
				return decimal.Zero, err
			}
			// Cada aresta conta por si — uma sub-receita referenciada duas
			// vezes soma duas vezes.
			total = total.Add(comp.Quantidade.Mul(unitario))
		}
		delete(st.ancestrais, ref)
		custo = total

	case KindCombo:
		st.ancestrais[ref] = true
		itens, err := e.reader.ItensDoCombo(ctx, ref.ID)
		if err != nil {
			delete(st.ancestrais, ref)
			return decimal.Zero, fmt.Errorf("itens do combo %s: %w", ref.ID, err)
		}
		total := decimal.Zero
		for _, item := range itens {
			alvo, err := RefDoComboItem(item)
			if err != nil {
				delete(st.ancestrais, ref)
				return decimal.Zero, fmt.Errorf("combo %s: %w", ref.ID, err)
			}
			unitario, err := e.resolverCusto(ctx, alvo, st)
			if err != nil {
				delete(st.ancestrais, ref)
				return decimal.Zero, err
			}
			total = total.Add(unitario.Mul(decimal.NewFromInt(int64(item.Quantidade))))
		}
		delete(st.ancestrais, ref)
		custo = total

	default:
		return decimal.Zero, fmt.Errorf("tipo %q: %w", ref.Kind, ErrComponenteInvalido)
	}

	st.memo[ref] = custo
	return custo, nil
}

// custoDoProduto picks the designated product-cost field: PrecoCusto when the
// catalog maintains it, otherwise the sale price stands in.
func custoDoProduto(precoCusto, precoVenda decimal.Decimal) decimal.Decimal {
	if precoCusto.IsPositive() {
		return precoCusto
	}
	return precoVenda
}

// Arredondar rounds an exact figure to the currency's minor unit (half-up).
// Only call at persistence/display boundaries — never mid-computation.
func Arredondar(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
