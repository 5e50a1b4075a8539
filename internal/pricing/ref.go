package pricing

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

// Kind discriminates the node types the engine can price.
type Kind string

const (
	KindInsumo  Kind = "insumo"
	KindProduto Kind = "produto"
	KindReceita Kind = "receita"
	KindCombo   Kind = "combo"
)

// Ref addresses a catalog node by kind + id. The graph is traversed through
// refs, never through owning pointers, so cyclic composition cannot blow up
// anything but the resolver's own guard.
type Ref struct {
	Kind Kind
	ID   uuid.UUID
}

func (r Ref) String() string { return fmt.Sprintf("%s/%s", r.Kind, r.ID) }

// umaReferencia collapses a set of nullable FKs into exactly one Ref.
// Zero or multiple populated FKs is a write-path invariant violation.
func umaReferencia(edge string, candidatos ...Ref) (Ref, error) {
	var ref Ref
	n := 0
	for _, c := range candidatos {
		if c.ID != uuid.Nil {
			ref = c
			n++
		}
	}
	if n != 1 {
		return Ref{}, fmt.Errorf("%s com %d referencias: %w", edge, n, ErrComponenteInvalido)
	}
	return ref, nil
}

func deref(kind Kind, id *uuid.UUID) Ref {
	if id == nil {
		return Ref{Kind: kind}
	}
	return Ref{Kind: kind, ID: *id}
}

// RefDoComponente extracts the single reference of a recipe component.
func RefDoComponente(c model.ReceitaComponente) (Ref, error) {
	return umaReferencia("receita_componente",
		deref(KindInsumo, c.InsumoID),
		deref(KindReceita, c.ReceitaFilhaID),
		deref(KindProduto, c.ProdutoID),
		deref(KindCombo, c.ComboID),
	)
}

// RefDoComboItem extracts the single reference of a flat combo item.
func RefDoComboItem(i model.ComboItem) (Ref, error) {
	return umaReferencia("combo_item",
		deref(KindProduto, i.ProdutoID),
		deref(KindReceita, i.ReceitaID),
	)
}

// RefDoSecaoItem extracts the single reference of a combo section item.
func RefDoSecaoItem(i model.ComboSecaoItem) (Ref, error) {
	return umaReferencia("combo_secao_item",
		deref(KindProduto, i.ProdutoID),
		deref(KindReceita, i.ReceitaID),
	)
}

// RefDoComplementoItem extracts the single reference of an addable option.
func RefDoComplementoItem(i model.ComplementoItem) (Ref, error) {
	return umaReferencia("complemento_item",
		deref(KindProduto, i.ProdutoID),
		deref(KindReceita, i.ReceitaID),
		deref(KindCombo, i.ComboID),
	)
}

// RefPaiDoVinculo extracts the parent a complemento is attached to.
func RefPaiDoVinculo(v model.ComplementoVinculo) (Ref, error) {
	return umaReferencia("complemento_vinculo",
		deref(KindProduto, v.ProdutoID),
		deref(KindReceita, v.ReceitaID),
		deref(KindCombo, v.ComboID),
	)
}
