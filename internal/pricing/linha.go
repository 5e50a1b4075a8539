package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// GrupoSelecao pairs one attachment's rules and eligible options with the
// customer's proposed choices for it. Option prices are already effective
// (resolved by the caller through PrecoEfetivo*).
type GrupoSelecao struct {
	Regras  RegrasSelecao
	Opcoes  []OpcaoSelecao
	Escolha Selecao
}

// LinhaPrecificada is the committed pricing of one order line.
type LinhaPrecificada struct {
	PrecoUnitario decimal.Decimal // preço base do item, por unidade
	PrecoSelecoes decimal.Decimal // soma das contribuições dos grupos, por unidade
	PrecosGrupos  []decimal.Decimal
	TotalLinha    decimal.Decimal // (unitario + selecoes) × quantidade
}

// PrecificarLinha prices one order line: the base item's unit price plus
// every selection group's contribution, times the quantity. Validation is
// all-or-nothing — the first group rejection fails the whole line; partially
// valid selections are never committed.
func (e *Engine) PrecificarLinha(ctx context.Context, base Ref, quantidade int, grupos []GrupoSelecao) (*LinhaPrecificada, error) {
	if quantidade < 1 {
		return nil, fmt.Errorf("quantidade %d invalida para a linha", quantidade)
	}

	unitario, err := e.precoPadrao(ctx, base)
	if err != nil {
		return nil, err
	}

	selecoes := decimal.Zero
	porGrupo := make([]decimal.Decimal, 0, len(grupos))
	for _, g := range grupos {
		contribuicao, err := ValidarSelecao(g.Regras, g.Opcoes, g.Escolha)
		if err != nil {
			return nil, err
		}
		selecoes = selecoes.Add(contribuicao)
		porGrupo = append(porGrupo, contribuicao)
	}

	qtd := decimal.NewFromInt(int64(quantidade))
	return &LinhaPrecificada{
		PrecoUnitario: unitario,
		PrecoSelecoes: selecoes,
		PrecosGrupos:  porGrupo,
		TotalLinha:    unitario.Add(selecoes).Mul(qtd),
	}, nil
}
