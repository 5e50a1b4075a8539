package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegrasSelecao are the group-level constraints of one attachment — either a
// complemento vínculo or a combo section. Nil bounds mean unbounded.
type RegrasSelecao struct {
	Nome         string
	Obrigatorio  bool
	Quantitativo bool
	MinItens     *int
	MaxItens     *int
}

// OpcaoSelecao is one eligible option with its already-resolved effective
// price. Per-option bounds only exist for section items; complemento options
// leave PermiteQuantidade true with zeroed bounds (the group flag governs).
// QuantidadeMax zero means unbounded.
type OpcaoSelecao struct {
	ID                uuid.UUID
	Preco             decimal.Decimal
	PermiteQuantidade bool
	QuantidadeMin     int
	QuantidadeMax     int
}

// Selecao maps option id → chosen quantity. Absence and explicit zero are
// equivalent: the option was not chosen.
type Selecao map[uuid.UUID]int

// ValidarSelecao checks a proposed choice set against one attachment's rules
// and, on acceptance, returns the group's price contribution
// Σ preco(opcao) × quantidade. It is pure and total: for any well-formed
// input it returns either a price or one specific *ErroSelecao — first
// failure wins, in the documented check order.
func ValidarSelecao(regras RegrasSelecao, opcoes []OpcaoSelecao, escolha Selecao) (decimal.Decimal, error) {
	elegiveis := make(map[uuid.UUID]OpcaoSelecao, len(opcoes))
	for _, o := range opcoes {
		elegiveis[o.ID] = o
	}

	// 1. Toda opção escolhida precisa pertencer ao grupo.
	for id := range escolha {
		if _, ok := elegiveis[id]; !ok {
			return decimal.Zero, &ErroSelecao{
				Codigo:  SelecaoOpcaoDesconhecida,
				Grupo:   regras.Nome,
				OpcaoID: id,
				Detalhe: "opcao nao pertence a este grupo",
			}
		}
	}

	// Quantidade zero equivale a ausente.
	escolhidas := make(map[uuid.UUID]int, len(escolha))
	for id, qtd := range escolha {
		if qtd > 0 {
			escolhidas[id] = qtd
		}
	}

	// 2. Grupo não quantitativo: no máximo uma opção, com quantidade 1.
	if !regras.Quantitativo {
		if len(escolhidas) > 1 {
			return decimal.Zero, &ErroSelecao{
				Codigo:  SelecaoOpcoesDemais,
				Grupo:   regras.Nome,
				Detalhe: "grupo de escolha unica recebeu mais de uma opcao",
			}
		}
		for id, qtd := range escolhidas {
			if qtd != 1 {
				return decimal.Zero, &ErroSelecao{
					Codigo:  SelecaoQuantidadeInvalida,
					Grupo:   regras.Nome,
					OpcaoID: id,
					Detalhe: "grupo de escolha unica exige quantidade exatamente 1",
				}
			}
		}
	}

	total := 0
	preco := decimal.Zero
	for id, qtd := range escolhidas {
		opcao := elegiveis[id]

		// 3. Opção que não permite quantidade: exatamente 1.
		if !opcao.PermiteQuantidade && qtd != 1 {
			return decimal.Zero, &ErroSelecao{
				Codigo:  SelecaoQuantidadeInvalida,
				Grupo:   regras.Nome,
				OpcaoID: id,
				Detalhe: "opcao nao permite quantidade diferente de 1",
			}
		}

		// 4. Limites por opção, quando declarados.
		if qtd < opcao.QuantidadeMin || (opcao.QuantidadeMax > 0 && qtd > opcao.QuantidadeMax) {
			return decimal.Zero, &ErroSelecao{
				Codigo:  SelecaoForaDoIntervalo,
				Grupo:   regras.Nome,
				OpcaoID: id,
				Detalhe: "quantidade fora do intervalo permitido para a opcao",
			}
		}

		total += qtd
		preco = preco.Add(opcao.Preco.Mul(decimal.NewFromInt(int64(qtd))))
	}

	// 5. Obrigatoriedade do grupo.
	if regras.Obrigatorio {
		minimo := 1
		if regras.MinItens != nil && *regras.MinItens > minimo {
			minimo = *regras.MinItens
		}
		if total < minimo {
			return decimal.Zero, &ErroSelecao{
				Codigo:  SelecaoObrigatoriaNaoAtendida,
				Grupo:   regras.Nome,
				Detalhe: "grupo obrigatorio sem selecao suficiente",
			}
		}
	} else if total == 0 {
		// Grupo opcional sem escolha: contribui zero.
		return decimal.Zero, nil
	}

	// 6. Limites do grupo.
	if regras.MinItens != nil && total < *regras.MinItens {
		return decimal.Zero, &ErroSelecao{
			Codigo:  SelecaoAbaixoDoMinimo,
			Grupo:   regras.Nome,
			Detalhe: "total selecionado abaixo do minimo do grupo",
		}
	}
	if regras.MaxItens != nil && total > *regras.MaxItens {
		return decimal.Zero, &ErroSelecao{
			Codigo:  SelecaoAcimaDoMaximo,
			Grupo:   regras.Nome,
			Detalhe: "total selecionado acima do maximo do grupo",
		}
	}

	return preco, nil
}
