package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func opcao(t *testing.T, preco string) OpcaoSelecao {
	t.Helper()
	return OpcaoSelecao{ID: uuid.New(), Preco: dec(t, preco), PermiteQuantidade: true}
}

func opcaoUnitaria(t *testing.T, preco string) OpcaoSelecao {
	t.Helper()
	return OpcaoSelecao{ID: uuid.New(), Preco: dec(t, preco), PermiteQuantidade: false, QuantidadeMin: 1, QuantidadeMax: 1}
}

func requireCodigo(t *testing.T, err error, codigo CodigoSelecao) {
	t.Helper()
	require.Error(t, err)
	sel, ok := AsErroSelecao(err)
	require.True(t, ok, "esperava *ErroSelecao, veio %T: %v", err, err)
	assert.Equal(t, codigo, sel.Codigo)
}

func TestValidarSelecao_OpcaoDesconhecida(t *testing.T) {
	regras := RegrasSelecao{Nome: "Extras", Quantitativo: true}
	opcoes := []OpcaoSelecao{opcao(t, "2.00")}

	_, err := ValidarSelecao(regras, opcoes, Selecao{uuid.New(): 1})
	requireCodigo(t, err, SelecaoOpcaoDesconhecida)
}

func TestValidarSelecao_SecaoObrigatoriaEscolhaUnica(t *testing.T) {
	// required=true, quantitative=false, min=1, max=1, duas opções elegíveis
	regras := RegrasSelecao{
		Nome:        "Escolha sua bebida",
		Obrigatorio: true,
		MinItens:    intPtr(1),
		MaxItens:    intPtr(1),
	}
	refri := opcaoUnitaria(t, "3.00")
	suco := opcaoUnitaria(t, "5.00")
	opcoes := []OpcaoSelecao{refri, suco}

	// Nada selecionado → obrigatória não atendida
	_, err := ValidarSelecao(regras, opcoes, Selecao{})
	requireCodigo(t, err, SelecaoObrigatoriaNaoAtendida)

	// Uma opção com quantidade 1 → preço incremental da opção
	preco, err := ValidarSelecao(regras, opcoes, Selecao{suco.ID: 1})
	require.NoError(t, err)
	assert.True(t, preco.Equal(dec(t, "5.00")), "preco = %s", preco)

	// Uma opção com quantidade 2 → grupo não é quantitativo
	_, err = ValidarSelecao(regras, opcoes, Selecao{suco.ID: 2})
	requireCodigo(t, err, SelecaoQuantidadeInvalida)

	// Duas opções → escolha única
	_, err = ValidarSelecao(regras, opcoes, Selecao{refri.ID: 1, suco.ID: 1})
	requireCodigo(t, err, SelecaoOpcoesDemais)
}

func TestValidarSelecao_ComplementoOpcionalComTeto(t *testing.T) {
	// required=false, quantitative=true, min=null, max=3
	regras := RegrasSelecao{
		Nome:         "Adicionais",
		Quantitativo: true,
		MaxItens:     intPtr(3),
	}
	bacon := opcao(t, "4.00")
	ovo := opcao(t, "2.00")
	opcoes := []OpcaoSelecao{bacon, ovo}

	// Total 4 em qualquer combinação → acima do máximo
	_, err := ValidarSelecao(regras, opcoes, Selecao{bacon.ID: 2, ovo.ID: 2})
	requireCodigo(t, err, SelecaoAcimaDoMaximo)

	_, err = ValidarSelecao(regras, opcoes, Selecao{bacon.ID: 4})
	requireCodigo(t, err, SelecaoAcimaDoMaximo)

	// Zero selecionado → sucesso com preço zero
	preco, err := ValidarSelecao(regras, opcoes, Selecao{})
	require.NoError(t, err)
	assert.True(t, preco.IsZero())

	// Dentro do teto → soma preço × quantidade
	preco, err = ValidarSelecao(regras, opcoes, Selecao{bacon.ID: 2, ovo.ID: 1})
	require.NoError(t, err)
	assert.True(t, preco.Equal(dec(t, "10.00")), "preco = %s", preco)
}

func TestValidarSelecao_MinimoDoGrupo(t *testing.T) {
	regras := RegrasSelecao{
		Nome:         "Molhos",
		Obrigatorio:  true,
		Quantitativo: true,
		MinItens:     intPtr(2),
	}
	a := opcao(t, "1.00")
	opcoes := []OpcaoSelecao{a}

	// Obrigatório com min=2: uma unidade não basta
	_, err := ValidarSelecao(regras, opcoes, Selecao{a.ID: 1})
	requireCodigo(t, err, SelecaoObrigatoriaNaoAtendida)

	preco, err := ValidarSelecao(regras, opcoes, Selecao{a.ID: 2})
	require.NoError(t, err)
	assert.True(t, preco.Equal(dec(t, "2.00")))
}

func TestValidarSelecao_MinimoOpcionalPreenchido(t *testing.T) {
	// Grupo opcional com min=2: vazio passa, 1 unidade é abaixo do mínimo.
	regras := RegrasSelecao{
		Nome:         "Acompanhamentos",
		Quantitativo: true,
		MinItens:     intPtr(2),
	}
	a := opcao(t, "1.50")
	opcoes := []OpcaoSelecao{a}

	preco, err := ValidarSelecao(regras, opcoes, Selecao{})
	require.NoError(t, err)
	assert.True(t, preco.IsZero())

	_, err = ValidarSelecao(regras, opcoes, Selecao{a.ID: 1})
	requireCodigo(t, err, SelecaoAbaixoDoMinimo)
}

func TestValidarSelecao_LimitesPorOpcao(t *testing.T) {
	regras := RegrasSelecao{Nome: "Secao", Quantitativo: true}
	limitada := OpcaoSelecao{
		ID: uuid.New(), Preco: dec(t, "2.00"),
		PermiteQuantidade: true, QuantidadeMin: 2, QuantidadeMax: 4,
	}
	opcoes := []OpcaoSelecao{limitada}

	_, err := ValidarSelecao(regras, opcoes, Selecao{limitada.ID: 1})
	requireCodigo(t, err, SelecaoForaDoIntervalo)

	_, err = ValidarSelecao(regras, opcoes, Selecao{limitada.ID: 5})
	requireCodigo(t, err, SelecaoForaDoIntervalo)

	preco, err := ValidarSelecao(regras, opcoes, Selecao{limitada.ID: 3})
	require.NoError(t, err)
	assert.True(t, preco.Equal(dec(t, "6.00")))
}

func TestValidarSelecao_OpcaoSemQuantidade_ExigeUm(t *testing.T) {
	regras := RegrasSelecao{Nome: "Secao", Quantitativo: true}
	fixa := opcaoUnitaria(t, "3.00")
	opcoes := []OpcaoSelecao{fixa}

	_, err := ValidarSelecao(regras, opcoes, Selecao{fixa.ID: 2})
	requireCodigo(t, err, SelecaoQuantidadeInvalida)

	preco, err := ValidarSelecao(regras, opcoes, Selecao{fixa.ID: 1})
	require.NoError(t, err)
	assert.True(t, preco.Equal(dec(t, "3.00")))
}

func TestValidarSelecao_QuantidadeZeroEquivaleAusente(t *testing.T) {
	regras := RegrasSelecao{Nome: "Extras", Quantitativo: true}
	a := opcao(t, "2.00")
	b := opcao(t, "3.00")
	opcoes := []OpcaoSelecao{a, b}

	preco, err := ValidarSelecao(regras, opcoes, Selecao{a.ID: 0, b.ID: 2})
	require.NoError(t, err)
	assert.True(t, preco.Equal(dec(t, "6.00")))
}
