package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

func TestPrecoEfetivoDoComplementoItem_OverrideVencePadrao(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	bacon := cat.seedProduto("Porcao de bacon", "5.00", "1.20")
	override := dec(t, "3.00")
	item := model.ComplementoItem{ID: uuid.New(), ProdutoID: &bacon.ID, PrecoOverride: &override}

	preco, err := engine.PrecoEfetivoDoComplementoItem(context.Background(), item)
	require.NoError(t, err)
	assert.True(t, preco.Equal(dec(t, "3.00")), "preco = %s", preco)

	// Sem override, vale o preço de venda do produto.
	item.PrecoOverride = nil
	preco, err = engine.PrecoEfetivoDoComplementoItem(context.Background(), item)
	require.NoError(t, err)
	assert.True(t, preco.Equal(dec(t, "5.00")), "preco = %s", preco)
}

func TestPrecoEfetivoDoComplementoItem_ReceitaUsaPrecoVenda(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	molho := cat.seedReceita("Molho especial", "4.50")
	item := model.ComplementoItem{ID: uuid.New(), ReceitaID: &molho.ID}

	preco, err := engine.PrecoEfetivoDoComplementoItem(context.Background(), item)
	require.NoError(t, err)
	assert.True(t, preco.Equal(dec(t, "4.50")))
}

func TestPrecoEfetivoDoComplementoItem_ComboSemBaseCaiNoCusto(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	batata := cat.seedProduto("Batata", "10.00", "3.00")
	combo := cat.seedCombo("Combo composto", "0")
	cat.addComboItemProduto(combo, batata, 2)

	item := model.ComplementoItem{ID: uuid.New(), ComboID: &combo.ID}
	preco, err := engine.PrecoEfetivoDoComplementoItem(context.Background(), item)
	require.NoError(t, err)
	assert.True(t, preco.Equal(dec(t, "6.00")), "preco = %s", preco)
}

func TestPrecoEfetivoDoComplementoItem_SemReferencia_Falha(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	_, err := engine.PrecoEfetivoDoComplementoItem(context.Background(), model.ComplementoItem{ID: uuid.New()})
	require.ErrorIs(t, err, ErrComponenteInvalido)
}

func TestPrecoEfetivoDoSecaoItem_SempreIncremental(t *testing.T) {
	item := model.ComboSecaoItem{ID: uuid.New(), PrecoIncremental: decimal.RequireFromString("2.50")}
	assert.True(t, PrecoEfetivoDoSecaoItem(item).Equal(decimal.RequireFromString("2.50")))

	gratis := model.ComboSecaoItem{ID: uuid.New()}
	assert.True(t, PrecoEfetivoDoSecaoItem(gratis).IsZero())
}

func TestPrecificarLinha_BurgerComAdicional(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	burger := cat.seedReceita("Burger", "20.00")
	bacon := opcao(t, "5.00")

	grupos := []GrupoSelecao{{
		Regras:  RegrasSelecao{Nome: "Adicionais", Quantitativo: true},
		Opcoes:  []OpcaoSelecao{bacon},
		Escolha: Selecao{bacon.ID: 1},
	}}

	linha, err := engine.PrecificarLinha(context.Background(), Ref{Kind: KindReceita, ID: burger.ID}, 2, grupos)
	require.NoError(t, err)
	assert.True(t, linha.PrecoUnitario.Equal(dec(t, "20.00")))
	assert.True(t, linha.PrecoSelecoes.Equal(dec(t, "5.00")))
	// (20.00 + 5.00) × 2 = 50.00
	assert.True(t, linha.TotalLinha.Equal(dec(t, "50.00")), "total = %s", linha.TotalLinha)
}

func TestPrecificarLinha_SemGrupos(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	refri := cat.seedProduto("Refrigerante", "6.00", "0")
	linha, err := engine.PrecificarLinha(context.Background(), Ref{Kind: KindProduto, ID: refri.ID}, 3, nil)
	require.NoError(t, err)
	assert.True(t, linha.PrecoSelecoes.IsZero())
	assert.True(t, linha.TotalLinha.Equal(dec(t, "18.00")))
}

func TestPrecificarLinha_TudoOuNada(t *testing.T) {
	// Um grupo válido e um inválido: a linha inteira é rejeitada.
	cat := newStubCatalogo()
	engine := New(cat)

	burger := cat.seedReceita("Burger", "20.00")
	bacon := opcao(t, "5.00")
	bebida := opcaoUnitaria(t, "3.00")

	grupos := []GrupoSelecao{
		{
			Regras:  RegrasSelecao{Nome: "Adicionais", Quantitativo: true},
			Opcoes:  []OpcaoSelecao{bacon},
			Escolha: Selecao{bacon.ID: 2},
		},
		{
			Regras:  RegrasSelecao{Nome: "Bebida", Obrigatorio: true},
			Opcoes:  []OpcaoSelecao{bebida},
			Escolha: Selecao{},
		},
	}

	_, err := engine.PrecificarLinha(context.Background(), Ref{Kind: KindReceita, ID: burger.ID}, 1, grupos)
	requireCodigo(t, err, SelecaoObrigatoriaNaoAtendida)
}

func TestPrecificarLinha_SelecoesMultiplicamPelaQuantidade(t *testing.T) {
	// A contribuição dos grupos é por unidade da linha.
	cat := newStubCatalogo()
	engine := New(cat)

	pizza := cat.seedReceita("Pizza", "30.00")
	borda := opcaoUnitaria(t, "8.00")

	grupos := []GrupoSelecao{{
		Regras:  RegrasSelecao{Nome: "Borda"},
		Opcoes:  []OpcaoSelecao{borda},
		Escolha: Selecao{borda.ID: 1},
	}}

	linha, err := engine.PrecificarLinha(context.Background(), Ref{Kind: KindReceita, ID: pizza.ID}, 3, grupos)
	require.NoError(t, err)
	// (30.00 + 8.00) × 3 = 114.00
	assert.True(t, linha.TotalLinha.Equal(dec(t, "114.00")), "total = %s", linha.TotalLinha)
	require.Len(t, linha.PrecosGrupos, 1)
	assert.True(t, linha.PrecosGrupos[0].Equal(dec(t, "8.00")))
}

func TestPrecificarLinha_QuantidadeInvalida(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	refri := cat.seedProduto("Refrigerante", "6.00", "0")
	_, err := engine.PrecificarLinha(context.Background(), Ref{Kind: KindProduto, ID: refri.ID}, 0, nil)
	require.Error(t, err)
}

func TestPrecificarLinha_BaseInvalida(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	insumo := cat.seedInsumo("Sal", "1.00")
	_, err := engine.PrecificarLinha(context.Background(), Ref{Kind: KindInsumo, ID: insumo.ID}, 1, nil)
	require.ErrorIs(t, err, ErrItemBaseInvalido)
}
