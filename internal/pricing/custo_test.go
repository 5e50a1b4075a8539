package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

func TestResolverCusto_ReceitaSimples(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	carne := cat.seedInsumo("Carne moida", "18.00")  // por kg
	pao := cat.seedInsumo("Pao brioche", "2.50")     // por unidade
	queijo := cat.seedProduto("Queijo fatiado", "1.50", "0.80")

	burger := cat.seedReceita("Burger", "20.00")
	cat.addComponenteInsumo(burger, carne, "0.2") // 200g
	cat.addComponenteInsumo(burger, pao, "1")
	cat.addComponenteProduto(burger, queijo, "2")

	custo, err := engine.ResolverCusto(context.Background(), Ref{Kind: KindReceita, ID: burger.ID})
	require.NoError(t, err)
	// 0.2×18.00 + 1×2.50 + 2×0.80 = 3.60 + 2.50 + 1.60 = 7.70
	assert.True(t, custo.Equal(dec(t, "7.70")), "custo = %s", custo)
}

func TestResolverCusto_SubReceitaAninhada(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	maionese := cat.seedReceita("Maionese da casa", "8.00")
	ovo := cat.seedInsumo("Ovo", "0.80")
	oleo := cat.seedInsumo("Oleo", "9.00")
	cat.addComponenteInsumo(maionese, ovo, "2")
	cat.addComponenteInsumo(maionese, oleo, "0.1")
	// maionese: 2×0.80 + 0.1×9.00 = 2.50

	burger := cat.seedReceita("Burger especial", "25.00")
	pao := cat.seedInsumo("Pao", "2.00")
	cat.addComponenteInsumo(burger, pao, "1")
	cat.addComponenteReceita(burger, maionese, "0.5")

	custo, err := engine.ResolverCusto(context.Background(), Ref{Kind: KindReceita, ID: burger.ID})
	require.NoError(t, err)
	// 2.00 + 0.5×2.50 = 3.25
	assert.True(t, custo.Equal(dec(t, "3.25")), "custo = %s", custo)
}

func TestResolverCusto_ProdutoSemPrecoCusto_UsaPrecoVenda(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	refri := cat.seedProduto("Refrigerante lata", "6.00", "0")
	receita := cat.seedReceita("Kit lanche", "15.00")
	cat.addComponenteProduto(receita, refri, "1")

	custo, err := engine.ResolverCusto(context.Background(), Ref{Kind: KindReceita, ID: receita.ID})
	require.NoError(t, err)
	assert.True(t, custo.Equal(dec(t, "6.00")), "custo = %s", custo)
}

func TestResolverCusto_ComboPlano(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	batata := cat.seedProduto("Batata frita", "10.00", "3.00")
	burger := cat.seedReceita("Burger", "20.00")
	carne := cat.seedInsumo("Carne", "18.00")
	cat.addComponenteInsumo(burger, carne, "0.2") // 3.60

	combo := cat.seedCombo("Combo burger", "28.00")
	cat.addComboItemProduto(combo, batata, 1)
	cat.addComboItemReceita(combo, burger, 1)

	custo, err := engine.ResolverCusto(context.Background(), Ref{Kind: KindCombo, ID: combo.ID})
	require.NoError(t, err)
	// 3.00 + 3.60 = 6.60 — PrecoBase não entra no custo
	assert.True(t, custo.Equal(dec(t, "6.60")), "custo = %s", custo)
}

func TestResolverCusto_ComboDentroDeReceita(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	batata := cat.seedProduto("Batata", "10.00", "3.00")
	combo := cat.seedCombo("Mini combo", "12.00")
	cat.addComboItemProduto(combo, batata, 2) // 6.00

	festival := cat.seedReceita("Festival", "40.00")
	cat.addComponenteCombo(festival, combo, "1")

	custo, err := engine.ResolverCusto(context.Background(), Ref{Kind: KindReceita, ID: festival.ID})
	require.NoError(t, err)
	assert.True(t, custo.Equal(dec(t, "6.00")), "custo = %s", custo)
}

func TestResolverCusto_CicloIndireto_ContribuiZero(t *testing.T) {
	// X → Y → X: a aresta cíclica vale zero, o resto soma normalmente.
	cat := newStubCatalogo()
	engine := New(cat)

	x := cat.seedReceita("Receita X", "10.00")
	y := cat.seedReceita("Receita Y", "10.00")
	carne := cat.seedInsumo("Carne", "18.00")
	cebola := cat.seedInsumo("Cebola", "4.00")

	cat.addComponenteInsumo(x, carne, "0.5") // 9.00
	cat.addComponenteReceita(x, y, "1")
	cat.addComponenteInsumo(y, cebola, "0.25") // 1.00
	cat.addComponenteReceita(y, x, "1")        // ciclo

	custo, err := engine.ResolverCusto(context.Background(), Ref{Kind: KindReceita, ID: x.ID})
	require.NoError(t, err)
	// X = 9.00 + Y; Y = 1.00 + 0 (ciclo) → 10.00
	assert.True(t, custo.Equal(dec(t, "10.00")), "custo = %s", custo)
}

func TestResolverCusto_AutoReferenciaDireta_NaoTrava(t *testing.T) {
	// Auto-loop construído por fora da guarda de escrita: termina e não erra.
	cat := newStubCatalogo()
	engine := New(cat)

	x := cat.seedReceita("Recursiva", "10.00")
	sal := cat.seedInsumo("Sal", "1.00")
	cat.addComponenteInsumo(x, sal, "2")
	cat.addComponenteReceita(x, x, "1")

	custo, err := engine.ResolverCusto(context.Background(), Ref{Kind: KindReceita, ID: x.ID})
	require.NoError(t, err)
	assert.True(t, custo.Equal(dec(t, "2.00")), "custo = %s", custo)
}

func TestResolverCusto_CadeiaLongaComCiclo_Termina(t *testing.T) {
	// r0 → r1 → … → r9 → r0: termina em O(arestas).
	cat := newStubCatalogo()
	engine := New(cat)

	receitas := make([]*model.Receita, 10)
	for i := range receitas {
		receitas[i] = cat.seedReceita("Elo", "5.00")
	}
	sal := cat.seedInsumo("Sal", "1.00")
	for i := range receitas {
		cat.addComponenteInsumo(receitas[i], sal, "1")
		cat.addComponenteReceita(receitas[i], receitas[(i+1)%len(receitas)], "1")
	}

	custo, err := engine.ResolverCusto(context.Background(), Ref{Kind: KindReceita, ID: receitas[0].ID})
	require.NoError(t, err)
	// Cada elo soma 1.00 de sal; a volta para r0 vale zero.
	assert.True(t, custo.Equal(dec(t, "10.00")), "custo = %s", custo)
	assert.False(t, custo.IsNegative())
}

func TestResolverCusto_DiamanteContaPorAresta(t *testing.T) {
	// A referencia B duas vezes em componentes distintos: B soma duas vezes.
	cat := newStubCatalogo()
	engine := New(cat)

	b := cat.seedReceita("Molho base", "5.00")
	tomate := cat.seedInsumo("Tomate", "6.00")
	cat.addComponenteInsumo(b, tomate, "0.5") // 3.00

	a := cat.seedReceita("Prato duplo", "30.00")
	cat.addComponenteReceita(a, b, "1")
	cat.addComponenteReceita(a, b, "1")

	custo, err := engine.ResolverCusto(context.Background(), Ref{Kind: KindReceita, ID: a.ID})
	require.NoError(t, err)
	assert.True(t, custo.Equal(dec(t, "6.00")), "custo = %s", custo)
}

func TestResolverCusto_Deterministico(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	base := cat.seedReceita("Base", "5.00")
	farinha := cat.seedInsumo("Farinha", "4.00")
	cat.addComponenteInsumo(base, farinha, "0.3")

	prato := cat.seedReceita("Prato", "22.00")
	cat.addComponenteReceita(prato, base, "2")
	cat.addComponenteReceita(prato, base, "1.5")

	ref := Ref{Kind: KindReceita, ID: prato.ID}
	primeiro, err := engine.ResolverCusto(context.Background(), ref)
	require.NoError(t, err)
	segundo, err := engine.ResolverCusto(context.Background(), ref)
	require.NoError(t, err)
	assert.True(t, primeiro.Equal(segundo))
}

func TestResolverCusto_ComponenteSemReferencia_Falha(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	r := cat.seedReceita("Quebrada", "10.00")
	cat.componentes[r.ID] = append(cat.componentes[r.ID], model.ReceitaComponente{
		ID: uuid.New(), ReceitaID: r.ID, Quantidade: dec(t, "1"),
	})

	_, err := engine.ResolverCusto(context.Background(), Ref{Kind: KindReceita, ID: r.ID})
	require.ErrorIs(t, err, ErrComponenteInvalido)
}

func TestResolverCusto_ComponenteComDuasReferencias_Falha(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	r := cat.seedReceita("Quebrada", "10.00")
	sal := cat.seedInsumo("Sal", "1.00")
	queijo := cat.seedProduto("Queijo", "2.00", "1.00")
	cat.componentes[r.ID] = append(cat.componentes[r.ID], model.ReceitaComponente{
		ID: uuid.New(), ReceitaID: r.ID,
		InsumoID: &sal.ID, ProdutoID: &queijo.ID,
		Quantidade: dec(t, "1"),
	})

	_, err := engine.ResolverCusto(context.Background(), Ref{Kind: KindReceita, ID: r.ID})
	require.ErrorIs(t, err, ErrComponenteInvalido)
}

func TestResolverCusto_IDDesconhecido_Falha(t *testing.T) {
	cat := newStubCatalogo()
	engine := New(cat)

	_, err := engine.ResolverCusto(context.Background(), Ref{Kind: KindReceita, ID: uuid.New()})
	require.Error(t, err)
}

func TestArredondar_MeioParaCima(t *testing.T) {
	assert.Equal(t, "7.71", Arredondar(dec(t, "7.705")).String())
	assert.Equal(t, "7.70", Arredondar(dec(t, "7.704")).String())
}
