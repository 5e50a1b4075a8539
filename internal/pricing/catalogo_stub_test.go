package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

// stubCatalogo is an in-memory CatalogReader for engine tests.
type stubCatalogo struct {
	insumos     map[uuid.UUID]*model.Insumo
	produtos    map[uuid.UUID]*model.Produto
	receitas    map[uuid.UUID]*model.Receita
	componentes map[uuid.UUID][]model.ReceitaComponente
	combos      map[uuid.UUID]*model.Combo
	comboItens  map[uuid.UUID][]model.ComboItem
}

func newStubCatalogo() *stubCatalogo {
	return &stubCatalogo{
		insumos:     make(map[uuid.UUID]*model.Insumo),
		produtos:    make(map[uuid.UUID]*model.Produto),
		receitas:    make(map[uuid.UUID]*model.Receita),
		componentes: make(map[uuid.UUID][]model.ReceitaComponente),
		combos:      make(map[uuid.UUID]*model.Combo),
		comboItens:  make(map[uuid.UUID][]model.ComboItem),
	}
}

var errNaoEncontrado = errors.New("nao encontrado")

func (s *stubCatalogo) Insumo(_ context.Context, id uuid.UUID) (*model.Insumo, error) {
	if i, ok := s.insumos[id]; ok {
		return i, nil
	}
	return nil, errNaoEncontrado
}

func (s *stubCatalogo) Produto(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	if p, ok := s.produtos[id]; ok {
		return p, nil
	}
	return nil, errNaoEncontrado
}

func (s *stubCatalogo) Receita(_ context.Context, id uuid.UUID) (*model.Receita, error) {
	if r, ok := s.receitas[id]; ok {
		return r, nil
	}
	return nil, errNaoEncontrado
}

func (s *stubCatalogo) ComponentesDaReceita(_ context.Context, receitaID uuid.UUID) ([]model.ReceitaComponente, error) {
	if _, ok := s.receitas[receitaID]; !ok {
		return nil, errNaoEncontrado
	}
	return s.componentes[receitaID], nil
}

func (s *stubCatalogo) Combo(_ context.Context, id uuid.UUID) (*model.Combo, error) {
	if c, ok := s.combos[id]; ok {
		return c, nil
	}
	return nil, errNaoEncontrado
}

func (s *stubCatalogo) ItensDoCombo(_ context.Context, comboID uuid.UUID) ([]model.ComboItem, error) {
	if _, ok := s.combos[comboID]; !ok {
		return nil, errNaoEncontrado
	}
	return s.comboItens[comboID], nil
}

var _ CatalogReader = (*stubCatalogo)(nil)

// ── Seed helpers ─────────────────────────────────────────────────────────────

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal invalido %q: %v", s, err)
	}
	return d
}

func (s *stubCatalogo) seedInsumo(nome, custo string) *model.Insumo {
	i := &model.Insumo{ID: uuid.New(), Nome: nome, Unidade: "unidade", Custo: decimal.RequireFromString(custo), Ativo: true}
	s.insumos[i.ID] = i
	return i
}

func (s *stubCatalogo) seedProduto(nome, venda, custo string) *model.Produto {
	p := &model.Produto{
		ID:         uuid.New(),
		Nome:       nome,
		PrecoVenda: decimal.RequireFromString(venda),
		PrecoCusto: decimal.RequireFromString(custo),
		Ativo:      true,
		Disponivel: true,
	}
	s.produtos[p.ID] = p
	return p
}

func (s *stubCatalogo) seedReceita(nome, precoVenda string) *model.Receita {
	r := &model.Receita{ID: uuid.New(), Nome: nome, PrecoVenda: decimal.RequireFromString(precoVenda), Ativo: true, Disponivel: true}
	s.receitas[r.ID] = r
	return r
}

func (s *stubCatalogo) seedCombo(nome, precoBase string) *model.Combo {
	c := &model.Combo{ID: uuid.New(), Nome: nome, PrecoBase: decimal.RequireFromString(precoBase), Ativo: true}
	s.combos[c.ID] = c
	return c
}

func (s *stubCatalogo) addComponenteInsumo(receita *model.Receita, insumo *model.Insumo, qtd string) {
	s.componentes[receita.ID] = append(s.componentes[receita.ID], model.ReceitaComponente{
		ID: uuid.New(), ReceitaID: receita.ID, InsumoID: &insumo.ID, Quantidade: decimal.RequireFromString(qtd),
	})
}

func (s *stubCatalogo) addComponenteReceita(receita, filha *model.Receita, qtd string) {
	s.componentes[receita.ID] = append(s.componentes[receita.ID], model.ReceitaComponente{
		ID: uuid.New(), ReceitaID: receita.ID, ReceitaFilhaID: &filha.ID, Quantidade: decimal.RequireFromString(qtd),
	})
}

func (s *stubCatalogo) addComponenteProduto(receita *model.Receita, produto *model.Produto, qtd string) {
	s.componentes[receita.ID] = append(s.componentes[receita.ID], model.ReceitaComponente{
		ID: uuid.New(), ReceitaID: receita.ID, ProdutoID: &produto.ID, Quantidade: decimal.RequireFromString(qtd),
	})
}

func (s *stubCatalogo) addComponenteCombo(receita *model.Receita, combo *model.Combo, qtd string) {
	s.componentes[receita.ID] = append(s.componentes[receita.ID], model.ReceitaComponente{
		ID: uuid.New(), ReceitaID: receita.ID, ComboID: &combo.ID, Quantidade: decimal.RequireFromString(qtd),
	})
}

func (s *stubCatalogo) addComboItemProduto(combo *model.Combo, produto *model.Produto, qtd int) {
	s.comboItens[combo.ID] = append(s.comboItens[combo.ID], model.ComboItem{
		ID: uuid.New(), ComboID: combo.ID, ProdutoID: &produto.ID, Quantidade: qtd,
	})
}

func (s *stubCatalogo) addComboItemReceita(combo *model.Combo, receita *model.Receita, qtd int) {
	s.comboItens[combo.ID] = append(s.comboItens[combo.ID], model.ComboItem{
		ID: uuid.New(), ComboID: combo.ID, ReceitaID: &receita.ID, Quantidade: qtd,
	})
}
