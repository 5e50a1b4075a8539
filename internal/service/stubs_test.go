package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/repository"
)

// In-memory fixtures shared by the service tests. Each stub embeds the real
// interface so only the methods a test exercises need an implementation;
// calling anything else panics, which is exactly what we want.

type catalogoStub struct {
	insumos     map[uuid.UUID]*model.Insumo
	produtos    map[uuid.UUID]*model.Produto
	receitas    map[uuid.UUID]*model.Receita
	combos      map[uuid.UUID]*model.Combo
	componentes map[uuid.UUID][]model.ReceitaComponente
	comboItens  map[uuid.UUID][]model.ComboItem
}

func novoCatalogoStub() *catalogoStub {
	return &catalogoStub{
		insumos:     make(map[uuid.UUID]*model.Insumo),
		produtos:    make(map[uuid.UUID]*model.Produto),
		receitas:    make(map[uuid.UUID]*model.Receita),
		combos:      make(map[uuid.UUID]*model.Combo),
		componentes: make(map[uuid.UUID][]model.ReceitaComponente),
		comboItens:  make(map[uuid.UUID][]model.ComboItem),
	}
}

func (c *catalogoStub) Insumo(_ context.Context, id uuid.UUID) (*model.Insumo, error) {
	if i, ok := c.insumos[id]; ok {
		return i, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (c *catalogoStub) Produto(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	if p, ok := c.produtos[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (c *catalogoStub) Receita(_ context.Context, id uuid.UUID) (*model.Receita, error) {
	if r, ok := c.receitas[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (c *catalogoStub) ComponentesDaReceita(_ context.Context, receitaID uuid.UUID) ([]model.ReceitaComponente, error) {
	return c.componentes[receitaID], nil
}

func (c *catalogoStub) Combo(_ context.Context, id uuid.UUID) (*model.Combo, error) {
	if co, ok := c.combos[id]; ok {
		return co, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (c *catalogoStub) ItensDoCombo(_ context.Context, comboID uuid.UUID) ([]model.ComboItem, error) {
	return c.comboItens[comboID], nil
}

// ── repository stubs ─────────────────────────────────────────────────────────

type stubProdutoRepo struct {
	repository.ProdutoRepository
	produtos map[uuid.UUID]*model.Produto
}

func (s *stubProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	if p, ok := s.produtos[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProdutoRepo) DB() *gorm.DB { return nil }

type stubReceitaRepo struct {
	repository.ReceitaRepository
	receitas    map[uuid.UUID]*model.Receita
	componentes map[uuid.UUID][]model.ReceitaComponente
}

func (s *stubReceitaRepo) Create(_ context.Context, r *model.Receita) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	for i := range r.Componentes {
		r.Componentes[i].ReceitaID = r.ID
	}
	s.receitas[r.ID] = r
	s.componentes[r.ID] = r.Componentes
	return nil
}

func (s *stubReceitaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Receita, error) {
	if r, ok := s.receitas[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubReceitaRepo) FindByIDComComponentes(ctx context.Context, id uuid.UUID) (*model.Receita, error) {
	r, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Componentes = s.componentes[id]
	return r, nil
}

func (s *stubReceitaRepo) AddComponente(_ context.Context, c *model.ReceitaComponente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.componentes[c.ReceitaID] = append(s.componentes[c.ReceitaID], *c)
	return nil
}

func (s *stubReceitaRepo) DB() *gorm.DB { return nil }

type stubInsumoRepo struct {
	repository.InsumoRepository
	insumos map[uuid.UUID]*model.Insumo
}

func (s *stubInsumoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Insumo, error) {
	if i, ok := s.insumos[id]; ok {
		return i, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubInsumoRepo) DB() *gorm.DB { return nil }

type stubComboRepo struct {
	repository.ComboRepository
	combos map[uuid.UUID]*model.Combo
	secoes map[uuid.UUID][]model.ComboSecao // keyed by combo id
}

func (s *stubComboRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Combo, error) {
	if c, ok := s.combos[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubComboRepo) SecoesDoCombo(_ context.Context, comboID uuid.UUID) ([]model.ComboSecao, error) {
	return s.secoes[comboID], nil
}

func (s *stubComboRepo) DB() *gorm.DB { return nil }

type stubComplementoRepo struct {
	repository.ComplementoRepository
	vinculos map[uuid.UUID][]model.ComplementoVinculo // keyed by parent id
	itens    map[uuid.UUID][]model.ComplementoItem    // keyed by complemento id
}

func (s *stubComplementoRepo) VinculosDoPai(_ context.Context, _ string, paiID uuid.UUID) ([]model.ComplementoVinculo, error) {
	return s.vinculos[paiID], nil
}

func (s *stubComplementoRepo) Itens(_ context.Context, complementoID uuid.UUID) ([]model.ComplementoItem, error) {
	return s.itens[complementoID], nil
}

func (s *stubComplementoRepo) DB() *gorm.DB { return nil }

type stubPedidoRepo struct {
	repository.PedidoRepository
	pedidos map[uuid.UUID]*model.Pedido
	seq     int
}

func novoStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{pedidos: make(map[uuid.UUID]*model.Pedido)}
}

func (s *stubPedidoRepo) Create(_ context.Context, _ *gorm.DB, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.pedidos[p.ID] = p
	return nil
}

func (s *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	if p, ok := s.pedidos[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPedidoRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	p, ok := s.pedidos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Estado = estado
	return nil
}

func (s *stubPedidoRepo) ProximoNumero(_ context.Context, _ *gorm.DB) (int, error) {
	s.seq++
	return s.seq, nil
}

func (s *stubPedidoRepo) List(_ context.Context, empresaID uuid.UUID, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var out []model.Pedido
	for _, p := range s.pedidos {
		if p.EmpresaID != empresaID {
			continue
		}
		if filter.Estado != "all" && p.Estado != filter.Estado {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *stubPedidoRepo) DB() *gorm.DB { return nil }
