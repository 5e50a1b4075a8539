package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/pricing"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/repository"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/worker"
)

type ReceitaService interface {
	Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarReceitaRequest) (*dto.ReceitaResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.ReceitaResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID, filter dto.ReceitaFilter) (*dto.ReceitaListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarReceitaRequest) (*dto.ReceitaResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error

	AddComponente(ctx context.Context, receitaID uuid.UUID, req dto.ComponenteRequest) (*dto.ReceitaResponse, error)
	RemoveComponente(ctx context.Context, receitaID, componenteID uuid.UUID) error
}

type receitaService struct {
	repo        repository.ReceitaRepository
	insumoRepo  repository.InsumoRepository
	produtoRepo repository.ProdutoRepository
	comboRepo   repository.ComboRepository
	dispatcher  *worker.Dispatcher
}

func NewReceitaService(
	repo repository.ReceitaRepository,
	insumoRepo repository.InsumoRepository,
	produtoRepo repository.ProdutoRepository,
	comboRepo repository.ComboRepository,
	dispatcher *worker.Dispatcher,
) ReceitaService {
	return &receitaService{
		repo:        repo,
		insumoRepo:  insumoRepo,
		produtoRepo: produtoRepo,
		comboRepo:   comboRepo,
		dispatcher:  dispatcher,
	}
}

func (s *receitaService) Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarReceitaRequest) (*dto.ReceitaResponse, error) {
	if req.PrecoVenda.IsNegative() {
		return nil, errors.New("preco de venda nao pode ser negativo")
	}

	receita := &model.Receita{
		EmpresaID:  empresaID,
		Nome:       req.Nome,
		Descricao:  req.Descricao,
		PrecoVenda: req.PrecoVenda,
		Ativo:      true,
		Disponivel: true,
	}

	// Validate every component before persisting anything.
	componentes := make([]model.ReceitaComponente, 0, len(req.Componentes))
	for _, c := range req.Componentes {
		comp, err := s.montarComponente(ctx, empresaID, uuid.Nil, c)
		if err != nil {
			return nil, err
		}
		componentes = append(componentes, *comp)
	}
	receita.Componentes = componentes

	if err := s.repo.Create(ctx, receita); err != nil {
		return nil, err
	}

	if len(componentes) > 0 && s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRecusto(ctx, worker.RecustoJobPayload{Tipo: "receita", ID: receita.ID.String()})
	}

	return s.Buscar(ctx, receita.ID)
}

func (s *receitaService) Buscar(ctx context.Context, id uuid.UUID) (*dto.ReceitaResponse, error) {
	receita, err := s.repo.FindByIDComComponentes(ctx, id)
	if err != nil {
		return nil, errors.New("receita nao encontrada")
	}
	resp := receitaToResponse(receita)
	return &resp, nil
}

func (s *receitaService) Listar(ctx context.Context, empresaID uuid.UUID, filter dto.ReceitaFilter) (*dto.ReceitaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	receitas, total, err := s.repo.List(ctx, empresaID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ReceitaResponse, len(receitas))
	for i := range receitas {
		data[i] = receitaToResponse(&receitas[i])
	}
	return &dto.ReceitaListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *receitaService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarReceitaRequest) (*dto.ReceitaResponse, error) {
	receita, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("receita nao encontrada")
	}
	if req.Nome != nil {
		receita.Nome = *req.Nome
	}
	if req.Descricao != nil {
		receita.Descricao = req.Descricao
	}
	if req.PrecoVenda != nil {
		if req.PrecoVenda.IsNegative() {
			return nil, errors.New("preco de venda nao pode ser negativo")
		}
		receita.PrecoVenda = *req.PrecoVenda
	}
	if req.Ativo != nil {
		receita.Ativo = *req.Ativo
	}
	if req.Disponivel != nil {
		receita.Disponivel = *req.Disponivel
	}
	if err := s.repo.Update(ctx, receita); err != nil {
		return nil, err
	}
	return s.Buscar(ctx, id)
}

func (s *receitaService) Desativar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *receitaService) AddComponente(ctx context.Context, receitaID uuid.UUID, req dto.ComponenteRequest) (*dto.ReceitaResponse, error) {
	receita, err := s.repo.FindByID(ctx, receitaID)
	if err != nil {
		return nil, errors.New("receita nao encontrada")
	}

	comp, err := s.montarComponente(ctx, receita.EmpresaID, receitaID, req)
	if err != nil {
		return nil, err
	}
	comp.ReceitaID = receitaID

	if err := s.repo.AddComponente(ctx, comp); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRecusto(ctx, worker.RecustoJobPayload{Tipo: "receita", ID: receitaID.String()})
	}

	return s.Buscar(ctx, receitaID)
}

func (s *receitaService) RemoveComponente(ctx context.Context, receitaID, componenteID uuid.UUID) error {
	if err := s.repo.RemoveComponente(ctx, receitaID, componenteID); err != nil {
		return err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRecusto(ctx, worker.RecustoJobPayload{Tipo: "receita", ID: receitaID.String()})
	}
	return nil
}

// montarComponente validates and builds one component edge:
// exactly one reference, positive quantity, no direct self-reference, and the
// referenced node must exist in the same empresa. Indirect cycles are allowed —
// the pricing engine neutralizes them at read time.
func (s *receitaService) montarComponente(ctx context.Context, empresaID, receitaID uuid.UUID, req dto.ComponenteRequest) (*model.ReceitaComponente, error) {
	if !req.Quantidade.IsPositive() {
		return nil, errors.New("quantidade do componente deve ser positiva")
	}

	comp := &model.ReceitaComponente{Quantidade: req.Quantidade}
	var err error
	if comp.InsumoID, err = parseUUIDPtr(req.InsumoID); err != nil {
		return nil, fmt.Errorf("insumo_id invalido: %w", err)
	}
	if comp.ReceitaFilhaID, err = parseUUIDPtr(req.ReceitaFilhaID); err != nil {
		return nil, fmt.Errorf("receita_filha_id invalido: %w", err)
	}
	if comp.ProdutoID, err = parseUUIDPtr(req.ProdutoID); err != nil {
		return nil, fmt.Errorf("produto_id invalido: %w", err)
	}
	if comp.ComboID, err = parseUUIDPtr(req.ComboID); err != nil {
		return nil, fmt.Errorf("combo_id invalido: %w", err)
	}

	ref, err := pricing.RefDoComponente(*comp)
	if err != nil {
		return nil, errors.New("componente deve referenciar exatamente um de insumo, receita, produto ou combo")
	}

	if ref.Kind == pricing.KindReceita && receitaID != uuid.Nil && ref.ID == receitaID {
		return nil, errors.New("receita nao pode referenciar a si mesma diretamente")
	}

	// Tenant check: the referenced node must exist and belong to the empresa.
	switch ref.Kind {
	case pricing.KindInsumo:
		insumo, err := s.insumoRepo.FindByID(ctx, ref.ID)
		if err != nil || insumo.EmpresaID != empresaID {
			return nil, errors.New("insumo referenciado nao encontrado")
		}
	case pricing.KindReceita:
		filha, err := s.repo.FindByID(ctx, ref.ID)
		if err != nil || filha.EmpresaID != empresaID {
			return nil, errors.New("receita referenciada nao encontrada")
		}
	case pricing.KindProduto:
		produto, err := s.produtoRepo.FindByID(ctx, ref.ID)
		if err != nil || produto.EmpresaID != empresaID {
			return nil, errors.New("produto referenciado nao encontrado")
		}
	case pricing.KindCombo:
		combo, err := s.comboRepo.FindByID(ctx, ref.ID)
		if err != nil || combo.EmpresaID != empresaID {
			return nil, errors.New("combo referenciado nao encontrado")
		}
	}

	return comp, nil
}

func receitaToResponse(r *model.Receita) dto.ReceitaResponse {
	componentes := make([]dto.ComponenteResponse, 0, len(r.Componentes))
	for _, c := range r.Componentes {
		item := dto.ComponenteResponse{
			ID:             c.ID.String(),
			InsumoID:       uuidPtrToString(c.InsumoID),
			ReceitaFilhaID: uuidPtrToString(c.ReceitaFilhaID),
			ProdutoID:      uuidPtrToString(c.ProdutoID),
			ComboID:        uuidPtrToString(c.ComboID),
			Quantidade:     c.Quantidade,
		}
		switch {
		case c.Insumo != nil:
			item.Nome = c.Insumo.Nome
		case c.ReceitaFilha != nil:
			item.Nome = c.ReceitaFilha.Nome
		case c.Produto != nil:
			item.Nome = c.Produto.Nome
		case c.Combo != nil:
			item.Nome = c.Combo.Nome
		}
		componentes = append(componentes, item)
	}
	return dto.ReceitaResponse{
		ID:             r.ID.String(),
		Nome:           r.Nome,
		Descricao:      r.Descricao,
		PrecoVenda:     r.PrecoVenda,
		CustoCalculado: r.CustoCalculado,
		Ativo:          r.Ativo,
		Disponivel:     r.Disponivel,
		Componentes:    componentes,
	}
}

func parseUUIDPtr(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
