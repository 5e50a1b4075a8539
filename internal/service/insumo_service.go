package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/repository"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/worker"
)

type InsumoService interface {
	Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarInsumoRequest) (*dto.InsumoResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID, filter dto.InsumoFilter) (*dto.InsumoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarInsumoRequest) (*dto.InsumoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
}

type insumoService struct {
	repo       repository.InsumoRepository
	dispatcher *worker.Dispatcher
}

func NewInsumoService(repo repository.InsumoRepository, dispatcher *worker.Dispatcher) InsumoService {
	return &insumoService{repo: repo, dispatcher: dispatcher}
}

func (s *insumoService) Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarInsumoRequest) (*dto.InsumoResponse, error) {
	if req.Custo.IsNegative() {
		return nil, errors.New("custo do insumo nao pode ser negativo")
	}
	insumo := &model.Insumo{
		EmpresaID: empresaID,
		Nome:      req.Nome,
		Unidade:   req.Unidade,
		Custo:     req.Custo,
		Ativo:     true,
	}
	if err := s.repo.Create(ctx, insumo); err != nil {
		return nil, err
	}
	resp := insumoToResponse(insumo)
	return &resp, nil
}

func (s *insumoService) Buscar(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error) {
	insumo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("insumo nao encontrado")
	}
	resp := insumoToResponse(insumo)
	return &resp, nil
}

func (s *insumoService) Listar(ctx context.Context, empresaID uuid.UUID, filter dto.InsumoFilter) (*dto.InsumoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	insumos, total, err := s.repo.List(ctx, empresaID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.InsumoResponse, len(insumos))
	for i := range insumos {
		data[i] = insumoToResponse(&insumos[i])
	}
	return &dto.InsumoListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *insumoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarInsumoRequest) (*dto.InsumoResponse, error) {
	insumo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("insumo nao encontrado")
	}

	custoMudou := false
	if req.Nome != nil {
		insumo.Nome = *req.Nome
	}
	if req.Unidade != nil {
		insumo.Unidade = *req.Unidade
	}
	if req.Custo != nil {
		if req.Custo.IsNegative() {
			return nil, errors.New("custo do insumo nao pode ser negativo")
		}
		custoMudou = !insumo.Custo.Equal(*req.Custo)
		insumo.Custo = *req.Custo
	}
	if req.Ativo != nil {
		insumo.Ativo = *req.Ativo
	}

	if err := s.repo.Update(ctx, insumo); err != nil {
		return nil, err
	}

	// Dependent snapshots go stale the moment the cost changes.
	if custoMudou && s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRecusto(ctx, worker.RecustoJobPayload{Tipo: "insumo", ID: insumo.ID.String()})
	}

	resp := insumoToResponse(insumo)
	return &resp, nil
}

func (s *insumoService) Desativar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func insumoToResponse(i *model.Insumo) dto.InsumoResponse {
	return dto.InsumoResponse{
		ID:      i.ID.String(),
		Nome:    i.Nome,
		Unidade: i.Unidade,
		Custo:   i.Custo,
		Ativo:   i.Ativo,
	}
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
