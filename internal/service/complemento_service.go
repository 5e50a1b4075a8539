package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/pricing"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/repository"
)

type ComplementoService interface {
	Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarComplementoRequest) (*dto.ComplementoResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.ComplementoResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID, page, limit int) (*dto.ComplementoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarComplementoRequest) (*dto.ComplementoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error

	AddItem(ctx context.Context, complementoID uuid.UUID, req dto.ComplementoItemRequest) (*dto.ComplementoResponse, error)
	RemoveItem(ctx context.Context, complementoID, itemID uuid.UUID) error

	Vincular(ctx context.Context, empresaID uuid.UUID, req dto.VincularComplementoRequest) (*dto.VinculoResponse, error)
	Desvincular(ctx context.Context, vinculoID uuid.UUID) error
	VinculosDoPai(ctx context.Context, tipo string, paiID uuid.UUID) ([]dto.VinculoResponse, error)
}

type complementoService struct {
	repo        repository.ComplementoRepository
	produtoRepo repository.ProdutoRepository
	receitaRepo repository.ReceitaRepository
	comboRepo   repository.ComboRepository
	engine      *pricing.Engine
}

func NewComplementoService(
	repo repository.ComplementoRepository,
	produtoRepo repository.ProdutoRepository,
	receitaRepo repository.ReceitaRepository,
	comboRepo repository.ComboRepository,
	engine *pricing.Engine,
) ComplementoService {
	return &complementoService{
		repo:        repo,
		produtoRepo: produtoRepo,
		receitaRepo: receitaRepo,
		comboRepo:   comboRepo,
		engine:      engine,
	}
}

func (s *complementoService) Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarComplementoRequest) (*dto.ComplementoResponse, error) {
	complemento := &model.Complemento{
		EmpresaID: empresaID,
		Nome:      req.Nome,
		Descricao: req.Descricao,
		Ativo:     true,
	}
	for _, it := range req.Itens {
		item, err := s.montarItem(ctx, empresaID, it)
		if err != nil {
			return nil, err
		}
		complemento.Itens = append(complemento.Itens, *item)
	}
	if err := s.repo.Create(ctx, complemento); err != nil {
		return nil, err
	}
	return s.Buscar(ctx, complemento.ID)
}

func (s *complementoService) Buscar(ctx context.Context, id uuid.UUID) (*dto.ComplementoResponse, error) {
	complemento, err := s.repo.FindByIDComItens(ctx, id)
	if err != nil {
		return nil, errors.New("complemento nao encontrado")
	}
	resp := s.complementoToResponse(ctx, complemento)
	return &resp, nil
}

func (s *complementoService) Listar(ctx context.Context, empresaID uuid.UUID, page, limit int) (*dto.ComplementoListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	complementos, total, err := s.repo.List(ctx, empresaID, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ComplementoResponse, len(complementos))
	for i := range complementos {
		data[i] = s.complementoToResponse(ctx, &complementos[i])
	}
	return &dto.ComplementoListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func (s *complementoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarComplementoRequest) (*dto.ComplementoResponse, error) {
	complemento, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("complemento nao encontrado")
	}
	if req.Nome != nil {
		complemento.Nome = *req.Nome
	}
	if req.Descricao != nil {
		complemento.Descricao = req.Descricao
	}
	if req.Ativo != nil {
		complemento.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, complemento); err != nil {
		return nil, err
	}
	return s.Buscar(ctx, id)
}

func (s *complementoService) Desativar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *complementoService) AddItem(ctx context.Context, complementoID uuid.UUID, req dto.ComplementoItemRequest) (*dto.ComplementoResponse, error) {
	complemento, err := s.repo.FindByID(ctx, complementoID)
	if err != nil {
		return nil, errors.New("complemento nao encontrado")
	}

	item, err := s.montarItem(ctx, complemento.EmpresaID, req)
	if err != nil {
		return nil, err
	}
	item.ComplementoID = complementoID

	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return s.Buscar(ctx, complementoID)
}

func (s *complementoService) RemoveItem(ctx context.Context, complementoID, itemID uuid.UUID) error {
	return s.repo.RemoveItem(ctx, complementoID, itemID)
}

func (s *complementoService) Vincular(ctx context.Context, empresaID uuid.UUID, req dto.VincularComplementoRequest) (*dto.VinculoResponse, error) {
	complementoID, err := uuid.Parse(req.ComplementoID)
	if err != nil {
		return nil, errors.New("complemento_id invalido")
	}
	complemento, err := s.repo.FindByID(ctx, complementoID)
	if err != nil || complemento.EmpresaID != empresaID {
		return nil, errors.New("complemento nao encontrado")
	}
	if err := validarLimitesGrupo(req.MinItens, req.MaxItens); err != nil {
		return nil, err
	}

	vinculo := &model.ComplementoVinculo{
		ComplementoID: complementoID,
		Obrigatorio:   req.Obrigatorio,
		Quantitativo:  req.Quantitativo,
		MinItens:      req.MinItens,
		MaxItens:      req.MaxItens,
		Ordem:         req.Ordem,
	}
	if vinculo.ProdutoID, err = parseUUIDPtr(req.ProdutoID); err != nil {
		return nil, fmt.Errorf("produto_id invalido: %w", err)
	}
	if vinculo.ReceitaID, err = parseUUIDPtr(req.ReceitaID); err != nil {
		return nil, fmt.Errorf("receita_id invalido: %w", err)
	}
	if vinculo.ComboID, err = parseUUIDPtr(req.ComboID); err != nil {
		return nil, fmt.Errorf("combo_id invalido: %w", err)
	}

	pai, err := pricing.RefPaiDoVinculo(*vinculo)
	if err != nil {
		return nil, errors.New("vinculo deve apontar para exatamente um de produto, receita ou combo")
	}
	if err := s.checarPai(ctx, empresaID, pai); err != nil {
		return nil, err
	}

	if err := s.repo.CreateVinculo(ctx, vinculo); err != nil {
		return nil, err
	}
	resp := vinculoToResponse(vinculo)
	return &resp, nil
}

func (s *complementoService) Desvincular(ctx context.Context, vinculoID uuid.UUID) error {
	return s.repo.RemoveVinculo(ctx, vinculoID)
}

func (s *complementoService) VinculosDoPai(ctx context.Context, tipo string, paiID uuid.UUID) ([]dto.VinculoResponse, error) {
	coluna, ok := map[string]string{
		"produto": "produto_id",
		"receita": "receita_id",
		"combo":   "combo_id",
	}[tipo]
	if !ok {
		return nil, errors.New("tipo de pai invalido")
	}
	vinculos, err := s.repo.VinculosDoPai(ctx, coluna, paiID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.VinculoResponse, len(vinculos))
	for i := range vinculos {
		resp[i] = vinculoToResponse(&vinculos[i])
	}
	return resp, nil
}

func (s *complementoService) montarItem(ctx context.Context, empresaID uuid.UUID, req dto.ComplementoItemRequest) (*model.ComplementoItem, error) {
	if req.PrecoOverride != nil && req.PrecoOverride.IsNegative() {
		return nil, errors.New("preco_override nao pode ser negativo")
	}
	item := &model.ComplementoItem{PrecoOverride: req.PrecoOverride, Ordem: req.Ordem}
	var err error
	if item.ProdutoID, err = parseUUIDPtr(req.ProdutoID); err != nil {
		return nil, fmt.Errorf("produto_id invalido: %w", err)
	}
	if item.ReceitaID, err = parseUUIDPtr(req.ReceitaID); err != nil {
		return nil, fmt.Errorf("receita_id invalido: %w", err)
	}
	if item.ComboID, err = parseUUIDPtr(req.ComboID); err != nil {
		return nil, fmt.Errorf("combo_id invalido: %w", err)
	}

	ref, err := pricing.RefDoComplementoItem(*item)
	if err != nil {
		return nil, errors.New("item deve referenciar exatamente um de produto, receita ou combo")
	}
	if err := s.checarPai(ctx, empresaID, ref); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *complementoService) checarPai(ctx context.Context, empresaID uuid.UUID, ref pricing.Ref) error {
	switch ref.Kind {
	case pricing.KindProduto:
		produto, err := s.produtoRepo.FindByID(ctx, ref.ID)
		if err != nil || produto.EmpresaID != empresaID {
			return errors.New("produto referenciado nao encontrado")
		}
	case pricing.KindReceita:
		receita, err := s.receitaRepo.FindByID(ctx, ref.ID)
		if err != nil || receita.EmpresaID != empresaID {
			return errors.New("receita referenciada nao encontrada")
		}
	case pricing.KindCombo:
		combo, err := s.comboRepo.FindByID(ctx, ref.ID)
		if err != nil || combo.EmpresaID != empresaID {
			return errors.New("combo referenciado nao encontrado")
		}
	}
	return nil
}

func (s *complementoService) complementoToResponse(ctx context.Context, c *model.Complemento) dto.ComplementoResponse {
	itens := make([]dto.ComplementoItemResponse, 0, len(c.Itens))
	for _, it := range c.Itens {
		item := dto.ComplementoItemResponse{
			ID:            it.ID.String(),
			ProdutoID:     uuidPtrToString(it.ProdutoID),
			ReceitaID:     uuidPtrToString(it.ReceitaID),
			ComboID:       uuidPtrToString(it.ComboID),
			PrecoOverride: it.PrecoOverride,
			Ordem:         it.Ordem,
		}
		switch {
		case it.Produto != nil:
			item.Nome = it.Produto.Nome
		case it.Receita != nil:
			item.Nome = it.Receita.Nome
		case it.Combo != nil:
			item.Nome = it.Combo.Nome
		}
		preco, err := s.engine.PrecoEfetivoDoComplementoItem(ctx, it)
		if err != nil {
			log.Warn().Err(err).Str("item_id", it.ID.String()).Msg("preco efetivo indisponivel para o item")
		} else {
			item.PrecoEfetivo = preco
		}
		itens = append(itens, item)
	}
	return dto.ComplementoResponse{
		ID:        c.ID.String(),
		Nome:      c.Nome,
		Descricao: c.Descricao,
		Ativo:     c.Ativo,
		Itens:     itens,
	}
}

func vinculoToResponse(v *model.ComplementoVinculo) dto.VinculoResponse {
	return dto.VinculoResponse{
		ID:            v.ID.String(),
		ComplementoID: v.ComplementoID.String(),
		ProdutoID:     uuidPtrToString(v.ProdutoID),
		ReceitaID:     uuidPtrToString(v.ReceitaID),
		ComboID:       uuidPtrToString(v.ComboID),
		Obrigatorio:   v.Obrigatorio,
		Quantitativo:  v.Quantitativo,
		MinItens:      v.MinItens,
		MaxItens:      v.MaxItens,
		Ordem:         v.Ordem,
	}
}
