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

type ComboService interface {
	Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarComboRequest) (*dto.ComboResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.ComboResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID, filter dto.ComboFilter) (*dto.ComboListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarComboRequest) (*dto.ComboResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error

	AddItem(ctx context.Context, comboID uuid.UUID, req dto.ComboItemRequest) (*dto.ComboResponse, error)
	RemoveItem(ctx context.Context, comboID, itemID uuid.UUID) error
	AddSecao(ctx context.Context, comboID uuid.UUID, req dto.ComboSecaoRequest) (*dto.ComboResponse, error)
	RemoveSecao(ctx context.Context, comboID, secaoID uuid.UUID) error
	AddSecaoItem(ctx context.Context, comboID, secaoID uuid.UUID, req dto.ComboSecaoItemRequest) (*dto.ComboResponse, error)
	RemoveSecaoItem(ctx context.Context, secaoID, itemID uuid.UUID) error
}

type comboService struct {
	repo        repository.ComboRepository
	produtoRepo repository.ProdutoRepository
	receitaRepo repository.ReceitaRepository
	dispatcher  *worker.Dispatcher
}

func NewComboService(
	repo repository.ComboRepository,
	produtoRepo repository.ProdutoRepository,
	receitaRepo repository.ReceitaRepository,
	dispatcher *worker.Dispatcher,
) ComboService {
	return &comboService{
		repo:        repo,
		produtoRepo: produtoRepo,
		receitaRepo: receitaRepo,
		dispatcher:  dispatcher,
	}
}

func (s *comboService) Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarComboRequest) (*dto.ComboResponse, error) {
	if req.PrecoBase.IsNegative() {
		return nil, errors.New("preco base nao pode ser negativo")
	}

	combo := &model.Combo{
		EmpresaID: empresaID,
		Nome:      req.Nome,
		Descricao: req.Descricao,
		PrecoBase: req.PrecoBase,
		Ativo:     true,
	}

	for _, it := range req.Itens {
		item, err := s.montarItem(ctx, empresaID, it)
		if err != nil {
			return nil, err
		}
		combo.Itens = append(combo.Itens, *item)
	}
	for _, sec := range req.Secoes {
		secao, err := s.montarSecao(ctx, empresaID, sec)
		if err != nil {
			return nil, err
		}
		combo.Secoes = append(combo.Secoes, *secao)
	}

	if err := s.repo.Create(ctx, combo); err != nil {
		return nil, err
	}

	if len(combo.Itens) > 0 && s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRecusto(ctx, worker.RecustoJobPayload{Tipo: "combo", ID: combo.ID.String()})
	}

	return s.Buscar(ctx, combo.ID)
}

func (s *comboService) Buscar(ctx context.Context, id uuid.UUID) (*dto.ComboResponse, error) {
	combo, err := s.repo.FindByIDCompleto(ctx, id)
	if err != nil {
		return nil, errors.New("combo nao encontrado")
	}
	resp := comboToResponse(combo)
	return &resp, nil
}

func (s *comboService) Listar(ctx context.Context, empresaID uuid.UUID, filter dto.ComboFilter) (*dto.ComboListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	combos, total, err := s.repo.List(ctx, empresaID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ComboResponse, len(combos))
	for i := range combos {
		data[i] = comboToResponse(&combos[i])
	}
	return &dto.ComboListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *comboService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarComboRequest) (*dto.ComboResponse, error) {
	combo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("combo nao encontrado")
	}
	if req.Nome != nil {
		combo.Nome = *req.Nome
	}
	if req.Descricao != nil {
		combo.Descricao = req.Descricao
	}
	if req.PrecoBase != nil {
		if req.PrecoBase.IsNegative() {
			return nil, errors.New("preco base nao pode ser negativo")
		}
		combo.PrecoBase = *req.PrecoBase
	}
	if req.Ativo != nil {
		combo.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, combo); err != nil {
		return nil, err
	}
	return s.Buscar(ctx, id)
}

func (s *comboService) Desativar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *comboService) AddItem(ctx context.Context, comboID uuid.UUID, req dto.ComboItemRequest) (*dto.ComboResponse, error) {
	combo, err := s.repo.FindByID(ctx, comboID)
	if err != nil {
		return nil, errors.New("combo nao encontrado")
	}

	item, err := s.montarItem(ctx, combo.EmpresaID, req)
	if err != nil {
		return nil, err
	}
	item.ComboID = comboID

	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRecusto(ctx, worker.RecustoJobPayload{Tipo: "combo", ID: comboID.String()})
	}
	return s.Buscar(ctx, comboID)
}

func (s *comboService) RemoveItem(ctx context.Context, comboID, itemID uuid.UUID) error {
	if err := s.repo.RemoveItem(ctx, comboID, itemID); err != nil {
		return err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRecusto(ctx, worker.RecustoJobPayload{Tipo: "combo", ID: comboID.String()})
	}
	return nil
}

func (s *comboService) AddSecao(ctx context.Context, comboID uuid.UUID, req dto.ComboSecaoRequest) (*dto.ComboResponse, error) {
	combo, err := s.repo.FindByID(ctx, comboID)
	if err != nil {
		return nil, errors.New("combo nao encontrado")
	}
	secao, err := s.montarSecao(ctx, combo.EmpresaID, req)
	if err != nil {
		return nil, err
	}
	secao.ComboID = comboID
	if err := s.repo.AddSecao(ctx, secao); err != nil {
		return nil, err
	}
	return s.Buscar(ctx, comboID)
}

func (s *comboService) RemoveSecao(ctx context.Context, comboID, secaoID uuid.UUID) error {
	return s.repo.RemoveSecao(ctx, comboID, secaoID)
}

func (s *comboService) AddSecaoItem(ctx context.Context, comboID, secaoID uuid.UUID, req dto.ComboSecaoItemRequest) (*dto.ComboResponse, error) {
	combo, err := s.repo.FindByID(ctx, comboID)
	if err != nil {
		return nil, errors.New("combo nao encontrado")
	}
	secao, err := s.repo.FindSecao(ctx, secaoID)
	if err != nil || secao.ComboID != comboID {
		return nil, errors.New("secao nao encontrada")
	}

	item, err := s.montarSecaoItem(ctx, combo.EmpresaID, req)
	if err != nil {
		return nil, err
	}
	item.SecaoID = secaoID

	if err := s.repo.AddSecaoItem(ctx, item); err != nil {
		return nil, err
	}
	return s.Buscar(ctx, comboID)
}

func (s *comboService) RemoveSecaoItem(ctx context.Context, secaoID, itemID uuid.UUID) error {
	return s.repo.RemoveSecaoItem(ctx, secaoID, itemID)
}

func (s *comboService) montarItem(ctx context.Context, empresaID uuid.UUID, req dto.ComboItemRequest) (*model.ComboItem, error) {
	if req.Quantidade < 1 {
		return nil, errors.New("quantidade do item deve ser ao menos 1")
	}
	item := &model.ComboItem{Quantidade: req.Quantidade}
	var err error
	if item.ProdutoID, err = parseUUIDPtr(req.ProdutoID); err != nil {
		return nil, fmt.Errorf("produto_id invalido: %w", err)
	}
	if item.ReceitaID, err = parseUUIDPtr(req.ReceitaID); err != nil {
		return nil, fmt.Errorf("receita_id invalido: %w", err)
	}

	ref, err := pricing.RefDoComboItem(*item)
	if err != nil {
		return nil, errors.New("item do combo deve referenciar exatamente um de produto ou receita")
	}
	if err := s.checarReferencia(ctx, empresaID, ref); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *comboService) montarSecao(ctx context.Context, empresaID uuid.UUID, req dto.ComboSecaoRequest) (*model.ComboSecao, error) {
	if err := validarLimitesGrupo(req.MinItens, req.MaxItens); err != nil {
		return nil, err
	}
	secao := &model.ComboSecao{
		Nome:         req.Nome,
		Obrigatoria:  req.Obrigatoria,
		Quantitativa: req.Quantitativa,
		MinItens:     req.MinItens,
		MaxItens:     req.MaxItens,
		Ordem:        req.Ordem,
	}
	for _, it := range req.Itens {
		item, err := s.montarSecaoItem(ctx, empresaID, it)
		if err != nil {
			return nil, err
		}
		secao.Itens = append(secao.Itens, *item)
	}
	return secao, nil
}

func (s *comboService) montarSecaoItem(ctx context.Context, empresaID uuid.UUID, req dto.ComboSecaoItemRequest) (*model.ComboSecaoItem, error) {
	if req.PrecoIncremental.IsNegative() {
		return nil, errors.New("preco incremental nao pode ser negativo")
	}

	item := &model.ComboSecaoItem{
		PrecoIncremental:  req.PrecoIncremental,
		PermiteQuantidade: req.PermiteQuantidade,
		QuantidadeMin:     req.QuantidadeMin,
		QuantidadeMax:     req.QuantidadeMax,
	}
	var err error
	if item.ProdutoID, err = parseUUIDPtr(req.ProdutoID); err != nil {
		return nil, fmt.Errorf("produto_id invalido: %w", err)
	}
	if item.ReceitaID, err = parseUUIDPtr(req.ReceitaID); err != nil {
		return nil, fmt.Errorf("receita_id invalido: %w", err)
	}

	ref, err := pricing.RefDoSecaoItem(*item)
	if err != nil {
		return nil, errors.New("item de secao deve referenciar exatamente um de produto ou receita")
	}
	if err := s.checarReferencia(ctx, empresaID, ref); err != nil {
		return nil, err
	}

	// Without per-quantity selection both bounds collapse to exactly 1.
	if !item.PermiteQuantidade {
		item.QuantidadeMin = 1
		item.QuantidadeMax = 1
		return item, nil
	}
	if item.QuantidadeMin < 0 {
		return nil, errors.New("quantidade_min nao pode ser negativa")
	}
	if item.QuantidadeMax != 0 && item.QuantidadeMax < item.QuantidadeMin {
		return nil, errors.New("quantidade_max nao pode ser menor que quantidade_min")
	}
	return item, nil
}

func (s *comboService) checarReferencia(ctx context.Context, empresaID uuid.UUID, ref pricing.Ref) error {
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
	}
	return nil
}

// validarLimitesGrupo rejects inverted group bounds before they can make
// every selection unsatisfiable.
func validarLimitesGrupo(minItens, maxItens *int) error {
	if minItens != nil && *minItens < 0 {
		return errors.New("min_itens nao pode ser negativo")
	}
	if maxItens != nil && *maxItens < 1 {
		return errors.New("max_itens deve ser ao menos 1")
	}
	if minItens != nil && maxItens != nil && *minItens > *maxItens {
		return errors.New("min_itens nao pode exceder max_itens")
	}
	return nil
}

func comboToResponse(c *model.Combo) dto.ComboResponse {
	itens := make([]dto.ComboItemResponse, 0, len(c.Itens))
	for _, it := range c.Itens {
		item := dto.ComboItemResponse{
			ID:         it.ID.String(),
			ProdutoID:  uuidPtrToString(it.ProdutoID),
			ReceitaID:  uuidPtrToString(it.ReceitaID),
			Quantidade: it.Quantidade,
		}
		switch {
		case it.Produto != nil:
			item.Nome = it.Produto.Nome
		case it.Receita != nil:
			item.Nome = it.Receita.Nome
		}
		itens = append(itens, item)
	}

	secoes := make([]dto.ComboSecaoResponse, 0, len(c.Secoes))
	for _, sec := range c.Secoes {
		secItens := make([]dto.ComboSecaoItemResponse, 0, len(sec.Itens))
		for _, it := range sec.Itens {
			item := dto.ComboSecaoItemResponse{
				ID:                it.ID.String(),
				ProdutoID:         uuidPtrToString(it.ProdutoID),
				ReceitaID:         uuidPtrToString(it.ReceitaID),
				PrecoIncremental:  it.PrecoIncremental,
				PermiteQuantidade: it.PermiteQuantidade,
				QuantidadeMin:     it.QuantidadeMin,
				QuantidadeMax:     it.QuantidadeMax,
			}
			switch {
			case it.Produto != nil:
				item.Nome = it.Produto.Nome
			case it.Receita != nil:
				item.Nome = it.Receita.Nome
			}
			secItens = append(secItens, item)
		}
		secoes = append(secoes, dto.ComboSecaoResponse{
			ID:           sec.ID.String(),
			Nome:         sec.Nome,
			Obrigatoria:  sec.Obrigatoria,
			Quantitativa: sec.Quantitativa,
			MinItens:     sec.MinItens,
			MaxItens:     sec.MaxItens,
			Ordem:        sec.Ordem,
			Itens:        secItens,
		})
	}

	return dto.ComboResponse{
		ID:             c.ID.String(),
		Nome:           c.Nome,
		Descricao:      c.Descricao,
		PrecoBase:      c.PrecoBase,
		CustoCalculado: c.CustoCalculado,
		Ativo:          c.Ativo,
		Itens:          itens,
		Secoes:         secoes,
	}
}
