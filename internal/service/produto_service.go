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

type ProdutoService interface {
	Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	Buscar(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
}

type produtoService struct {
	repo       repository.ProdutoRepository
	dispatcher *worker.Dispatcher
}

func NewProdutoService(repo repository.ProdutoRepository, dispatcher *worker.Dispatcher) ProdutoService {
	return &produtoService{repo: repo, dispatcher: dispatcher}
}

func (s *produtoService) Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	if req.PrecoVenda.IsNegative() || req.PrecoCusto.IsNegative() {
		return nil, errors.New("precos do produto nao podem ser negativos")
	}
	disponivel := true
	if req.Disponivel != nil {
		disponivel = *req.Disponivel
	}
	produto := &model.Produto{
		EmpresaID:  empresaID,
		Nome:       req.Nome,
		Descricao:  req.Descricao,
		Categoria:  req.Categoria,
		PrecoVenda: req.PrecoVenda,
		PrecoCusto: req.PrecoCusto,
		Ativo:      true,
		Disponivel: disponivel,
	}
	if err := s.repo.Create(ctx, produto); err != nil {
		return nil, err
	}
	resp := produtoToResponse(produto)
	return &resp, nil
}

func (s *produtoService) Buscar(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	produto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto nao encontrado")
	}
	resp := produtoToResponse(produto)
	return &resp, nil
}

func (s *produtoService) Listar(ctx context.Context, empresaID uuid.UUID, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	produtos, total, err := s.repo.List(ctx, empresaID, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProdutoResponse, len(produtos))
	for i := range produtos {
		data[i] = produtoToResponse(&produtos[i])
	}
	return &dto.ProdutoListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	produto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto nao encontrado")
	}

	custoMudou := false
	if req.Nome != nil {
		produto.Nome = *req.Nome
	}
	if req.Descricao != nil {
		produto.Descricao = req.Descricao
	}
	if req.Categoria != nil {
		produto.Categoria = *req.Categoria
	}
	if req.PrecoVenda != nil {
		if req.PrecoVenda.IsNegative() {
			return nil, errors.New("preco de venda nao pode ser negativo")
		}
		// PrecoVenda feeds cost resolution when PrecoCusto is zero.
		custoMudou = custoMudou || !produto.PrecoVenda.Equal(*req.PrecoVenda)
		produto.PrecoVenda = *req.PrecoVenda
	}
	if req.PrecoCusto != nil {
		if req.PrecoCusto.IsNegative() {
			return nil, errors.New("preco de custo nao pode ser negativo")
		}
		custoMudou = custoMudou || !produto.PrecoCusto.Equal(*req.PrecoCusto)
		produto.PrecoCusto = *req.PrecoCusto
	}
	if req.Ativo != nil {
		produto.Ativo = *req.Ativo
	}
	if req.Disponivel != nil {
		produto.Disponivel = *req.Disponivel
	}

	if err := s.repo.Update(ctx, produto); err != nil {
		return nil, err
	}

	if custoMudou && s.dispatcher != nil {
		_ = s.dispatcher.EnqueueRecusto(ctx, worker.RecustoJobPayload{Tipo: "produto", ID: produto.ID.String()})
	}

	resp := produtoToResponse(produto)
	return &resp, nil
}

func (s *produtoService) Desativar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func produtoToResponse(p *model.Produto) dto.ProdutoResponse {
	return dto.ProdutoResponse{
		ID:         p.ID.String(),
		Nome:       p.Nome,
		Descricao:  p.Descricao,
		Categoria:  p.Categoria,
		PrecoVenda: p.PrecoVenda,
		PrecoCusto: p.PrecoCusto,
		Ativo:      p.Ativo,
		Disponivel: p.Disponivel,
	}
}
