package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/pricing"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/repository"
)

// precoCacheTTL keeps the public price lookup cheap without a manual
// invalidation path: stale entries age out on their own.
const precoCacheTTL = 5 * time.Minute

type PrecificacaoService interface {
	ResolverCusto(ctx context.Context, tipo string, id uuid.UUID) (*dto.CustoResponse, error)
	ConsultarPreco(ctx context.Context, tipo string, id uuid.UUID) (*dto.ConsultaPrecoResponse, error)
}

type precificacaoService struct {
	engine      *pricing.Engine
	produtoRepo repository.ProdutoRepository
	receitaRepo repository.ReceitaRepository
	comboRepo   repository.ComboRepository
	rdb         *redis.Client
}

func NewPrecificacaoService(
	engine *pricing.Engine,
	produtoRepo repository.ProdutoRepository,
	receitaRepo repository.ReceitaRepository,
	comboRepo repository.ComboRepository,
	rdb *redis.Client,
) PrecificacaoService {
	return &precificacaoService{
		engine:      engine,
		produtoRepo: produtoRepo,
		receitaRepo: receitaRepo,
		comboRepo:   comboRepo,
		rdb:         rdb,
	}
}

var tipoParaKind = map[string]pricing.Kind{
	"insumo":  pricing.KindInsumo,
	"produto": pricing.KindProduto,
	"receita": pricing.KindReceita,
	"combo":   pricing.KindCombo,
}

// ResolverCusto runs the cost resolver on demand, without touching the
// persisted snapshots. Useful for auditing a recipe before saving it.
func (s *precificacaoService) ResolverCusto(ctx context.Context, tipo string, id uuid.UUID) (*dto.CustoResponse, error) {
	kind, ok := tipoParaKind[tipo]
	if !ok {
		return nil, fmt.Errorf("tipo invalido: %s", tipo)
	}
	custo, err := s.engine.ResolverCusto(ctx, pricing.Ref{Kind: kind, ID: id})
	if err != nil {
		return nil, err
	}
	return &dto.CustoResponse{
		ID:    id.String(),
		Tipo:  tipo,
		Custo: pricing.Arredondar(custo),
	}, nil
}

// ConsultarPreco is the public menu lookup: cache-aside over redis with a
// short TTL. Cache failures degrade to a direct read.
func (s *precificacaoService) ConsultarPreco(ctx context.Context, tipo string, id uuid.UUID) (*dto.ConsultaPrecoResponse, error) {
	cacheKey := fmt.Sprintf("preco:%s:%s", tipo, id)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp dto.ConsultaPrecoResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	resp, err := s.consultarDireto(ctx, tipo, id)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, payload, precoCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", cacheKey).Msg("falha ao gravar cache de preco")
			}
		}
	}
	return resp, nil
}

func (s *precificacaoService) consultarDireto(ctx context.Context, tipo string, id uuid.UUID) (*dto.ConsultaPrecoResponse, error) {
	switch tipo {
	case "produto":
		p, err := s.produtoRepo.FindByID(ctx, id)
		if err != nil {
			return nil, errors.New("produto nao encontrado")
		}
		return &dto.ConsultaPrecoResponse{
			ID:         p.ID.String(),
			Tipo:       tipo,
			Nome:       p.Nome,
			PrecoVenda: p.PrecoVenda,
			Disponivel: p.Ativo && p.Disponivel,
		}, nil
	case "receita":
		r, err := s.receitaRepo.FindByID(ctx, id)
		if err != nil {
			return nil, errors.New("receita nao encontrada")
		}
		return &dto.ConsultaPrecoResponse{
			ID:         r.ID.String(),
			Tipo:       tipo,
			Nome:       r.Nome,
			PrecoVenda: r.PrecoVenda,
			Disponivel: r.Ativo && r.Disponivel,
		}, nil
	case "combo":
		c, err := s.comboRepo.FindByID(ctx, id)
		if err != nil {
			return nil, errors.New("combo nao encontrado")
		}
		preco := c.PrecoBase
		if !preco.IsPositive() {
			// Combos sem preço de tabela caem no custo resolvido.
			custo, err := s.engine.ResolverCusto(ctx, pricing.Ref{Kind: pricing.KindCombo, ID: id})
			if err != nil {
				return nil, err
			}
			preco = pricing.Arredondar(custo)
		}
		return &dto.ConsultaPrecoResponse{
			ID:         c.ID.String(),
			Tipo:       tipo,
			Nome:       c.Nome,
			PrecoVenda: preco,
			Disponivel: c.Ativo,
		}, nil
	default:
		return nil, fmt.Errorf("tipo invalido: %s", tipo)
	}
}
