package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarProdutoRequest struct {
	Nome       string          `json:"nome"        validate:"required,min=2,max=120"`
	Descricao  *string         `json:"descricao"`
	Categoria  string          `json:"categoria"   validate:"required"`
	PrecoVenda decimal.Decimal `json:"preco_venda" validate:"required"`
	// PrecoCusto zero deixa o resolvedor de custo cair no preço de venda.
	PrecoCusto decimal.Decimal `json:"preco_custo"`
	Disponivel *bool           `json:"disponivel"`
}

type AtualizarProdutoRequest struct {
	Nome       *string          `json:"nome"        validate:"omitempty,min=2,max=120"`
	Descricao  *string          `json:"descricao"`
	Categoria  *string          `json:"categoria"`
	PrecoVenda *decimal.Decimal `json:"preco_venda"`
	PrecoCusto *decimal.Decimal `json:"preco_custo"`
	Ativo      *bool            `json:"ativo"`
	Disponivel *bool            `json:"disponivel"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProdutoFilter struct {
	Nome      string `form:"nome"`
	Categoria string `form:"categoria"`
	Ativo     string `form:"ativo"`
	Page      int    `form:"page,default=1"  validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID         string          `json:"id"`
	Nome       string          `json:"nome"`
	Descricao  *string         `json:"descricao"`
	Categoria  string          `json:"categoria"`
	PrecoVenda decimal.Decimal `json:"preco_venda"`
	PrecoCusto decimal.Decimal `json:"preco_custo"`
	Ativo      bool            `json:"ativo"`
	Disponivel bool            `json:"disponivel"`
}

type ProdutoListResponse struct {
	Data       []ProdutoResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
