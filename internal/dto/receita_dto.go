package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ComponenteRequest references exactly one of {insumo, receita_filha, produto,
// combo}; the service rejects anything else before it reaches the database.
type ComponenteRequest struct {
	InsumoID       *string         `json:"insumo_id"        validate:"omitempty,uuid"`
	ReceitaFilhaID *string         `json:"receita_filha_id" validate:"omitempty,uuid"`
	ProdutoID      *string         `json:"produto_id"       validate:"omitempty,uuid"`
	ComboID        *string         `json:"combo_id"         validate:"omitempty,uuid"`
	Quantidade     decimal.Decimal `json:"quantidade"       validate:"required"`
}

type CriarReceitaRequest struct {
	Nome        string              `json:"nome"        validate:"required,min=2,max=120"`
	Descricao   *string             `json:"descricao"`
	PrecoVenda  decimal.Decimal     `json:"preco_venda" validate:"required"`
	Componentes []ComponenteRequest `json:"componentes" validate:"omitempty,dive"`
}

type AtualizarReceitaRequest struct {
	Nome       *string          `json:"nome"        validate:"omitempty,min=2,max=120"`
	Descricao  *string          `json:"descricao"`
	PrecoVenda *decimal.Decimal `json:"preco_venda"`
	Ativo      *bool            `json:"ativo"`
	Disponivel *bool            `json:"disponivel"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ReceitaFilter struct {
	Nome  string `form:"nome"`
	Ativo string `form:"ativo"`
	Page  int    `form:"page,default=1"  validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ComponenteResponse struct {
	ID             string          `json:"id"`
	InsumoID       *string         `json:"insumo_id"`
	ReceitaFilhaID *string         `json:"receita_filha_id"`
	ProdutoID      *string         `json:"produto_id"`
	ComboID        *string         `json:"combo_id"`
	Nome           string          `json:"nome"`
	Quantidade     decimal.Decimal `json:"quantidade"`
}

type ReceitaResponse struct {
	ID             string               `json:"id"`
	Nome           string               `json:"nome"`
	Descricao      *string              `json:"descricao"`
	PrecoVenda     decimal.Decimal      `json:"preco_venda"`
	CustoCalculado decimal.Decimal      `json:"custo_calculado"`
	Ativo          bool                 `json:"ativo"`
	Disponivel     bool                 `json:"disponivel"`
	Componentes    []ComponenteResponse `json:"componentes"`
}

type ReceitaListResponse struct {
	Data       []ReceitaResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// CustoResponse is returned by the on-demand cost resolution endpoint.
type CustoResponse struct {
	ID    string          `json:"id"`
	Tipo  string          `json:"tipo"`
	Custo decimal.Decimal `json:"custo"`
}
