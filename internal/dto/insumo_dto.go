package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarInsumoRequest struct {
	Nome    string          `json:"nome"    validate:"required,min=2,max=120"`
	Unidade string          `json:"unidade" validate:"required,oneof=kg g l ml unidade"`
	Custo   decimal.Decimal `json:"custo"   validate:"required"`
}

type AtualizarInsumoRequest struct {
	Nome    *string          `json:"nome"    validate:"omitempty,min=2,max=120"`
	Unidade *string          `json:"unidade" validate:"omitempty,oneof=kg g l ml unidade"`
	Custo   *decimal.Decimal `json:"custo"`
	Ativo   *bool            `json:"ativo"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type InsumoFilter struct {
	Nome  string `form:"nome"`
	Ativo string `form:"ativo"` // "true" | "false" | empty = all
	Page  int    `form:"page,default=1"  validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InsumoResponse struct {
	ID      string          `json:"id"`
	Nome    string          `json:"nome"`
	Unidade string          `json:"unidade"`
	Custo   decimal.Decimal `json:"custo"`
	Ativo   bool            `json:"ativo"`
}

type InsumoListResponse struct {
	Data       []InsumoResponse `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}
