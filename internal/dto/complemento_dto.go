package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ComplementoItemRequest struct {
	ProdutoID *string `json:"produto_id" validate:"omitempty,uuid"`
	ReceitaID *string `json:"receita_id" validate:"omitempty,uuid"`
	ComboID   *string `json:"combo_id"   validate:"omitempty,uuid"`
	// PrecoOverride nulo herda o preço padrão da entidade referenciada.
	PrecoOverride *decimal.Decimal `json:"preco_override"`
	Ordem         int              `json:"ordem"`
}

type CriarComplementoRequest struct {
	Nome      string                   `json:"nome"      validate:"required,min=2,max=120"`
	Descricao *string                  `json:"descricao"`
	Itens     []ComplementoItemRequest `json:"itens"     validate:"omitempty,dive"`
}

type AtualizarComplementoRequest struct {
	Nome      *string `json:"nome"      validate:"omitempty,min=2,max=120"`
	Descricao *string `json:"descricao"`
	Ativo     *bool   `json:"ativo"`
}

// VincularComplementoRequest attaches a complemento to exactly one parent
// with the rules that govern that attachment.
type VincularComplementoRequest struct {
	ComplementoID string  `json:"complemento_id" validate:"required,uuid"`
	ProdutoID     *string `json:"produto_id"     validate:"omitempty,uuid"`
	ReceitaID     *string `json:"receita_id"     validate:"omitempty,uuid"`
	ComboID       *string `json:"combo_id"       validate:"omitempty,uuid"`
	Obrigatorio   bool    `json:"obrigatorio"`
	Quantitativo  bool    `json:"quantitativo"`
	MinItens      *int    `json:"min_itens"      validate:"omitempty,min=0"`
	MaxItens      *int    `json:"max_itens"      validate:"omitempty,min=1"`
	Ordem         int     `json:"ordem"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ComplementoItemResponse struct {
	ID            string           `json:"id"`
	ProdutoID     *string          `json:"produto_id"`
	ReceitaID     *string          `json:"receita_id"`
	ComboID       *string          `json:"combo_id"`
	Nome          string           `json:"nome"`
	PrecoOverride *decimal.Decimal `json:"preco_override"`
	PrecoEfetivo  decimal.Decimal  `json:"preco_efetivo"`
	Ordem         int              `json:"ordem"`
}

type ComplementoResponse struct {
	ID        string                    `json:"id"`
	Nome      string                    `json:"nome"`
	Descricao *string                   `json:"descricao"`
	Ativo     bool                      `json:"ativo"`
	Itens     []ComplementoItemResponse `json:"itens"`
}

type ComplementoListResponse struct {
	Data  []ComplementoResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

type VinculoResponse struct {
	ID            string  `json:"id"`
	ComplementoID string  `json:"complemento_id"`
	ProdutoID     *string `json:"produto_id"`
	ReceitaID     *string `json:"receita_id"`
	ComboID       *string `json:"combo_id"`
	Obrigatorio   bool    `json:"obrigatorio"`
	Quantitativo  bool    `json:"quantitativo"`
	MinItens      *int    `json:"min_itens"`
	MaxItens      *int    `json:"max_itens"`
	Ordem         int     `json:"ordem"`
}
