package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ComboItemRequest struct {
	ProdutoID  *string `json:"produto_id" validate:"omitempty,uuid"`
	ReceitaID  *string `json:"receita_id" validate:"omitempty,uuid"`
	Quantidade int     `json:"quantidade" validate:"required,min=1"`
}

type ComboSecaoItemRequest struct {
	ProdutoID         *string         `json:"produto_id"         validate:"omitempty,uuid"`
	ReceitaID         *string         `json:"receita_id"         validate:"omitempty,uuid"`
	PrecoIncremental  decimal.Decimal `json:"preco_incremental"`
	PermiteQuantidade bool            `json:"permite_quantidade"`
	QuantidadeMin     int             `json:"quantidade_min"     validate:"omitempty,min=0"`
	QuantidadeMax     int             `json:"quantidade_max"     validate:"omitempty,min=0"`
}

type ComboSecaoRequest struct {
	Nome         string                  `json:"nome"         validate:"required,min=2,max=120"`
	Obrigatoria  bool                    `json:"obrigatoria"`
	Quantitativa bool                    `json:"quantitativa"`
	MinItens     *int                    `json:"min_itens"    validate:"omitempty,min=0"`
	MaxItens     *int                    `json:"max_itens"    validate:"omitempty,min=1"`
	Ordem        int                     `json:"ordem"`
	Itens        []ComboSecaoItemRequest `json:"itens"        validate:"omitempty,dive"`
}

type CriarComboRequest struct {
	Nome      string              `json:"nome"       validate:"required,min=2,max=120"`
	Descricao *string             `json:"descricao"`
	PrecoBase decimal.Decimal     `json:"preco_base"`
	Itens     []ComboItemRequest  `json:"itens"      validate:"omitempty,dive"`
	Secoes    []ComboSecaoRequest `json:"secoes"     validate:"omitempty,dive"`
}

type AtualizarComboRequest struct {
	Nome      *string          `json:"nome"       validate:"omitempty,min=2,max=120"`
	Descricao *string          `json:"descricao"`
	PrecoBase *decimal.Decimal `json:"preco_base"`
	Ativo     *bool            `json:"ativo"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ComboFilter struct {
	Nome  string `form:"nome"`
	Ativo string `form:"ativo"`
	Page  int    `form:"page,default=1"  validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ComboItemResponse struct {
	ID         string  `json:"id"`
	ProdutoID  *string `json:"produto_id"`
	ReceitaID  *string `json:"receita_id"`
	Nome       string  `json:"nome"`
	Quantidade int     `json:"quantidade"`
}

type ComboSecaoItemResponse struct {
	ID                string          `json:"id"`
	ProdutoID         *string         `json:"produto_id"`
	ReceitaID         *string         `json:"receita_id"`
	Nome              string          `json:"nome"`
	PrecoIncremental  decimal.Decimal `json:"preco_incremental"`
	PermiteQuantidade bool            `json:"permite_quantidade"`
	QuantidadeMin     int             `json:"quantidade_min"`
	QuantidadeMax     int             `json:"quantidade_max"`
}

type ComboSecaoResponse struct {
	ID           string                   `json:"id"`
	Nome         string                   `json:"nome"`
	Obrigatoria  bool                     `json:"obrigatoria"`
	Quantitativa bool                     `json:"quantitativa"`
	MinItens     *int                     `json:"min_itens"`
	MaxItens     *int                     `json:"max_itens"`
	Ordem        int                      `json:"ordem"`
	Itens        []ComboSecaoItemResponse `json:"itens"`
}

type ComboResponse struct {
	ID             string               `json:"id"`
	Nome           string               `json:"nome"`
	Descricao      *string              `json:"descricao"`
	PrecoBase      decimal.Decimal      `json:"preco_base"`
	CustoCalculado decimal.Decimal      `json:"custo_calculado"`
	Ativo          bool                 `json:"ativo"`
	Itens          []ComboItemResponse  `json:"itens"`
	Secoes         []ComboSecaoResponse `json:"secoes"`
}

type ComboListResponse struct {
	Data       []ComboResponse `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
