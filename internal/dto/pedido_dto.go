package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SelecaoRequest is one chosen option inside a group: option id → quantity.
type SelecaoRequest struct {
	OpcaoID    string `json:"opcao_id"   validate:"required,uuid"`
	Quantidade int    `json:"quantidade" validate:"min=0"`
}

// GrupoSelecaoRequest carries the customer's choices for one attachment —
// either a complemento vínculo or a combo section, keyed by its id.
type GrupoSelecaoRequest struct {
	VinculoID *string          `json:"vinculo_id" validate:"omitempty,uuid"`
	SecaoID   *string          `json:"secao_id"   validate:"omitempty,uuid"`
	Selecoes  []SelecaoRequest `json:"selecoes"   validate:"omitempty,dive"`
}

type ItemPedidoRequest struct {
	ProdutoID  *string               `json:"produto_id" validate:"omitempty,uuid"`
	ReceitaID  *string               `json:"receita_id" validate:"omitempty,uuid"`
	ComboID    *string               `json:"combo_id"   validate:"omitempty,uuid"`
	Quantidade int                   `json:"quantidade" validate:"required,min=1"`
	Grupos     []GrupoSelecaoRequest `json:"grupos"     validate:"omitempty,dive"`
}

type RegistrarPedidoRequest struct {
	Itens []ItemPedidoRequest `json:"itens" validate:"required,min=1,dive"`
	// ClienteEmail: optional — when present, the comanda worker mails the PDF.
	ClienteNome  *string `json:"cliente_nome"  validate:"omitempty,min=2"`
	ClienteEmail *string `json:"cliente_email" validate:"omitempty,email"`
}

type CancelarPedidoRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

type PedidoFilter struct {
	Data   string `form:"data"`                      // YYYY-MM-DD; empty = today
	Estado string `form:"estado,default=confirmado"` // confirmado | cancelado | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SelecaoResponse struct {
	OpcaoID    string          `json:"opcao_id"`
	Nome       string          `json:"nome"`
	Quantidade int             `json:"quantidade"`
	Preco      decimal.Decimal `json:"preco"`
}

type ItemPedidoResponse struct {
	Nome          string            `json:"nome"`
	Quantidade    int               `json:"quantidade"`
	PrecoUnitario decimal.Decimal   `json:"preco_unitario"`
	PrecoSelecoes decimal.Decimal   `json:"preco_selecoes"`
	TotalLinha    decimal.Decimal   `json:"total_linha"`
	Selecoes      []SelecaoResponse `json:"selecoes"`
}

type PedidoResponse struct {
	ID           string               `json:"id"`
	Numero       int                  `json:"numero"`
	ClienteNome  *string              `json:"cliente_nome"`
	ClienteEmail *string              `json:"cliente_email"`
	Itens        []ItemPedidoResponse `json:"itens"`
	Subtotal     decimal.Decimal      `json:"subtotal"`
	Total        decimal.Decimal      `json:"total"`
	Estado       string               `json:"estado"`
	CreatedAt    string               `json:"created_at"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// ConsultaPrecoResponse is returned by the public price check endpoint.
type ConsultaPrecoResponse struct {
	ID         string          `json:"id"`
	Tipo       string          `json:"tipo"`
	Nome       string          `json:"nome"`
	PrecoVenda decimal.Decimal `json:"preco_venda"`
	Disponivel bool            `json:"disponivel"`
}
