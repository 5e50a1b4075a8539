package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pedido is a committed customer order. Totals are computed by the pricing
// engine at registration time and stored as-is; they are never recomputed
// from the live catalog (prices may change after the fact).
type Pedido struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Numero       int       `gorm:"uniqueIndex;not null"`
	ClienteNome  *string
	ClienteEmail *string
	Subtotal     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'confirmado'"` // confirmado | cancelado
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Itens []PedidoItem `gorm:"foreignKey:PedidoID"`
}

func (Pedido) TableName() string { return "pedidos" }

// PedidoItem is one priced order line. Selecoes holds the validated choice
// set (option ids, quantities, effective prices) as a JSON snapshot for
// kitchen display and auditing.
type PedidoItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID uuid.UUID `gorm:"type:uuid;index;not null"`

	ProdutoID *uuid.UUID `gorm:"type:uuid;index"`
	ReceitaID *uuid.UUID `gorm:"type:uuid;index"`
	ComboID   *uuid.UUID `gorm:"type:uuid;index"`

	NomeItem      string          `gorm:"not null"`
	Quantidade    int             `gorm:"not null"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecoSelecoes decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalLinha    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Selecoes      string          `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt     time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
	Receita *Receita `gorm:"foreignKey:ReceitaID"`
	Combo   *Combo   `gorm:"foreignKey:ComboID"`
}

func (PedidoItem) TableName() string { return "pedido_itens" }
