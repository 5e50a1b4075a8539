package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is a catalog item sold as-is. The pricing engine reads PrecoVenda
// and PrecoCusto as facts; it never derives them.
type Produto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Nome        string    `gorm:"index;not null"`
	Descricao   *string
	Categoria   string          `gorm:"not null;default:'geral'"`
	PrecoVenda  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// PrecoCusto is the designated cost field used when a produto appears as a
	// recipe component; zero means "use PrecoVenda".
	PrecoCusto  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Ativo       bool            `gorm:"not null;default:true"`
	Disponivel  bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Produto) TableName() string { return "produtos" }
