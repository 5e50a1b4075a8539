package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Insumo is a raw ingredient — the only node whose cost is ground truth.
// It never has components of its own.
type Insumo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nome      string    `gorm:"index;not null"`
	// Unidade de medida usada nas receitas: kg, g, l, ml, unidade
	Unidade   string          `gorm:"not null;default:'unidade'"`
	Custo     decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	Ativo     bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Insumo) TableName() string { return "insumos" }
