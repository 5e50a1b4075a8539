package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receita is a composite menu item assembled from components. Its cost is
// never ground truth: CustoCalculado is a denormalized snapshot refreshed by
// the recusto worker and is display-only — every authoritative read goes
// through the pricing engine.
type Receita struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Nome           string    `gorm:"index;not null"`
	Descricao      *string
	PrecoVenda     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CustoCalculado decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Ativo          bool            `gorm:"not null;default:true"`
	Disponivel     bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Componentes []ReceitaComponente `gorm:"foreignKey:ReceitaID"`
}

func (Receita) TableName() string { return "receitas" }

// ReceitaComponente is an edge from a receita to exactly one of
// {insumo, sub-receita, produto, combo}. Exactly one FK must be set —
// enforced at write time by the service and re-checked at read time by the
// pricing engine. Quantidade may be fractional (insumos by weight/volume).
//
// A receita may not reference itself directly; indirect cycles through other
// receitas are structurally possible and handled by the resolver's cycle guard.
type ReceitaComponente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReceitaID uuid.UUID `gorm:"type:uuid;index;not null"`

	InsumoID       *uuid.UUID `gorm:"type:uuid;index"`
	ReceitaFilhaID *uuid.UUID `gorm:"type:uuid;index"`
	ProdutoID      *uuid.UUID `gorm:"type:uuid;index"`
	ComboID        *uuid.UUID `gorm:"type:uuid;index"`

	Quantidade decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	CreatedAt  time.Time

	Insumo       *Insumo  `gorm:"foreignKey:InsumoID"`
	ReceitaFilha *Receita `gorm:"foreignKey:ReceitaFilhaID"`
	Produto      *Produto `gorm:"foreignKey:ProdutoID"`
	Combo        *Combo   `gorm:"foreignKey:ComboID"`
}

func (ReceitaComponente) TableName() string { return "receita_componentes" }
