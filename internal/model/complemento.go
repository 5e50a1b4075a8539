package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Complemento is a reusable named group of addable options ("Adicionais").
// It carries no selection rules of its own — those live on each vínculo,
// because the same complemento attached to two parents may behave differently.
type Complemento struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nome      string    `gorm:"index;not null"`
	Descricao *string
	Ativo     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Itens []ComplementoItem `gorm:"foreignKey:ComplementoID"`
}

func (Complemento) TableName() string { return "complementos" }

// ComplementoItem is the addable option itself: exactly one of
// {produto, receita, combo}. PrecoOverride nil means "use the referenced
// entity's own default price" — the effective price resolver picks.
type ComplementoItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComplementoID uuid.UUID `gorm:"type:uuid;index;not null"`

	ProdutoID *uuid.UUID `gorm:"type:uuid;index"`
	ReceitaID *uuid.UUID `gorm:"type:uuid;index"`
	ComboID   *uuid.UUID `gorm:"type:uuid;index"`

	PrecoOverride *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Ordem         int              `gorm:"not null;default:0"`
	CreatedAt     time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
	Receita *Receita `gorm:"foreignKey:ReceitaID"`
	Combo   *Combo   `gorm:"foreignKey:ComboID"`
}

func (ComplementoItem) TableName() string { return "complemento_itens" }

// ComplementoVinculo attaches a complemento to a specific parent (exactly one
// of produto/receita/combo) and carries the selection rules that govern that
// attachment only.
type ComplementoVinculo struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComplementoID uuid.UUID `gorm:"type:uuid;index;not null"`

	ProdutoID *uuid.UUID `gorm:"type:uuid;index"`
	ReceitaID *uuid.UUID `gorm:"type:uuid;index"`
	ComboID   *uuid.UUID `gorm:"type:uuid;index"`

	Obrigatorio  bool `gorm:"not null;default:false"`
	Quantitativo bool `gorm:"not null;default:false"`
	MinItens     *int
	MaxItens     *int
	Ordem        int `gorm:"not null;default:0"`
	CreatedAt    time.Time

	Complemento *Complemento `gorm:"foreignKey:ComplementoID"`
}

func (ComplementoVinculo) TableName() string { return "complemento_vinculos" }
