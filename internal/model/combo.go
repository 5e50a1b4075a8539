package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Combo is a bundle sold as one item. It is composed either via the legacy
// flat Itens list or via the richer Secoes model; the two may coexist.
// Only the flat list contributes to cost — secoes price additively at
// selection time.
type Combo struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Nome           string    `gorm:"index;not null"`
	Descricao      *string
	PrecoBase      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CustoCalculado decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Ativo          bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Itens  []ComboItem  `gorm:"foreignKey:ComboID"`
	Secoes []ComboSecao `gorm:"foreignKey:ComboID"`
}

func (Combo) TableName() string { return "combos" }

// ComboItem is a flat component of a combo: exactly one of {produto, receita}
// plus an integer quantity.
type ComboItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComboID uuid.UUID `gorm:"type:uuid;index;not null"`

	ProdutoID *uuid.UUID `gorm:"type:uuid;index"`
	ReceitaID *uuid.UUID `gorm:"type:uuid;index"`

	Quantidade int `gorm:"not null;default:1"`
	CreatedAt  time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
	Receita *Receita `gorm:"foreignKey:ReceitaID"`
}

func (ComboItem) TableName() string { return "combo_itens" }

// ComboSecao groups the customer choices inside a combo ("Escolha sua bebida").
// Quantitativa=false restricts the section to a single choice with quantity 1.
// MinItens/MaxItens nil = unbounded.
type ComboSecao struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComboID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nome    string    `gorm:"not null"`

	Obrigatoria  bool `gorm:"not null;default:false"`
	Quantitativa bool `gorm:"not null;default:false"`
	MinItens     *int
	MaxItens     *int
	Ordem        int `gorm:"not null;default:0"`
	CreatedAt    time.Time

	Itens []ComboSecaoItem `gorm:"foreignKey:SecaoID"`
}

func (ComboSecao) TableName() string { return "combo_secoes" }

// ComboSecaoItem is one choosable option inside a section: exactly one of
// {produto, receita}. PrecoIncremental is added on top of the combo's base
// price per selected unit; zero is a valid and common value.
// When PermiteQuantidade is false, QuantidadeMin and QuantidadeMax must both
// equal 1 (enforced at write time).
type ComboSecaoItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SecaoID uuid.UUID `gorm:"type:uuid;index;not null"`

	ProdutoID *uuid.UUID `gorm:"type:uuid;index"`
	ReceitaID *uuid.UUID `gorm:"type:uuid;index"`

	PrecoIncremental  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PermiteQuantidade bool            `gorm:"not null;default:false"`
	QuantidadeMin     int             `gorm:"not null;default:1"`
	QuantidadeMax     int             `gorm:"not null;default:1"`
	CreatedAt         time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
	Receita *Receita `gorm:"foreignKey:ReceitaID"`
}

func (ComboSecaoItem) TableName() string { return "combo_secao_itens" }
