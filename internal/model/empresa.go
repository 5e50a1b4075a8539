package model

import (
	"time"

	"github.com/google/uuid"
)

// Empresa is the tenant that owns every catalog entity. Cross-empresa
// references are invalid and rejected at the service layer.
type Empresa struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	CNPJ      string    `gorm:"uniqueIndex;not null"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Empresa) TableName() string { return "empresas" }
