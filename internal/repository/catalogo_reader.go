package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/pricing"
)

// catalogoReader adapts the database to pricing.CatalogReader. The engine
// only reads — every lookup is a straight primary-key fetch so graph walks
// stay cheap even on deep compositions.
type catalogoReader struct{ db *gorm.DB }

// NewCatalogoReader builds the read-only catalog view the pricing engine
// traverses.
func NewCatalogoReader(db *gorm.DB) pricing.CatalogReader {
	return &catalogoReader{db: db}
}

func (r *catalogoReader) Insumo(ctx context.Context, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *catalogoReader) Produto(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *catalogoReader) Receita(ctx context.Context, id uuid.UUID) (*model.Receita, error) {
	var rec model.Receita
	err := r.db.WithContext(ctx).First(&rec, id).Error
	return &rec, err
}

func (r *catalogoReader) ComponentesDaReceita(ctx context.Context, receitaID uuid.UUID) ([]model.ReceitaComponente, error) {
	var componentes []model.ReceitaComponente
	err := r.db.WithContext(ctx).Where("receita_id = ?", receitaID).Find(&componentes).Error
	return componentes, err
}

func (r *catalogoReader) Combo(ctx context.Context, id uuid.UUID) (*model.Combo, error) {
	var c model.Combo
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *catalogoReader) ItensDoCombo(ctx context.Context, comboID uuid.UUID) ([]model.ComboItem, error) {
	var itens []model.ComboItem
	err := r.db.WithContext(ctx).Where("combo_id = ?", comboID).Find(&itens).Error
	return itens, err
}
