package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

type ComboRepository interface {
	Create(ctx context.Context, c *model.Combo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Combo, error)
	FindByIDCompleto(ctx context.Context, id uuid.UUID) (*model.Combo, error)
	List(ctx context.Context, empresaID uuid.UUID, filter dto.ComboFilter) ([]model.Combo, int64, error)
	Update(ctx context.Context, c *model.Combo) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Flat items
	AddItem(ctx context.Context, i *model.ComboItem) error
	RemoveItem(ctx context.Context, comboID, itemID uuid.UUID) error
	Itens(ctx context.Context, comboID uuid.UUID) ([]model.ComboItem, error)

	// Sections
	AddSecao(ctx context.Context, s *model.ComboSecao) error
	RemoveSecao(ctx context.Context, comboID, secaoID uuid.UUID) error
	FindSecao(ctx context.Context, secaoID uuid.UUID) (*model.ComboSecao, error)
	SecoesDoCombo(ctx context.Context, comboID uuid.UUID) ([]model.ComboSecao, error)
	AddSecaoItem(ctx context.Context, i *model.ComboSecaoItem) error
	RemoveSecaoItem(ctx context.Context, secaoID, itemID uuid.UUID) error

	// CombosQueReferenciam lists combos containing the node as a flat item.
	CombosQueReferenciam(ctx context.Context, coluna string, id uuid.UUID) ([]uuid.UUID, error)

	UpdateCustoCalculadoTx(tx *gorm.DB, id uuid.UUID, custo decimal.Decimal) error

	DB() *gorm.DB
}

type comboRepo struct{ db *gorm.DB }

func NewComboRepository(db *gorm.DB) ComboRepository { return &comboRepo{db: db} }

func (r *comboRepo) Create(ctx context.Context, c *model.Combo) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *comboRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Combo, error) {
	var c model.Combo
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *comboRepo) FindByIDCompleto(ctx context.Context, id uuid.UUID) (*model.Combo, error) {
	var c model.Combo
	err := r.db.WithContext(ctx).
		Preload("Itens").
		Preload("Itens.Produto").
		Preload("Itens.Receita").
		Preload("Secoes", func(db *gorm.DB) *gorm.DB { return db.Order("combo_secoes.ordem ASC") }).
		Preload("Secoes.Itens").
		Preload("Secoes.Itens.Produto").
		Preload("Secoes.Itens.Receita").
		First(&c, id).Error
	return &c, err
}

func (r *comboRepo) List(ctx context.Context, empresaID uuid.UUID, filter dto.ComboFilter) ([]model.Combo, int64, error) {
	var combos []model.Combo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Combo{}).Where("empresa_id = ?", empresaID)

	switch filter.Ativo {
	case "false":
		q = q.Where("ativo = false")
	case "all":
		// no filter
	default:
		q = q.Where("ativo = true")
	}
	if filter.Nome != "" {
		q = q.Where("nome ILIKE ?", "%"+filter.Nome+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nome ASC").Limit(filter.Limit).Offset(offset).Find(&combos).Error
	return combos, total, err
}

func (r *comboRepo) Update(ctx context.Context, c *model.Combo) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *comboRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Combo{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *comboRepo) AddItem(ctx context.Context, i *model.ComboItem) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *comboRepo) RemoveItem(ctx context.Context, comboID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND combo_id = ?", itemID, comboID).
		Delete(&model.ComboItem{}).Error
}

func (r *comboRepo) Itens(ctx context.Context, comboID uuid.UUID) ([]model.ComboItem, error) {
	var itens []model.ComboItem
	err := r.db.WithContext(ctx).Where("combo_id = ?", comboID).Find(&itens).Error
	return itens, err
}

func (r *comboRepo) AddSecao(ctx context.Context, s *model.ComboSecao) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *comboRepo) RemoveSecao(ctx context.Context, comboID, secaoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND combo_id = ?", secaoID, comboID).
		Delete(&model.ComboSecao{}).Error
}

func (r *comboRepo) FindSecao(ctx context.Context, secaoID uuid.UUID) (*model.ComboSecao, error) {
	var s model.ComboSecao
	err := r.db.WithContext(ctx).Preload("Itens").First(&s, secaoID).Error
	return &s, err
}

func (r *comboRepo) SecoesDoCombo(ctx context.Context, comboID uuid.UUID) ([]model.ComboSecao, error) {
	var secoes []model.ComboSecao
	err := r.db.WithContext(ctx).
		Preload("Itens").
		Where("combo_id = ?", comboID).
		Order("ordem ASC").Find(&secoes).Error
	return secoes, err
}

func (r *comboRepo) AddSecaoItem(ctx context.Context, i *model.ComboSecaoItem) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *comboRepo) RemoveSecaoItem(ctx context.Context, secaoID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND secao_id = ?", itemID, secaoID).
		Delete(&model.ComboSecaoItem{}).Error
}

func (r *comboRepo) CombosQueReferenciam(ctx context.Context, coluna string, id uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.ComboItem{}).
		Where(coluna+" = ?", id).
		Distinct().Pluck("combo_id", &ids).Error
	return ids, err
}

func (r *comboRepo) UpdateCustoCalculadoTx(tx *gorm.DB, id uuid.UUID, custo decimal.Decimal) error {
	return tx.Model(&model.Combo{}).Where("id = ?", id).Update("custo_calculado", custo).Error
}

func (r *comboRepo) DB() *gorm.DB { return r.db }
