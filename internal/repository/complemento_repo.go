package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

type ComplementoRepository interface {
	Create(ctx context.Context, c *model.Complemento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Complemento, error)
	FindByIDComItens(ctx context.Context, id uuid.UUID) (*model.Complemento, error)
	List(ctx context.Context, empresaID uuid.UUID, page, limit int) ([]model.Complemento, int64, error)
	Update(ctx context.Context, c *model.Complemento) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Items
	AddItem(ctx context.Context, i *model.ComplementoItem) error
	RemoveItem(ctx context.Context, complementoID, itemID uuid.UUID) error
	Itens(ctx context.Context, complementoID uuid.UUID) ([]model.ComplementoItem, error)

	// Vínculos
	CreateVinculo(ctx context.Context, v *model.ComplementoVinculo) error
	FindVinculo(ctx context.Context, id uuid.UUID) (*model.ComplementoVinculo, error)
	RemoveVinculo(ctx context.Context, id uuid.UUID) error
	VinculosDoPai(ctx context.Context, coluna string, paiID uuid.UUID) ([]model.ComplementoVinculo, error)

	DB() *gorm.DB
}

type complementoRepo struct{ db *gorm.DB }

func NewComplementoRepository(db *gorm.DB) ComplementoRepository { return &complementoRepo{db: db} }

func (r *complementoRepo) Create(ctx context.Context, c *model.Complemento) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *complementoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Complemento, error) {
	var c model.Complemento
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *complementoRepo) FindByIDComItens(ctx context.Context, id uuid.UUID) (*model.Complemento, error) {
	var c model.Complemento
	err := r.db.WithContext(ctx).
		Preload("Itens", func(db *gorm.DB) *gorm.DB { return db.Order("complemento_itens.ordem ASC") }).
		Preload("Itens.Produto").
		Preload("Itens.Receita").
		Preload("Itens.Combo").
		First(&c, id).Error
	return &c, err
}

func (r *complementoRepo) List(ctx context.Context, empresaID uuid.UUID, page, limit int) ([]model.Complemento, int64, error) {
	var complementos []model.Complemento
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Complemento{}).
		Where("empresa_id = ? AND ativo = true", empresaID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("nome ASC").Limit(limit).Offset(offset).Find(&complementos).Error
	return complementos, total, err
}

func (r *complementoRepo) Update(ctx context.Context, c *model.Complemento) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *complementoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Complemento{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *complementoRepo) AddItem(ctx context.Context, i *model.ComplementoItem) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *complementoRepo) RemoveItem(ctx context.Context, complementoID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND complemento_id = ?", itemID, complementoID).
		Delete(&model.ComplementoItem{}).Error
}

func (r *complementoRepo) Itens(ctx context.Context, complementoID uuid.UUID) ([]model.ComplementoItem, error) {
	var itens []model.ComplementoItem
	err := r.db.WithContext(ctx).
		Where("complemento_id = ?", complementoID).
		Order("ordem ASC").Find(&itens).Error
	return itens, err
}

func (r *complementoRepo) CreateVinculo(ctx context.Context, v *model.ComplementoVinculo) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *complementoRepo) FindVinculo(ctx context.Context, id uuid.UUID) (*model.ComplementoVinculo, error) {
	var v model.ComplementoVinculo
	err := r.db.WithContext(ctx).Preload("Complemento").First(&v, id).Error
	return &v, err
}

func (r *complementoRepo) RemoveVinculo(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ComplementoVinculo{}, id).Error
}

// VinculosDoPai returns the attachments of one parent ordered for display.
// coluna is one of produto_id / receita_id / combo_id.
func (r *complementoRepo) VinculosDoPai(ctx context.Context, coluna string, paiID uuid.UUID) ([]model.ComplementoVinculo, error) {
	var vinculos []model.ComplementoVinculo
	err := r.db.WithContext(ctx).
		Preload("Complemento").
		Where(coluna+" = ?", paiID).
		Order("ordem ASC").Find(&vinculos).Error
	return vinculos, err
}

func (r *complementoRepo) DB() *gorm.DB { return r.db }
