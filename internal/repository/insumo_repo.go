package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

type InsumoRepository interface {
	Create(ctx context.Context, i *model.Insumo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error)
	List(ctx context.Context, empresaID uuid.UUID, filter dto.InsumoFilter) ([]model.Insumo, int64, error)
	Update(ctx context.Context, i *model.Insumo) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// ReceitasQueUsam lists the recipes referencing the insumo directly —
	// the recusto worker's starting set after a cost change.
	ReceitasQueUsam(ctx context.Context, insumoID uuid.UUID) ([]uuid.UUID, error)

	DB() *gorm.DB
}

type insumoRepo struct{ db *gorm.DB }

func NewInsumoRepository(db *gorm.DB) InsumoRepository { return &insumoRepo{db: db} }

func (r *insumoRepo) Create(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *insumoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *insumoRepo) List(ctx context.Context, empresaID uuid.UUID, filter dto.InsumoFilter) ([]model.Insumo, int64, error) {
	var insumos []model.Insumo
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Insumo{}).Where("empresa_id = ?", empresaID)

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
	err := q.Order("nome ASC").Limit(filter.Limit).Offset(offset).Find(&insumos).Error
	return insumos, total, err
}

func (r *insumoRepo) Update(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *insumoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Insumo{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *insumoRepo) ReceitasQueUsam(ctx context.Context, insumoID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.ReceitaComponente{}).
		Where("insumo_id = ?", insumoID).
		Distinct().Pluck("receita_id", &ids).Error
	return ids, err
}

func (r *insumoRepo) DB() *gorm.DB { return r.db }
