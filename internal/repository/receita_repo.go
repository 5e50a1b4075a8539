package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

type ReceitaRepository interface {
	Create(ctx context.Context, r *model.Receita) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receita, error)
	FindByIDComComponentes(ctx context.Context, id uuid.UUID) (*model.Receita, error)
	List(ctx context.Context, empresaID uuid.UUID, filter dto.ReceitaFilter) ([]model.Receita, int64, error)
	Update(ctx context.Context, r *model.Receita) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Component edges
	AddComponente(ctx context.Context, c *model.ReceitaComponente) error
	RemoveComponente(ctx context.Context, receitaID, componenteID uuid.UUID) error
	Componentes(ctx context.Context, receitaID uuid.UUID) ([]model.ReceitaComponente, error)

	// ReceitasQueReferenciam lists the recipes containing the given node as a
	// direct component — the recusto worker walks this reverse edge.
	ReceitasQueReferenciam(ctx context.Context, coluna string, id uuid.UUID) ([]uuid.UUID, error)

	// UpdateCustoCalculadoTx refreshes the denormalized snapshot inside a tx.
	UpdateCustoCalculadoTx(tx *gorm.DB, id uuid.UUID, custo decimal.Decimal) error

	DB() *gorm.DB
}

type receitaRepo struct{ db *gorm.DB }

func NewReceitaRepository(db *gorm.DB) ReceitaRepository { return &receitaRepo{db: db} }

func (r *receitaRepo) Create(ctx context.Context, rec *model.Receita) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *receitaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receita, error) {
	var rec model.Receita
	err := r.db.WithContext(ctx).First(&rec, id).Error
	return &rec, err
}

func (r *receitaRepo) FindByIDComComponentes(ctx context.Context, id uuid.UUID) (*model.Receita, error) {
	var rec model.Receita
	err := r.db.WithContext(ctx).
		Preload("Componentes").
		Preload("Componentes.Insumo").
		Preload("Componentes.ReceitaFilha").
		Preload("Componentes.Produto").
		Preload("Componentes.Combo").
		First(&rec, id).Error
	return &rec, err
}

func (r *receitaRepo) List(ctx context.Context, empresaID uuid.UUID, filter dto.ReceitaFilter) ([]model.Receita, int64, error) {
	var receitas []model.Receita
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Receita{}).Where("empresa_id = ?", empresaID)

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
	err := q.Order("nome ASC").Limit(filter.Limit).Offset(offset).Find(&receitas).Error
	return receitas, total, err
}

func (r *receitaRepo) Update(ctx context.Context, rec *model.Receita) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *receitaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Receita{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *receitaRepo) AddComponente(ctx context.Context, c *model.ReceitaComponente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *receitaRepo) RemoveComponente(ctx context.Context, receitaID, componenteID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND receita_id = ?", componenteID, receitaID).
		Delete(&model.ReceitaComponente{}).Error
}

func (r *receitaRepo) Componentes(ctx context.Context, receitaID uuid.UUID) ([]model.ReceitaComponente, error) {
	var componentes []model.ReceitaComponente
	err := r.db.WithContext(ctx).Where("receita_id = ?", receitaID).Find(&componentes).Error
	return componentes, err
}

func (r *receitaRepo) ReceitasQueReferenciam(ctx context.Context, coluna string, id uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.ReceitaComponente{}).
		Where(coluna+" = ?", id).
		Distinct().Pluck("receita_id", &ids).Error
	return ids, err
}

func (r *receitaRepo) UpdateCustoCalculadoTx(tx *gorm.DB, id uuid.UUID, custo decimal.Decimal) error {
	return tx.Model(&model.Receita{}).Where("id = ?", id).Update("custo_calculado", custo).Error
}

func (r *receitaRepo) DB() *gorm.DB { return r.db }
