package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	List(ctx context.Context, empresaID uuid.UUID, filter dto.ProdutoFilter) ([]model.Produto, int64, error)
	Update(ctx context.Context, p *model.Produto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context, empresaID uuid.UUID, filter dto.ProdutoFilter) ([]model.Produto, int64, error) {
	var produtos []model.Produto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Produto{}).Where("empresa_id = ?", empresaID)

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
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nome ASC").Limit(filter.Limit).Offset(offset).Find(&produtos).Error
	return produtos, total, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Produto{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *produtoRepo) DB() *gorm.DB { return r.db }
