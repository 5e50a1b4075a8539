package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/dto"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

type PedidoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	ProximoNumero(ctx context.Context, tx *gorm.DB) (int, error)
	List(ctx context.Context, empresaID uuid.UUID, filter dto.PedidoFilter) ([]model.Pedido, int64, error)
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Itens").
		Preload("Itens.Produto").
		Preload("Itens.Receita").
		Preload("Itens.Combo").
		First(&p, id).Error
	return &p, err
}

func (r *pedidoRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Pedido{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *pedidoRepo) ProximoNumero(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic order number generation
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('pedidos_numero_seq')").Scan(&num).Error
	return num, err
}

func (r *pedidoRepo) List(ctx context.Context, empresaID uuid.UUID, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	var pedidos []model.Pedido
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Pedido{}).Where("empresa_id = ?", empresaID)

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Data != "" {
		q = q.Where("DATE(created_at) = ?", filter.Data)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Itens").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&pedidos).Error

	return pedidos, total, err
}
