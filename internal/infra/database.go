package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (sequences, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates the schema. Also used by integration tests against a
// disposable container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Empresa{},
		&model.Usuario{},
		&model.Insumo{},
		&model.Produto{},
		&model.Receita{},
		&model.ReceitaComponente{},
		&model.Combo{},
		&model.ComboItem{},
		&model.ComboSecao{},
		&model.ComboSecaoItem{},
		&model.Complemento{},
		&model.ComplementoItem{},
		&model.ComplementoVinculo{},
		&model.Pedido{},
		&model.PedidoItem{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Atomic order numbering — consumed by pedidoRepo.ProximoNumero.
		`CREATE SEQUENCE IF NOT EXISTS pedidos_numero_seq`,
		// A receita may never reference itself directly. Indirect cycles stay
		// representable; the pricing engine's cycle guard handles them.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_componente_sem_auto_referencia') THEN
		    ALTER TABLE receita_componentes
		      ADD CONSTRAINT chk_componente_sem_auto_referencia
		      CHECK (receita_filha_id IS NULL OR receita_filha_id <> receita_id);
		  END IF;
		END $$`,
		// Each component edge points at exactly one node kind.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_componente_uma_referencia') THEN
		    ALTER TABLE receita_componentes
		      ADD CONSTRAINT chk_componente_uma_referencia
		      CHECK ((insumo_id IS NOT NULL)::int + (receita_filha_id IS NOT NULL)::int
		           + (produto_id IS NOT NULL)::int + (combo_id IS NOT NULL)::int = 1);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
