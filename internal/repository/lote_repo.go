package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/model"
)

// ErrFolioDuplicado marks an attempt to persist a lot whose folio already
// exists. The store enforces this, not the station engine.
var ErrFolioDuplicado = errors.New("ya existe un lote con ese folio")

type LoteRepository interface {
	Create(ctx context.Context, lote *model.Lote) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error)
	List(ctx context.Context, page, limit int) ([]model.Lote, int64, error)
}

type loteRepo struct{ db *gorm.DB }

func NewLoteRepository(db *gorm.DB) LoteRepository { return &loteRepo{db: db} }

// Create inserts the lot and its detail rows in one transaction.
func (r *loteRepo) Create(ctx context.Context, lote *model.Lote) error {
	err := r.db.WithContext(ctx).Create(lote).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrFolioDuplicado
	}
	return err
}

func (r *loteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error) {
	var lote model.Lote
	err := r.db.WithContext(ctx).Preload("Detalles").First(&lote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lote, nil
}

func (r *loteRepo) List(ctx context.Context, page, limit int) ([]model.Lote, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Lote{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var lotes []model.Lote
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&lotes).Error
	return lotes, total, err
}
