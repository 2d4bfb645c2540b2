package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/model"
)

// CatalogoRepository serves the read-only reference lists. The stations and
// the public catalog endpoints both read through it; maintenance of these
// tables belongs to the catalog module of the console, not to this service.
type CatalogoRepository interface {
	Proveedores(ctx context.Context) ([]model.Proveedor, error)
	Productos(ctx context.Context) ([]model.Producto, error)
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) Proveedores(ctx context.Context) ([]model.Proveedor, error) {
	var proveedores []model.Proveedor
	err := r.db.WithContext(ctx).Order("razon_social ASC").Find(&proveedores).Error
	return proveedores, err
}

func (r *catalogoRepo) Productos(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&productos).Error
	return productos, err
}
