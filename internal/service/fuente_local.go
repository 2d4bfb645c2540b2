package service

import (
	"context"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/catalog"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/repository"
)

// fuenteLocal adapts the database-backed catalog repository to the
// catalog.Fuente collaborator, for deployments where the stations and the
// catalog share one server.
type fuenteLocal struct {
	repo repository.CatalogoRepository
}

func NewFuenteLocal(repo repository.CatalogoRepository) catalog.Fuente {
	return &fuenteLocal{repo: repo}
}

func (f *fuenteLocal) Proveedores(ctx context.Context) ([]catalog.Proveedor, error) {
	proveedores, err := f.repo.Proveedores(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Proveedor, 0, len(proveedores))
	for _, p := range proveedores {
		out = append(out, catalog.Proveedor{ID: p.IdProveedor, RazonSocial: p.RazonSocial})
	}
	return out, nil
}

func (f *fuenteLocal) Productos(ctx context.Context) ([]catalog.Producto, error) {
	productos, err := f.repo.Productos(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Producto, 0, len(productos))
	for _, p := range productos {
		out = append(out, catalog.Producto{
			ID:            p.IdProducto,
			Nombre:        p.Nombre,
			Unidad:        p.UnidadMedida,
			EsSubproducto: p.EsSubproducto,
		})
	}
	return out, nil
}
