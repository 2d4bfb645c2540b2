// Package catalog holds the read-only reference lists a station works with:
// providers, products and destination areas. The lists are fetched once per
// station activation; a failed load leaves the cache unusable until the next
// activation, which blocks the session from starting.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNoDisponible is reported while the cache has no successful load behind
// it — either because activation never ran or because the remote read failed.
var ErrNoDisponible = errors.New("catálogo no disponible: reactive la estación")

// Proveedor is the provider reference used by the engine.
type Proveedor struct {
	ID          int    `json:"IdProveedor"`
	RazonSocial string `json:"RazonSocial"`
}

// Producto is the product reference used by the engine. EsSubproducto marks
// derived subproducts, excluded from intake weighing.
type Producto struct {
	ID            int    `json:"IdProducto"`
	Nombre        string `json:"Nombre"`
	Unidad        string `json:"UnidadMedida"`
	EsSubproducto bool   `json:"EsSubproducto"`
}

// Area is a destination classification for outbound records.
type Area struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Ruta   string `json:"ruta"`
}

// AreasPredeterminadas mirrors the routing board of the outbound station.
var AreasPredeterminadas = []Area{
	{ID: 1, Nombre: "Limpieza", Ruta: "limpieza"},
	{ID: 2, Nombre: "Subproductos", Ruta: "subproductos"},
	{ID: 3, Nombre: "Venta", Ruta: "venta"},
}

// Fuente is the external catalog collaborator. Implementations exist for the
// remote HTTP catalog and for the local database.
type Fuente interface {
	Proveedores(ctx context.Context) ([]Proveedor, error)
	Productos(ctx context.Context) ([]Producto, error)
}

// Cache loads and serves the reference lists for one station.
type Cache struct {
	fuente Fuente
	// soloBase drops subproducts at load time — the intake stations only
	// offer base products for weighing.
	soloBase bool

	mu          sync.RWMutex
	cargado     bool
	proveedores []Proveedor
	productos   []Producto
	areas       []Area
}

func NewCache(fuente Fuente, soloBase bool) *Cache {
	return &Cache{fuente: fuente, soloBase: soloBase, areas: AreasPredeterminadas}
}

// Cargar performs the batched read of providers and products. Any failure
// leaves the cache not-ready; a later call retries from scratch.
func (c *Cache) Cargar(ctx context.Context) error {
	proveedores, err := c.fuente.Proveedores(ctx)
	if err != nil {
		c.marcarFallo()
		return fmt.Errorf("%w: %v", ErrNoDisponible, err)
	}
	productos, err := c.fuente.Productos(ctx)
	if err != nil {
		c.marcarFallo()
		return fmt.Errorf("%w: %v", ErrNoDisponible, err)
	}

	if c.soloBase {
		base := productos[:0]
		for _, p := range productos {
			if !p.EsSubproducto {
				base = append(base, p)
			}
		}
		productos = base
	}

	c.mu.Lock()
	c.proveedores = proveedores
	c.productos = productos
	c.cargado = true
	c.mu.Unlock()
	return nil
}

func (c *Cache) marcarFallo() {
	c.mu.Lock()
	c.cargado = false
	c.proveedores = nil
	c.productos = nil
	c.mu.Unlock()
}

// Listo reports whether the last load succeeded.
func (c *Cache) Listo() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cargado
}

func (c *Cache) Proveedores() []Proveedor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Proveedor, len(c.proveedores))
	copy(out, c.proveedores)
	return out
}

func (c *Cache) Productos() []Producto {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Producto, len(c.productos))
	copy(out, c.productos)
	return out
}

func (c *Cache) Areas() []Area {
	out := make([]Area, len(c.areas))
	copy(out, c.areas)
	return out
}

// Proveedor looks up a provider by id.
func (c *Cache) Proveedor(id int) (Proveedor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.proveedores {
		if p.ID == id {
			return p, true
		}
	}
	return Proveedor{}, false
}

// Producto looks up a product by id among the offered (filtered) products.
func (c *Cache) Producto(id int) (Producto, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.productos {
		if p.ID == id {
			return p, true
		}
	}
	return Producto{}, false
}

// Area looks up a destination area by id.
func (c *Cache) Area(id int) (Area, bool) {
	for _, a := range c.areas {
		if a.ID == id {
			return a, true
		}
	}
	return Area{}, false
}
