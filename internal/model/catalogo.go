package model

import "time"

// Proveedor is a supplier reference entity. The receiving stations only read
// this table; maintenance happens in the catalog module of the main console.
type Proveedor struct {
	IdProveedor int       `gorm:"primaryKey;autoIncrement" json:"IdProveedor"`
	RazonSocial string    `gorm:"not null" json:"RazonSocial"`
	RFC         string    `gorm:"column:rfc;size:13" json:"RFC"`
	Fecha       time.Time `json:"fecha"`
}

func (Proveedor) TableName() string { return "proveedores" }

// Producto is a product reference entity. EsSubproducto marks derived
// subproducts, which are never offered for direct intake weighing.
type Producto struct {
	IdProducto    int       `gorm:"primaryKey;autoIncrement" json:"IdProducto"`
	Nombre        string    `gorm:"index;not null" json:"Nombre"`
	UnidadMedida  string    `gorm:"not null;default:'KG'" json:"UnidadMedida"`
	EsSubproducto bool      `gorm:"not null;default:false" json:"EsSubproducto"`
	Fecha         time.Time `json:"fecha"`
}

func (Producto) TableName() string { return "productos" }
