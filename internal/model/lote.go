package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lote is one finalized, persisted batch of weighing records tied to a
// provider and folio. Folio uniqueness is enforced here, at the storage
// boundary, not inside the station engine.
type Lote struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IdProveedor   int       `gorm:"not null;index"`
	RazonSocial   string    `gorm:"not null"`
	Folio         string    `gorm:"uniqueIndex;not null"`
	Estacion      string    `gorm:"type:varchar(20);not null"`
	Observaciones *string
	// TotalKG is recomputed from the detail rows on insert — never trusted
	// from the submitted payload.
	TotalKG   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time

	Detalles []DetalleLote `gorm:"foreignKey:LoteID"`
}

func (Lote) TableName() string { return "lotes" }

// DetalleLote is an immutable weighing record inside a closed lot.
// Product name and unit are denormalized at capture time so the row stays
// meaningful if the catalog changes later.
type DetalleLote struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LoteID uuid.UUID `gorm:"type:uuid;index;not null"`
	// RegistroID is the capture-time id assigned by the station engine.
	RegistroID int64           `gorm:"not null"`
	IdProducto int             `gorm:"not null"`
	Producto   string          `gorm:"not null"`
	Unidad     string          `gorm:"not null"`
	PesoBruto  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Tara       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PesoNeto   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Area       *string         `gorm:"type:varchar(30)"`
	Hora       string          `gorm:"type:varchar(5);not null"`
	CreatedAt  time.Time
}

func (DetalleLote) TableName() string { return "detalles_lote" }
