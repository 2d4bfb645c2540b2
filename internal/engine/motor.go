// Package engine implements the weighing session workflow shared by the
// reception, washing and outbound stations: session lifecycle, iterative
// weight capture with tare compensation, the record ledger and lot
// finalization. One engine instance backs one station screen; the three
// stations differ only in their Config.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/catalog"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/scale"
)

// Estado is the session lifecycle state.
type Estado string

const (
	// EstadoPreparacion: operator selects provider and folio.
	EstadoPreparacion Estado = "preparacion"
	// EstadoActiva: capture loop running.
	EstadoActiva Estado = "activa"
	// EstadoRevision: reception variant — confirmed load, weighing each product.
	EstadoRevision Estado = "revision"
	// EstadoCerrando: lot commit in flight.
	EstadoCerrando Estado = "cerrando"
	// EstadoCerrada: commit succeeded; the engine re-arms immediately.
	EstadoCerrada Estado = "cerrada"
)

// Config parameterizes the engine per station instead of keeping three
// near-duplicate implementations.
type Config struct {
	// Estacion names the station ("recepcion", "limpieza", "salidas").
	Estacion string
	// ConRevision inserts the load-confirmation stage before weighing.
	ConRevision bool
	// ConAreas enables destination routing on each record.
	ConAreas bool
	// TaraPorItem enables the tare workflow: gross capture requires a prior
	// tare, and the tare is cleared after every registered record so each
	// container is tared again. Stations without it weigh gross directly.
	TaraPorItem bool
	// FolioAutomatico regenerates an AUTO- folio on every re-arm instead of
	// leaving it for the operator.
	FolioAutomatico bool
}

// Operador is the explicit user context handed to the engine at
// construction.
type Operador struct {
	ID     int
	Nombre string
}

// Catalogo is the reference-list collaborator (see catalog.Cache).
type Catalogo interface {
	Listo() bool
	Proveedor(id int) (catalog.Proveedor, bool)
	Producto(id int) (catalog.Producto, bool)
	Area(id int) (catalog.Area, bool)
	Areas() []catalog.Area
}

// Committer persists a finalized lot. The engine invokes it exactly once
// per finalization attempt and never retries on its own.
type Committer interface {
	GuardarLote(ctx context.Context, payload PayloadLote) error
}

// PayloadLote is the submission built from the session header and a ledger
// snapshot. Field names follow the wire contract of the lot store.
type PayloadLote struct {
	IdProveedor   int             `json:"IdProveedor"`
	RazonSocial   string          `json:"RazonSocial"`
	Folio         string          `json:"folio"`
	Observaciones string          `json:"observaciones"`
	Detalles      []Registro      `json:"detalles"`
	TotalKG       decimal.Decimal `json:"total_kg"`
	Estacion      string          `json:"estacion"`
	Operador      string          `json:"operador,omitempty"`
}

// Motor drives one station. All mutation goes through its methods; the
// mutex serializes commands the way the single-threaded screen did, and the
// cerrando flag keeps exactly one finalization in flight.
type Motor struct {
	cfg      Config
	operador Operador

	catalogo  Catalogo
	bascula   scale.Bascula
	committer Committer

	mu            sync.Mutex
	estado        Estado
	proveedor     catalog.Proveedor
	folio         string
	observaciones string

	seleccion      map[int]catalog.Producto // confirmed load (ConRevision)
	productoActivo *catalog.Producto
	areaActiva     *catalog.Area

	tara  decimal.Decimal
	bruto decimal.Decimal

	ledger   Ledger
	cerrando bool

	ahora func() time.Time
}

// NewMotor builds a station engine in Preparación.
func NewMotor(cfg Config, operador Operador, catalogo Catalogo, bascula scale.Bascula, committer Committer) *Motor {
	m := &Motor{
		cfg:       cfg,
		operador:  operador,
		catalogo:  catalogo,
		bascula:   bascula,
		committer: committer,
		ahora:     time.Now,
	}
	m.rearmar()
	return m
}

// rearmar resets to a fresh Preparación session. Callers hold the lock
// except during construction.
func (m *Motor) rearmar() {
	m.estado = EstadoPreparacion
	m.proveedor = catalog.Proveedor{}
	m.observaciones = ""
	m.seleccion = nil
	m.productoActivo = nil
	m.tara = decimal.Zero
	m.bruto = decimal.Zero
	m.ledger.Vaciar()
	if m.cfg.FolioAutomatico {
		m.folio = generarFolio(m.ahora())
	} else {
		m.folio = ""
	}
	if m.cfg.ConAreas {
		areas := m.catalogo.Areas()
		if len(areas) > 0 {
			m.areaActiva = &areas[0]
		}
	} else {
		m.areaActiva = nil
	}
}

// generarFolio mirrors the outbound station's AUTO-xxxx folio.
func generarFolio(t time.Time) string {
	ms := fmt.Sprintf("%d", t.UnixMilli())
	return "AUTO-" + ms[len(ms)-4:]
}

// Iniciar moves Preparación → Activa once provider and folio are supplied.
// The catalog must have loaded at station activation; a failed load blocks
// the start. On any refusal nothing is mutated.
func (m *Motor) Iniciar(idProveedor int, folio string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.estado != EstadoPreparacion {
		return ErrEstadoInvalido
	}
	if !m.catalogo.Listo() {
		return catalog.ErrNoDisponible
	}

	if folio == "" {
		folio = m.folio // pre-generated AUTO folio, when the variant has one
	}
	campos := map[string]string{}
	if idProveedor == 0 {
		campos["proveedor"] = "requerido"
	}
	if folio == "" {
		campos["folio"] = "requerido"
	}
	if len(campos) > 0 {
		return &ErrorValidacion{Campos: campos}
	}

	prov, ok := m.catalogo.Proveedor(idProveedor)
	if !ok {
		return &ErrorValidacion{Campos: map[string]string{"proveedor": "no existe"}}
	}

	m.proveedor = prov
	m.folio = folio
	m.estado = EstadoActiva
	return nil
}

// ConfirmarCarga records the set of base products present in the shipment
// and moves Activa → Revisión. Only the reception variant has this stage.
func (m *Motor) ConfirmarCarga(idsProducto []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cfg.ConRevision || m.estado != EstadoActiva {
		return ErrEstadoInvalido
	}
	if len(idsProducto) == 0 {
		return ErrCargaVacia
	}

	seleccion := make(map[int]catalog.Producto, len(idsProducto))
	var primero *catalog.Producto
	for _, id := range idsProducto {
		p, ok := m.catalogo.Producto(id)
		if !ok || p.EsSubproducto {
			return ErrProductoNoBase
		}
		seleccion[id] = p
		if primero == nil {
			primero = &p
		}
	}

	m.seleccion = seleccion
	m.productoActivo = primero
	m.estado = EstadoRevision
	return nil
}

// SeleccionarProducto picks the product the next record will be attributed
// to. In Revisión the choice is limited to the confirmed load.
func (m *Motor) SeleccionarProducto(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.estado != EstadoActiva && m.estado != EstadoRevision {
		return ErrEstadoInvalido
	}
	if m.estado == EstadoRevision {
		p, ok := m.seleccion[id]
		if !ok {
			return ErrProductoNoBase
		}
		m.productoActivo = &p
		return nil
	}
	p, ok := m.catalogo.Producto(id)
	if !ok || p.EsSubproducto {
		return ErrProductoNoBase
	}
	m.productoActivo = &p
	return nil
}

// SeleccionarArea picks the destination for the next record (outbound only).
func (m *Motor) SeleccionarArea(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cfg.ConAreas {
		return ErrEstadoInvalido
	}
	if m.estado != EstadoActiva && m.estado != EstadoRevision {
		return ErrEstadoInvalido
	}
	a, ok := m.catalogo.Area(id)
	if !ok {
		return ErrEstadoInvalido
	}
	m.areaActiva = &a
	return nil
}

// CapturarTara reads the empty container weight and clears the pending
// gross reading, forcing a fresh gross capture. Only meaningful on the
// tare-per-item variant.
func (m *Motor) CapturarTara(ctx context.Context) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cfg.TaraPorItem {
		return decimal.Zero, ErrEstadoInvalido
	}
	if m.estado != EstadoActiva && m.estado != EstadoRevision {
		return decimal.Zero, ErrEstadoInvalido
	}
	lectura, err := m.bascula.Leer(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("báscula: %w", err)
	}
	m.tara = lectura.Round(2)
	m.bruto = decimal.Zero
	return m.tara, nil
}

// CapturarBruto reads the loaded container weight. On the tare-per-item
// variant a tare must be pending first.
func (m *Motor) CapturarBruto(ctx context.Context) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.estado != EstadoActiva && m.estado != EstadoRevision {
		return decimal.Zero, ErrEstadoInvalido
	}
	if m.cfg.TaraPorItem && !m.tara.IsPositive() {
		return decimal.Zero, ErrTaraNoFijada
	}
	lectura, err := m.bascula.Leer(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("báscula: %w", err)
	}
	m.bruto = lectura.Round(2)
	return m.bruto, nil
}

// Registrar confirms the pending readings into a WeighingRecord. A net of
// exactly zero is invalid input, not a zero-weight record. After a
// successful registration the gross is cleared, and on the tare-per-item
// variant the tare too — the next container must be tared again. A refused
// registration leaves both readings as they were.
func (m *Motor) Registrar() (Registro, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.estado != EstadoActiva && m.estado != EstadoRevision {
		return Registro{}, ErrEstadoInvalido
	}
	if m.productoActivo == nil {
		return Registro{}, ErrSinProducto
	}
	neto := CalcularNeto(m.bruto, m.tara)
	if !neto.IsPositive() {
		return Registro{}, ErrPesoInvalido
	}

	ahora := m.ahora()
	r := Registro{
		IdProducto: m.productoActivo.ID,
		Producto:   m.productoActivo.Nombre,
		Unidad:     m.productoActivo.Unidad,
		PesoBruto:  m.bruto,
		Tara:       m.tara,
		PesoNeto:   neto,
		Hora:       ahora.Format("15:04"),
	}
	if m.cfg.ConAreas && m.areaActiva != nil {
		nombre := m.areaActiva.Nombre
		r.Area = &nombre
	}
	r = m.ledger.Agregar(r, ahora)

	m.bruto = decimal.Zero
	if m.cfg.TaraPorItem {
		m.tara = decimal.Zero
	}
	return r, nil
}

// QuitarRegistro removes a record before finalization. Unknown ids are a
// no-op.
func (m *Motor) QuitarRegistro(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.estado != EstadoActiva && m.estado != EstadoRevision {
		return ErrEstadoInvalido
	}
	m.ledger.Quitar(id)
	return nil
}

// Total returns the accumulated net weight of the session.
func (m *Motor) Total() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger.Total()
}

// Finalizar closes the lot: builds the submission from the session header
// and a ledger snapshot, invokes the remote commit exactly once, and
// reconciles local state with the outcome. Success clears the ledger and
// re-arms a fresh Preparación session; failure rolls the session back to
// Activa with every record and header field intact so the operator can
// retry. While one finalization is outstanding any second call is rejected.
func (m *Motor) Finalizar(ctx context.Context, observaciones string) error {
	m.mu.Lock()
	if m.cerrando {
		m.mu.Unlock()
		return ErrCierreEnCurso
	}
	if m.estado != EstadoActiva && m.estado != EstadoRevision {
		m.mu.Unlock()
		return ErrEstadoInvalido
	}
	if m.ledger.Len() == 0 {
		m.mu.Unlock()
		return ErrLoteVacio
	}

	m.cerrando = true
	m.estado = EstadoCerrando
	payload := PayloadLote{
		IdProveedor:   m.proveedor.ID,
		RazonSocial:   m.proveedor.RazonSocial,
		Folio:         m.folio,
		Observaciones: observaciones,
		Detalles:      m.ledger.Registros(),
		TotalKG:       m.ledger.Total(),
		Estacion:      m.cfg.Estacion,
		Operador:      m.operador.Nombre,
	}
	m.mu.Unlock()

	// The commit runs outside the lock so the screen can still render state
	// while the call is in flight; cerrando keeps mutating commands out.
	err := m.committer.GuardarLote(ctx, payload)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cerrando = false
	if err != nil {
		m.estado = EstadoActiva
		return &ErrorCommit{Causa: err}
	}
	m.estado = EstadoCerrada
	m.rearmar()
	return nil
}

// Reiniciar discards the current session and re-arms the station.
func (m *Motor) Reiniciar() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cerrando {
		return ErrCierreEnCurso
	}
	m.rearmar()
	return nil
}
