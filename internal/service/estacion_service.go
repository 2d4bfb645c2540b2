package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/catalog"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/dto"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/engine"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/metrics"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/scale"
)

// ErrEstacionDesconocida marks a request against a station that was not
// configured at startup.
var ErrEstacionDesconocida = errors.New("estación desconocida")

// Station names. Each maps to one engine instance with its own config,
// mirroring the three operational screens of the console.
const (
	EstacionRecepcion = "recepcion"
	EstacionLimpieza  = "limpieza"
	EstacionSalidas   = "salidas"
)

type EstacionService interface {
	// Activar (re)loads the station's catalog cache. Runs at screen mount
	// and on operator retry after a failed load.
	Activar(ctx context.Context, estacion string) error
	Referencias(estacion string) (*dto.ReferenciasResponse, error)
	Estado(estacion string) (engine.Instantanea, error)

	Iniciar(estacion string, req dto.IniciarRequest) (engine.Instantanea, error)
	ConfirmarCarga(estacion string, idsProducto []int) (engine.Instantanea, error)
	SeleccionarProducto(estacion string, idProducto int) (engine.Instantanea, error)
	SeleccionarArea(estacion string, idArea int) (engine.Instantanea, error)
	CapturarTara(ctx context.Context, estacion string) (decimal.Decimal, error)
	CapturarBruto(ctx context.Context, estacion string) (decimal.Decimal, error)
	Registrar(estacion string) (engine.Registro, error)
	QuitarRegistro(estacion string, id int64) (engine.Instantanea, error)
	Finalizar(ctx context.Context, estacion string, observaciones string) error
	Reiniciar(estacion string) (engine.Instantanea, error)
}

type puesto struct {
	motor *engine.Motor
	cache *catalog.Cache
}

type estacionService struct {
	puestos map[string]*puesto
}

// NewEstacionService builds the three station engines over a shared catalog
// source, scale and committer.
func NewEstacionService(fuente catalog.Fuente, bascula scale.Bascula, committer engine.Committer, operador engine.Operador) EstacionService {
	construir := func(cfg engine.Config, soloBase bool) *puesto {
		cache := catalog.NewCache(fuente, soloBase)
		return &puesto{
			motor: engine.NewMotor(cfg, operador, cache, bascula, committer),
			cache: cache,
		}
	}

	return &estacionService{puestos: map[string]*puesto{
		EstacionRecepcion: construir(engine.Config{
			Estacion:    EstacionRecepcion,
			ConRevision: true,
		}, true),
		EstacionLimpieza: construir(engine.Config{
			Estacion: EstacionLimpieza,
		}, false),
		EstacionSalidas: construir(engine.Config{
			Estacion:        EstacionSalidas,
			ConAreas:        true,
			TaraPorItem:     true,
			FolioAutomatico: true,
		}, true),
	}}
}

func (s *estacionService) puesto(nombre string) (*puesto, error) {
	p, ok := s.puestos[nombre]
	if !ok {
		return nil, ErrEstacionDesconocida
	}
	return p, nil
}

func (s *estacionService) Activar(ctx context.Context, estacion string) error {
	p, err := s.puesto(estacion)
	if err != nil {
		return err
	}
	return p.cache.Cargar(ctx)
}

func (s *estacionService) Referencias(estacion string) (*dto.ReferenciasResponse, error) {
	p, err := s.puesto(estacion)
	if err != nil {
		return nil, err
	}
	if !p.cache.Listo() {
		return nil, catalog.ErrNoDisponible
	}
	return &dto.ReferenciasResponse{
		Proveedores: p.cache.Proveedores(),
		Productos:   p.cache.Productos(),
		Areas:       p.cache.Areas(),
	}, nil
}

func (s *estacionService) Estado(estacion string) (engine.Instantanea, error) {
	p, err := s.puesto(estacion)
	if err != nil {
		return engine.Instantanea{}, err
	}
	return p.motor.Instantanea(), nil
}

func (s *estacionService) Iniciar(estacion string, req dto.IniciarRequest) (engine.Instantanea, error) {
	p, err := s.puesto(estacion)
	if err != nil {
		return engine.Instantanea{}, err
	}
	if err := p.motor.Iniciar(req.IdProveedor, req.Folio); err != nil {
		return engine.Instantanea{}, err
	}
	return p.motor.Instantanea(), nil
}

func (s *estacionService) ConfirmarCarga(estacion string, idsProducto []int) (engine.Instantanea, error) {
	p, err := s.puesto(estacion)
	if err != nil {
		return engine.Instantanea{}, err
	}
	if err := p.motor.ConfirmarCarga(idsProducto); err != nil {
		return engine.Instantanea{}, err
	}
	return p.motor.Instantanea(), nil
}

func (s *estacionService) SeleccionarProducto(estacion string, idProducto int) (engine.Instantanea, error) {
	p, err := s.puesto(estacion)
	if err != nil {
		return engine.Instantanea{}, err
	}
	if err := p.motor.SeleccionarProducto(idProducto); err != nil {
		return engine.Instantanea{}, err
	}
	return p.motor.Instantanea(), nil
}

func (s *estacionService) SeleccionarArea(estacion string, idArea int) (engine.Instantanea, error) {
	p, err := s.puesto(estacion)
	if err != nil {
		return engine.Instantanea{}, err
	}
	if err := p.motor.SeleccionarArea(idArea); err != nil {
		return engine.Instantanea{}, err
	}
	return p.motor.Instantanea(), nil
}

func (s *estacionService) CapturarTara(ctx context.Context, estacion string) (decimal.Decimal, error) {
	p, err := s.puesto(estacion)
	if err != nil {
		return decimal.Zero, err
	}
	return p.motor.CapturarTara(ctx)
}

func (s *estacionService) CapturarBruto(ctx context.Context, estacion string) (decimal.Decimal, error) {
	p, err := s.puesto(estacion)
	if err != nil {
		return decimal.Zero, err
	}
	return p.motor.CapturarBruto(ctx)
}

func (s *estacionService) Registrar(estacion string) (engine.Registro, error) {
	p, err := s.puesto(estacion)
	if err != nil {
		return engine.Registro{}, err
	}
	registro, err := p.motor.Registrar()
	if err != nil {
		return engine.Registro{}, err
	}
	metrics.RegistrosTotal.WithLabelValues(estacion).Inc()
	metrics.PesoNetoKilos.Observe(registro.PesoNeto.InexactFloat64())
	return registro, nil
}

func (s *estacionService) QuitarRegistro(estacion string, id int64) (engine.Instantanea, error) {
	p, err := s.puesto(estacion)
	if err != nil {
		return engine.Instantanea{}, err
	}
	if err := p.motor.QuitarRegistro(id); err != nil {
		return engine.Instantanea{}, err
	}
	return p.motor.Instantanea(), nil
}

func (s *estacionService) Finalizar(ctx context.Context, estacion string, observaciones string) error {
	p, err := s.puesto(estacion)
	if err != nil {
		return err
	}
	if err := p.motor.Finalizar(ctx, observaciones); err != nil {
		var commitErr *engine.ErrorCommit
		if errors.As(err, &commitErr) {
			metrics.LotesFinalizadosTotal.WithLabelValues(estacion, "fallo").Inc()
		}
		return err
	}
	metrics.LotesFinalizadosTotal.WithLabelValues(estacion, "exito").Inc()
	return nil
}

func (s *estacionService) Reiniciar(estacion string) (engine.Instantanea, error) {
	p, err := s.puesto(estacion)
	if err != nil {
		return engine.Instantanea{}, err
	}
	if err := p.motor.Reiniciar(); err != nil {
		return engine.Instantanea{}, err
	}
	return p.motor.Instantanea(), nil
}
