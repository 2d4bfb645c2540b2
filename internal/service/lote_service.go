package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/dto"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/engine"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/model"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/repository"
)

// Notificador enqueues the async ticket job for a persisted lot.
type Notificador interface {
	EncolarTicket(ctx context.Context, loteID string) error
}

type LoteService interface {
	// GuardarLote persists a finalized lot. It satisfies engine.Committer so
	// co-located stations commit straight into the local store.
	GuardarLote(ctx context.Context, payload engine.PayloadLote) error
	Listar(ctx context.Context, page, limit int) (*dto.LoteListResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.LoteResponse, error)
}

type loteService struct {
	repo        repository.LoteRepository
	notificador Notificador
}

func NewLoteService(repo repository.LoteRepository, notificador Notificador) LoteService {
	return &loteService{repo: repo, notificador: notificador}
}

// GuardarLote validates the submission, recomputes the total from the
// detail rows and persists everything in one transaction. The ticket job is
// enqueued best-effort: a queue failure never rolls a committed lot back.
func (s *loteService) GuardarLote(ctx context.Context, payload engine.PayloadLote) error {
	if payload.Folio == "" {
		return errors.New("folio requerido")
	}
	if len(payload.Detalles) == 0 {
		return engine.ErrLoteVacio
	}

	total := decimal.Zero
	detalles := make([]model.DetalleLote, 0, len(payload.Detalles))
	for _, d := range payload.Detalles {
		total = total.Add(d.PesoNeto)
		detalles = append(detalles, model.DetalleLote{
			RegistroID: d.ID,
			IdProducto: d.IdProducto,
			Producto:   d.Producto,
			Unidad:     d.Unidad,
			PesoBruto:  d.PesoBruto,
			Tara:       d.Tara,
			PesoNeto:   d.PesoNeto,
			Area:       d.Area,
			Hora:       d.Hora,
		})
	}
	total = total.Round(2)
	if !payload.TotalKG.IsZero() && !payload.TotalKG.Equal(total) {
		log.Warn().
			Str("folio", payload.Folio).
			Str("declarado", payload.TotalKG.String()).
			Str("calculado", total.String()).
			Msg("total_kg declarado no coincide — se guarda el calculado")
	}

	var obs *string
	if payload.Observaciones != "" {
		o := payload.Observaciones
		obs = &o
	}
	estacion := payload.Estacion
	if estacion == "" {
		estacion = "salidas"
	}

	lote := &model.Lote{
		ID:            uuid.New(),
		IdProveedor:   payload.IdProveedor,
		RazonSocial:   payload.RazonSocial,
		Folio:         payload.Folio,
		Estacion:      estacion,
		Observaciones: obs,
		TotalKG:       total,
		Detalles:      detalles,
	}
	if err := s.repo.Create(ctx, lote); err != nil {
		return err
	}

	log.Info().
		Str("folio", lote.Folio).
		Str("estacion", lote.Estacion).
		Int("registros", len(detalles)).
		Str("total_kg", total.String()).
		Msg("lote guardado")

	if s.notificador != nil {
		if err := s.notificador.EncolarTicket(ctx, lote.ID.String()); err != nil {
			log.Error().Err(err).Str("folio", lote.Folio).Msg("no se pudo encolar el ticket del lote")
		}
	}
	return nil
}

func (s *loteService) Listar(ctx context.Context, page, limit int) (*dto.LoteListResponse, error) {
	lotes, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.LoteListResponse{
		Data:  make([]dto.LoteResponse, 0, len(lotes)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for i := range lotes {
		resp.Data = append(resp.Data, loteToResponse(&lotes[i]))
	}
	return resp, nil
}

func (s *loteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.LoteResponse, error) {
	lote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("lote no encontrado")
	}
	resp := loteToResponse(lote)
	return &resp, nil
}

func loteToResponse(lote *model.Lote) dto.LoteResponse {
	resp := dto.LoteResponse{
		ID:            lote.ID.String(),
		IdProveedor:   lote.IdProveedor,
		RazonSocial:   lote.RazonSocial,
		Folio:         lote.Folio,
		Estacion:      lote.Estacion,
		Observaciones: lote.Observaciones,
		TotalKG:       lote.TotalKG,
		CreatedAt:     lote.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Detalles:      make([]dto.DetalleLoteResponse, 0, len(lote.Detalles)),
	}
	for _, d := range lote.Detalles {
		resp.Detalles = append(resp.Detalles, dto.DetalleLoteResponse{
			IdProducto: d.IdProducto,
			Producto:   d.Producto,
			Unidad:     d.Unidad,
			PesoBruto:  d.PesoBruto,
			Tara:       d.Tara,
			PesoNeto:   d.PesoNeto,
			Area:       d.Area,
			Hora:       d.Hora,
		})
	}
	return resp
}
