package worker

// ticket_worker.go
// Processes lot ticket jobs from QueueTickets: generates the roll-format PDF
// for a persisted lot and enqueues the report email. Retries with exponential
// backoff (max 3 attempts); exhausted jobs go to the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/infra"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/repository"
)

// TicketJobPayload is the job envelope sent to QueueTickets.
type TicketJobPayload struct {
	LoteID string `json:"lote_id"`
}

// TicketWorker turns committed lots into printable PDF tickets.
type TicketWorker struct {
	loteRepo       repository.LoteRepository
	dispatcher     *Dispatcher
	rdb            *redis.Client
	pdfStoragePath string
	reportesEmail  string
}

func NewTicketWorker(
	loteRepo repository.LoteRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	pdfStoragePath string,
	reportesEmail string,
) *TicketWorker {
	return &TicketWorker{
		loteRepo:       loteRepo,
		dispatcher:     dispatcher,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
		reportesEmail:  reportesEmail,
	}
}

// Process handles a single ticket job:
//  1. Parse TicketJobPayload from the job envelope
//  2. Fetch the Lote (with detalles) from the DB
//  3. Generate the PDF ticket with retry
//  4. Enqueue the report email if REPORTES_EMAIL is configured
func (w *TicketWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload TicketJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("ticket_worker: invalid payload")
		return
	}

	loteID, err := uuid.Parse(payload.LoteID)
	if err != nil {
		log.Error().Str("lote_id", payload.LoteID).Msg("ticket_worker: invalid lote_id")
		return
	}

	lote, err := w.loteRepo.FindByID(ctx, loteID)
	if err != nil {
		log.Error().Err(err).Str("lote_id", payload.LoteID).Msg("ticket_worker: lote not found")
		return
	}

	var pdfPath string
	genErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GenerateLotePDF(lote, w.pdfStoragePath)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("folio", lote.Folio).
				Msg("ticket_worker: PDF attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})
	if genErr != nil {
		log.Error().Err(genErr).Str("folio", lote.Folio).Msg("ticket_worker: PDF failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueTickets, "ticket", raw, genErr.Error(), 3)
		return
	}
	log.Info().Str("pdf", pdfPath).Str("folio", lote.Folio).Msg("ticket_worker: PDF generated")

	if w.reportesEmail == "" {
		return
	}
	emailJob := EmailJobPayload{
		ToEmail: w.reportesEmail,
		Subject: fmt.Sprintf("Ticket de lote %s — %s", lote.Folio, lote.Estacion),
		Body: fmt.Sprintf("Adjunto el ticket del lote %s.\nProveedor: %s\nTotal: %s kg",
			lote.Folio, lote.RazonSocial, lote.TotalKG.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EncolarEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("folio", lote.Folio).Msg("ticket_worker: failed to enqueue email")
	} else {
		log.Info().Str("to", w.reportesEmail).Str("folio", lote.Folio).Msg("ticket_worker: email job enqueued")
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
