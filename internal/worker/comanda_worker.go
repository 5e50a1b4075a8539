package worker

// comanda_worker.go
// Processes order-slip jobs from QueueComanda: generates the printable PDF
// for a committed order and, when the customer left an email, mails it.
// SMTP goes through the circuit breaker with exponential backoff
// (max 3 attempts); exhausted jobs land in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/infra"
	"github.com/gustavochimanski/mensura-api-solo-sub002/internal/repository"
)

// ComandaJobPayload is the job envelope sent to QueueComanda.
type ComandaJobPayload struct {
	PedidoID     string  `json:"pedido_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

type ComandaWorker struct {
	pedidoRepo     repository.PedidoRepository
	mailer         *infra.Mailer
	cb             *infra.CircuitBreaker
	rdb            *redis.Client
	pdfStoragePath string
}

func NewComandaWorker(
	pedidoRepo repository.PedidoRepository,
	mailer *infra.Mailer,
	cb *infra.CircuitBreaker,
	rdb *redis.Client,
	pdfStoragePath string,
) *ComandaWorker {
	return &ComandaWorker{
		pedidoRepo:     pedidoRepo,
		mailer:         mailer,
		cb:             cb,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single comanda job:
//  1. Parse ComandaJobPayload from the job envelope
//  2. Fetch the Pedido (with itens) from DB
//  3. Generate the PDF slip
//  4. Mail it when a customer email is present, through the CB with backoff
func (w *ComandaWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ComandaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("comanda_worker: invalid payload")
		return
	}

	pedidoID, err := uuid.Parse(payload.PedidoID)
	if err != nil {
		log.Error().Str("pedido_id", payload.PedidoID).Msg("comanda_worker: invalid pedido_id")
		return
	}

	pedido, err := w.pedidoRepo.FindByID(ctx, pedidoID)
	if err != nil {
		log.Error().Err(err).Str("pedido_id", payload.PedidoID).Msg("comanda_worker: pedido not found")
		return
	}

	pdfPath, err := infra.GerarComandaPDF(pedido, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("pedido_id", payload.PedidoID).Msg("comanda_worker: PDF generation failed")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("pedido_id", payload.PedidoID).Msg("comanda_worker: PDF generated")

	if payload.ClienteEmail == nil || *payload.ClienteEmail == "" {
		return
	}

	subject := fmt.Sprintf("Sua comanda — Pedido #%d", pedido.Numero)
	body := fmt.Sprintf("Segue em anexo a comanda do seu pedido.\nTotal: R$%s", pedido.Total.StringFixed(2))

	const maxAttempts = 3
	sendErr := withRetry(ctx, maxAttempts, func(attempt int) error {
		return w.cb.Execute(func() error {
			return w.mailer.SendComanda(*payload.ClienteEmail, subject, body, pdfPath)
		})
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("to", *payload.ClienteEmail).Msg("comanda_worker: email failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueComanda, "comanda", raw,
			fmt.Sprintf("email failed after %d attempts: %v", maxAttempts, sendErr), maxAttempts)
		return
	}
	log.Info().Str("to", *payload.ClienteEmail).Msg("comanda_worker: comanda sent")
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
