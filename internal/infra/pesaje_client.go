package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/engine"
)

// PesajeClient submits finalized lots to a central lot store over HTTP.
// It implements engine.Committer for stations deployed apart from the
// server that owns the lotes tables. Any 2xx response is success; every
// other status and any transport failure is a uniform commit failure.
type PesajeClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewPesajeClient(baseURL string) *PesajeClient {
	return &PesajeClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GuardarLote POSTs the submission to {base}/api/pesaje/guardar-lote.
func (c *PesajeClient) GuardarLote(ctx context.Context, payload engine.PayloadLote) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("pesaje: serializar lote: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/pesaje/guardar-lote", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("pesaje: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pesaje: servidor inaccesible: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("pesaje: el servidor respondió %d", resp.StatusCode)
	}
	return nil
}
