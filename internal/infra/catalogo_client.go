package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/catalog"
)

// CatalogoClient reads the provider and product lists from the remote
// catalog API. It implements catalog.Fuente. Responses may arrive as
// {"data": [...]} or as a bare array; both are accepted.
type CatalogoClient struct {
	baseURL    string
	httpClient *http.Client
	cb         *CircuitBreaker
}

func NewCatalogoClient(baseURL string, cb *CircuitBreaker) *CatalogoClient {
	return &CatalogoClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cb:         cb,
	}
}

// bandera accepts the loose truthiness of the upstream EsSubproducto field:
// 0/1, "0"/"1" or a plain bool.
type bandera bool

func (b *bandera) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "0", `"0"`, "false", "null":
		*b = false
	case "1", `"1"`, "true":
		*b = true
	default:
		n, err := strconv.Atoi(string(data))
		if err != nil {
			return fmt.Errorf("valor de bandera no reconocido: %s", data)
		}
		*b = n != 0
	}
	return nil
}

type proveedorWire struct {
	IdProveedor int    `json:"IdProveedor"`
	RazonSocial string `json:"RazonSocial"`
}

type productoWire struct {
	IdProducto    int     `json:"IdProducto"`
	Nombre        string  `json:"Nombre"`
	UnidadMedida  string  `json:"UnidadMedida"`
	EsSubproducto bandera `json:"EsSubproducto"`
}

// Proveedores fetches GET {base}/api/provedores.
func (c *CatalogoClient) Proveedores(ctx context.Context) ([]catalog.Proveedor, error) {
	var wire []proveedorWire
	if err := c.get(ctx, "/api/provedores", &wire); err != nil {
		return nil, err
	}
	out := make([]catalog.Proveedor, 0, len(wire))
	for _, w := range wire {
		out = append(out, catalog.Proveedor{ID: w.IdProveedor, RazonSocial: w.RazonSocial})
	}
	return out, nil
}

// Productos fetches GET {base}/api/productos.
func (c *CatalogoClient) Productos(ctx context.Context) ([]catalog.Producto, error) {
	var wire []productoWire
	if err := c.get(ctx, "/api/productos", &wire); err != nil {
		return nil, err
	}
	out := make([]catalog.Producto, 0, len(wire))
	for _, w := range wire {
		out = append(out, catalog.Producto{
			ID:            w.IdProducto,
			Nombre:        w.Nombre,
			Unidad:        w.UnidadMedida,
			EsSubproducto: bool(w.EsSubproducto),
		})
	}
	return out, nil
}

// get runs the request through the circuit breaker and decodes either
// response shape into dest (a pointer to a slice).
func (c *CatalogoClient) get(ctx context.Context, path string, dest interface{}) error {
	return c.cb.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return fmt.Errorf("catalogo: crear request: %w", err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("catalogo: servidor inaccesible: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("catalogo: el servidor respondió %d", resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("catalogo: leer respuesta: %w", err)
		}
		return decodeLista(body, dest)
	})
}

// decodeLista accepts {"data": [...]} or a bare JSON array.
func decodeLista(body []byte, dest interface{}) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return json.Unmarshal(envelope.Data, dest)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("catalogo: respuesta no reconocida: %w", err)
	}
	return nil
}
