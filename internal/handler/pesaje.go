package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/apierror"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/dto"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/engine"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/repository"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/service"
)

// PesajeHandler receives finalized lots from remote stations and serves the
// lot history.
type PesajeHandler struct{ svc service.LoteService }

func NewPesajeHandler(svc service.LoteService) *PesajeHandler { return &PesajeHandler{svc: svc} }

// GuardarLote godoc
// @Summary      Guardar lote de pesaje
// @Description  Persiste un lote finalizado con sus registros de pesaje. El folio debe ser único.
// @Tags         pesaje
// @Accept       json
// @Produce      json
// @Param        body body dto.GuardarLoteRequest true "Lote finalizado"
// @Success      201  {object} map[string]interface{}
// @Failure      409  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /api/pesaje/guardar-lote [post]
func (h *PesajeHandler) GuardarLote(c *gin.Context) {
	var req dto.GuardarLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	detalles := make([]engine.Registro, 0, len(req.Detalles))
	for _, d := range req.Detalles {
		detalles = append(detalles, engine.Registro{
			ID:         d.ID,
			IdProducto: d.IdProducto,
			Producto:   d.Producto,
			Unidad:     d.Unidad,
			PesoBruto:  d.PesoBruto,
			Tara:       d.Tara,
			PesoNeto:   d.Peso,
			Area:       d.Area,
			Hora:       d.Hora,
		})
	}
	payload := engine.PayloadLote{
		IdProveedor:   req.IdProveedor,
		RazonSocial:   req.RazonSocial,
		Folio:         req.Folio,
		Observaciones: req.Observaciones,
		Detalles:      detalles,
		TotalKG:       req.TotalKG,
		Estacion:      req.Estacion,
		Operador:      req.Operador,
	}

	if err := h.svc.GuardarLote(c.Request.Context(), payload); err != nil {
		switch {
		case errors.Is(err, repository.ErrFolioDuplicado):
			c.JSON(http.StatusConflict, apierror.New("Ya existe un lote con ese folio"))
		case errors.Is(err, engine.ErrLoteVacio):
			c.JSON(http.StatusBadRequest, apierror.New("El lote no tiene registros"))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "folio": req.Folio})
}

// ListarLotes godoc
// @Summary      Listar lotes
// @Description  Retorna el historial paginado de lotes guardados, más reciente primero.
// @Tags         pesaje
// @Produce      json
// @Param        page  query int false "Página (default 1)"
// @Param        limit query int false "Registros por página (default 20)"
// @Success      200   {object} dto.LoteListResponse
// @Router       /api/lotes [get]
func (h *PesajeHandler) ListarLotes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	resp, err := h.svc.Listar(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar lotes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerLote godoc
// @Summary      Obtener lote
// @Description  Retorna un lote con todos sus registros de pesaje.
// @Tags         pesaje
// @Produce      json
// @Param        id  path string true "UUID del lote"
// @Success      200 {object} dto.LoteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/lotes/{id} [get]
func (h *PesajeHandler) ObtenerLote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Lote no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
