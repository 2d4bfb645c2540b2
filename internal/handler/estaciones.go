package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/apierror"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/catalog"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/dto"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/engine"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/service"
)

// EstacionesHandler exposes the weighing station state machines over HTTP.
// Every mutating endpoint returns the refreshed station snapshot so the
// screen can re-render from a single response.
type EstacionesHandler struct{ svc service.EstacionService }

func NewEstacionesHandler(svc service.EstacionService) *EstacionesHandler {
	return &EstacionesHandler{svc: svc}
}

// responder maps engine errors onto HTTP statuses. Validation problems carry
// the per-field map so the screen can highlight the offending inputs.
func responder(c *gin.Context, err error) {
	var valErr *engine.ErrorValidacion
	var commitErr *engine.ErrorCommit

	switch {
	case errors.Is(err, service.ErrEstacionDesconocida):
		c.JSON(http.StatusNotFound, apierror.New("Estación desconocida"))
	case errors.As(err, &valErr):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(valErr.Campos))
	case errors.Is(err, catalog.ErrNoDisponible):
		c.JSON(http.StatusServiceUnavailable, apierror.New(err.Error()))
	case errors.Is(err, engine.ErrCierreEnCurso):
		c.JSON(http.StatusConflict, apierror.New("Hay un cierre de lote en curso"))
	case errors.As(err, &commitErr):
		c.JSON(http.StatusBadGateway, apierror.New("No se pudo guardar el lote: "+commitErr.Causa.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

// Activar godoc
// @Summary      Activar estación
// @Description  Carga (o recarga) el catálogo de la estación. Se invoca al montar la pantalla y al reintentar tras un fallo.
// @Tags         estaciones
// @Produce      json
// @Param        estacion path string true "recepcion | limpieza | salidas"
// @Success      200 {object} map[string]interface{}
// @Failure      503 {object} apierror.APIError
// @Router       /api/estaciones/{estacion}/activar [post]
func (h *EstacionesHandler) Activar(c *gin.Context) {
	estacion := c.Param("estacion")
	if err := h.svc.Activar(c.Request.Context(), estacion); err != nil {
		if errors.Is(err, service.ErrEstacionDesconocida) {
			c.JSON(http.StatusNotFound, apierror.New("Estación desconocida"))
			return
		}
		c.JSON(http.StatusServiceUnavailable, apierror.New("No se pudo cargar el catálogo: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Referencias returns the cached supplier/product/area lists for the station.
func (h *EstacionesHandler) Referencias(c *gin.Context) {
	resp, err := h.svc.Referencias(c.Param("estacion"))
	if err != nil {
		responder(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Estado returns the current station snapshot.
func (h *EstacionesHandler) Estado(c *gin.Context) {
	snap, err := h.svc.Estado(c.Param("estacion"))
	if err != nil {
		responder(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Iniciar godoc
// @Summary      Iniciar sesión de pesaje
// @Description  Fija proveedor y folio, y pasa la estación a estado activo.
// @Tags         estaciones
// @Accept       json
// @Produce      json
// @Param        estacion path string             true "recepcion | limpieza | salidas"
// @Param        body     body dto.IniciarRequest true "Encabezado de la sesión"
// @Success      200 {object} engine.Instantanea
// @Failure      422 {object} apierror.ValidationError
// @Router       /api/estaciones/{estacion}/iniciar [post]
func (h *EstacionesHandler) Iniciar(c *gin.Context) {
	var req dto.IniciarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return
	}
	snap, err := h.svc.Iniciar(c.Param("estacion"), req)
	if err != nil {
		responder(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ConfirmarCarga confirms the base products present in the shipment
// (reception only).
func (h *EstacionesHandler) ConfirmarCarga(c *gin.Context) {
	var req dto.CargaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	snap, err := h.svc.ConfirmarCarga(c.Param("estacion"), req.Productos)
	if err != nil {
		responder(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SeleccionarProducto makes a product the active weighing target.
func (h *EstacionesHandler) SeleccionarProducto(c *gin.Context) {
	var req dto.SeleccionarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	snap, err := h.svc.SeleccionarProducto(c.Param("estacion"), req.IdProducto)
	if err != nil {
		responder(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SeleccionarArea changes the destination area (dispatch only).
func (h *EstacionesHandler) SeleccionarArea(c *gin.Context) {
	var req dto.SeleccionarAreaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	snap, err := h.svc.SeleccionarArea(c.Param("estacion"), req.IdArea)
	if err != nil {
		responder(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// CapturarTara reads the scale into the tare field.
func (h *EstacionesHandler) CapturarTara(c *gin.Context) {
	peso, err := h.svc.CapturarTara(c.Request.Context(), c.Param("estacion"))
	if err != nil {
		responder(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tara": peso})
}

// CapturarBruto reads the scale into the gross field.
func (h *EstacionesHandler) CapturarBruto(c *gin.Context) {
	peso, err := h.svc.CapturarBruto(c.Request.Context(), c.Param("estacion"))
	if err != nil {
		responder(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bruto": peso})
}

// Registrar godoc
// @Summary      Registrar pesaje
// @Description  Convierte la lectura actual en un registro del lote y limpia la báscula para el siguiente.
// @Tags         estaciones
// @Produce      json
// @Param        estacion path string true "recepcion | limpieza | salidas"
// @Success      201 {object} engine.Registro
// @Failure      400 {object} apierror.APIError
// @Router       /api/estaciones/{estacion}/registrar [post]
func (h *EstacionesHandler) Registrar(c *gin.Context) {
	registro, err := h.svc.Registrar(c.Param("estacion"))
	if err != nil {
		responder(c, err)
		return
	}
	c.JSON(http.StatusCreated, registro)
}

// QuitarRegistro removes one record from the in-progress lot.
func (h *EstacionesHandler) QuitarRegistro(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	snap, err := h.svc.QuitarRegistro(c.Param("estacion"), id)
	if err != nil {
		responder(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Finalizar godoc
// @Summary      Finalizar lote
// @Description  Cierra el lote en curso y lo envía al almacén. Si el guardado falla la sesión queda intacta para reintentar.
// @Tags         estaciones
// @Accept       json
// @Produce      json
// @Param        estacion path string               true "recepcion | limpieza | salidas"
// @Param        body     body dto.FinalizarRequest true "Observaciones del lote"
// @Success      200 {object} map[string]interface{}
// @Failure      409 {object} apierror.APIError
// @Failure      502 {object} apierror.APIError
// @Router       /api/estaciones/{estacion}/finalizar [post]
func (h *EstacionesHandler) Finalizar(c *gin.Context) {
	var req dto.FinalizarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return
	}
	if err := h.svc.Finalizar(c.Request.Context(), c.Param("estacion"), req.Observaciones); err != nil {
		responder(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Reiniciar discards the in-progress session and returns to setup.
func (h *EstacionesHandler) Reiniciar(c *gin.Context) {
	snap, err := h.svc.Reiniciar(c.Param("estacion"))
	if err != nil {
		responder(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
