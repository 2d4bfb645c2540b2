package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/albertoterrazas-oss/AztecaSoft/internal/apierror"
	"github.com/albertoterrazas-oss/AztecaSoft/internal/repository"
)

// CatalogoHandler serves the supplier and product reference lists the
// stations load at activation. Responses keep the {"data": [...]} envelope
// the station clients already consume.
type CatalogoHandler struct{ repo repository.CatalogoRepository }

func NewCatalogoHandler(repo repository.CatalogoRepository) *CatalogoHandler {
	return &CatalogoHandler{repo: repo}
}

// ListarProveedores godoc
// @Summary      Listar proveedores
// @Description  Retorna el catálogo completo de proveedores.
// @Tags         catalogo
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} apierror.APIError
// @Router       /api/provedores [get]
func (h *CatalogoHandler) ListarProveedores(c *gin.Context) {
	proveedores, err := h.repo.Proveedores(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar proveedores"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": proveedores})
}

// ListarProductos godoc
// @Summary      Listar productos
// @Description  Retorna el catálogo completo de productos, subproductos incluidos.
// @Tags         catalogo
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} apierror.APIError
// @Router       /api/productos [get]
func (h *CatalogoHandler) ListarProductos(c *gin.Context) {
	productos, err := h.repo.Productos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar productos"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": productos})
}
