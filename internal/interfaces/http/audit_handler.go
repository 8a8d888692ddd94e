package http

import (
	"github.com/gofiber/fiber/v2"
	appaudit "github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
)

// AuditHandler expone el log de auditoría de productos (protegido, solo lectura).
type AuditHandler struct {
	uc *appaudit.QueryUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *appaudit.QueryUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Listar entradas de auditoría
// @Description  Entradas más recientes primero. Los managers ven solo su
// @Description  empresa; admin ve todos los tenants.
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por ID de producto"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.AuditListResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)

	var productRef *string
	if v := c.Query("product_id"); v != "" {
		productRef = &v
	}

	out, err := h.uc.List(companyScope(c), productRef, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
