package http

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/bulkimport"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// BulkUploadHandler maneja la carga masiva de productos y la consulta de sus
// registros (protegido).
type BulkUploadHandler struct {
	importUC *bulkimport.UseCase
	statusUC *bulkimport.StatusUseCase
	maxBytes int64
}

// NewBulkUploadHandler construye el handler. maxBytes limita el tamaño del
// archivo subido.
func NewBulkUploadHandler(importUC *bulkimport.UseCase, statusUC *bulkimport.StatusUseCase, maxBytes int64) *BulkUploadHandler {
	return &BulkUploadHandler{importUC: importUC, statusUC: statusUC, maxBytes: maxBytes}
}

// Upload godoc
// @Summary      Carga masiva de productos desde CSV o XLSX
// @Description  Procesa el archivo fila por fila. Los errores por fila no
// @Description  fallan la petición: el estado y los contadores van en la
// @Description  respuesta (completed, partial o failed).
// @Tags         bulk-uploads
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file              formData  file    true   "Archivo .csv o .xlsx"
// @Param        duplicate_action  formData  string  false  "skip (defecto) o update"
// @Success      200  {object}  dto.BulkUploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Router       /api/bulk-uploads [post]
func (h *BulkUploadHandler) Upload(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo file requerido (multipart/form-data)"})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE_TYPE", Message: "solo se aceptan archivos .csv o .xlsx"})
	}
	if fileHeader.Size > h.maxBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("el archivo supera el máximo de %d bytes", h.maxBytes),
		})
	}

	action := strings.ToLower(strings.TrimSpace(c.FormValue("duplicate_action", entity.DuplicateActionSkip)))
	if action != entity.DuplicateActionSkip && action != entity.DuplicateActionUpdate {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "duplicate_action debe ser skip o update"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
	}
	defer src.Close()

	out, err := h.importUC.Process(fileHeader.Filename, src, GetUserID(c), companyID, action)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	// Siempre 200: un archivo lleno de filas inválidas es un resultado, no un
	// error de la petición.
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Consultar un registro de carga
// @Tags         bulk-uploads
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la carga"
// @Success      200  {object}  dto.BulkUploadResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bulk-uploads/{id} [get]
func (h *BulkUploadHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.statusUC.GetByID(id, companyScope(c))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "carga no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cargas de la empresa
// @Tags         bulk-uploads
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.BulkUploadListResponse
// @Router       /api/bulk-uploads [get]
func (h *BulkUploadHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.statusUC.ListByCompany(companyID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
