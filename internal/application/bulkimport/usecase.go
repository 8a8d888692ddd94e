package bulkimport

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	appaudit "github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/ingest"
	"github.com/tu-usuario/almacen-api/internal/domain/product"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
	"github.com/tu-usuario/almacen-api/pkg/logger"
)

// Resultado de una fila, como variante etiquetada. Los contadores agregados se
// derivan contando variantes, no con control de flujo por excepciones.
type rowOutcome int

const (
	rowCreated rowOutcome = iota
	rowUpdated
	rowSkipped
	rowFailed
)

type rowResult struct {
	outcome rowOutcome
	err     error // solo para rowFailed
}

// UseCase orquesta la ingesta completa de un archivo: parseo, mapeo de
// encabezados, validación por fila, resolución de duplicados según la política
// elegida, acumulación de resultados y finalización del registro de carga.
//
// Semántica transaccional deliberada: cada fila se confirma por separado
// (TxRunner.RunRow). Un fallo a mitad del archivo deja las filas ya
// confirmadas aplicadas; se prefiere progreso parcial visible sobre
// atomicidad todo-o-nada del archivo completo.
type UseCase struct {
	uploads  repository.BulkUploadRepository
	products repository.ProductRepository
	tx       TxRunner
	reader   TabularReader
	recorder *appaudit.Recorder
	log      *logger.Logger
}

// NewUseCase construye el motor de carga masiva.
func NewUseCase(uploads repository.BulkUploadRepository, products repository.ProductRepository, tx TxRunner, reader TabularReader, recorder *appaudit.Recorder, log *logger.Logger) *UseCase {
	return &UseCase{uploads: uploads, products: products, tx: tx, reader: reader, recorder: recorder, log: log}
}

// Process ingesta un archivo para el tenant companyID en nombre de managerID.
// duplicateAction debe ser skip o update (validado en el handler). Siempre
// devuelve el registro de carga; los problemas por fila nunca son un error de
// esta función — el llamador inspecciona status y contadores.
func (uc *UseCase) Process(filename string, file io.Reader, managerID, companyID, duplicateAction string) (*dto.BulkUploadResponse, error) {
	now := time.Now()
	upload := &entity.BulkUpload{
		ID:              uuid.New().String(),
		Filename:        filename,
		Status:          entity.UploadStatusProcessing,
		DuplicateAction: duplicateAction,
		UploadedBy:      managerID,
		CompanyID:       companyID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	// El registro se persiste antes de procesar filas para que el estado sea
	// consultable incluso a mitad de ejecución.
	if err := uc.uploads.Create(upload); err != nil {
		return nil, fmt.Errorf("crear registro de carga: %w", err)
	}

	headers, rows, err := uc.reader.Read(filename, file)
	if err != nil {
		return uc.abort(upload, fmt.Sprintf("archivo no parseable: %v", err))
	}

	mapped := ingest.MapHeaders(headers)
	if missing := ingest.MissingRequiredColumns(mapped); len(missing) > 0 {
		return uc.abort(upload, fmt.Sprintf("columnas requeridas faltantes: %s", strings.Join(missing, ", ")))
	}

	results := make([]rowResult, 0, len(rows))
	for i, cells := range rows {
		// Posición 1-based más la fila de encabezados.
		line := i + 2
		results = append(results, uc.processRow(upload, mapped, cells, line, managerID, companyID, duplicateAction))
	}

	uc.finalize(upload, results)
	if err := uc.uploads.Update(upload); err != nil {
		return nil, fmt.Errorf("finalizar registro de carga: %w", err)
	}
	uc.log.Info().
		Str("upload_id", upload.ID).
		Str("company_id", companyID).
		Str("status", upload.Status).
		Int("total", upload.TotalRecords).
		Int("failed", upload.FailedRecords).
		Msg("carga masiva finalizada")
	return ToBulkUploadResponse(upload), nil
}

// processRow aplica el pipeline de una fila y devuelve su variante de
// resultado. Ningún error de fila escapa: se captura y la carga continúa.
func (uc *UseCase) processRow(upload *entity.BulkUpload, headers []string, cells []any, line int, managerID, companyID, duplicateAction string) rowResult {
	raw := make(map[string]any, len(headers))
	for i, h := range headers {
		if i < len(cells) {
			raw[h] = cells[i]
		}
	}

	row, err := ingest.ValidateRow(raw, line)
	if err != nil {
		return rowResult{outcome: rowFailed, err: err}
	}

	key := product.Key(row.ProductName, row.ProductType, companyID)

	existing, err := uc.products.GetByKey(key)
	if err != nil {
		return rowResult{outcome: rowFailed, err: &ingest.RowError{Line: line, Err: err}}
	}

	if existing != nil {
		if duplicateAction == entity.DuplicateActionSkip {
			return rowResult{outcome: rowSkipped}
		}
		return uc.updateExisting(upload, existing, row, line, managerID)
	}

	p := buildProduct(row, key, companyID)
	if err := uc.tx.RunRow(func(products repository.ProductRepository) error {
		return products.Create(p)
	}); err != nil {
		// Incluye la carrera de dos inserts simultáneos por la misma clave: el
		// constraint único del store rechaza al perdedor y aquí se registra
		// como fallo de fila, nunca como aborto del batch.
		return rowResult{outcome: rowFailed, err: &ingest.RowError{Line: line, Err: err}}
	}
	if err := uc.recorder.RecordCreate(p, managerID, companyID, &upload.ID); err != nil {
		uc.log.Warn().Err(err).Str("upload_id", upload.ID).Int("line", line).Msg("auditoría de creación masiva falló")
	}
	return rowResult{outcome: rowCreated}
}

// updateExisting sobreescribe todos los campos mutables del registro existente
// excepto el tenant; la clave de negocio no cambia (la fila normaliza a la
// misma clave por definición).
func (uc *UseCase) updateExisting(upload *entity.BulkUpload, existing *entity.Product, row *ingest.ProductRow, line int, managerID string) rowResult {
	oldFields := existing.AuditFields()

	existing.ProductName = row.ProductName
	existing.ProductType = row.ProductType
	existing.Location = row.Location
	existing.SerialNumber = row.SerialNumber
	existing.BatchNumber = row.BatchNumber
	existing.LotNumber = row.LotNumber
	existing.Expiry = row.Expiry
	existing.Condition = row.Condition
	existing.Quantity = row.Quantity
	existing.Price = row.Price
	existing.PaymentStatus = row.PaymentStatus
	existing.Receiver = row.Receiver
	existing.ReceiverContact = row.ReceiverContact
	existing.Remark = row.Remark
	existing.UpdatedAt = time.Now()

	if err := uc.tx.RunRow(func(products repository.ProductRepository) error {
		return products.Update(existing)
	}); err != nil {
		return rowResult{outcome: rowFailed, err: &ingest.RowError{Line: line, Err: err}}
	}
	if _, err := uc.recorder.RecordUpdate(existing, oldFields, managerID, existing.CompanyID, &upload.ID); err != nil {
		uc.log.Warn().Err(err).Str("upload_id", upload.ID).Int("line", line).Msg("auditoría de actualización masiva falló")
	}
	return rowResult{outcome: rowUpdated}
}

// finalize deriva contadores y estado terminal contando variantes.
func (uc *UseCase) finalize(upload *entity.BulkUpload, results []rowResult) {
	var errs []string
	for _, r := range results {
		switch r.outcome {
		case rowCreated:
			upload.SuccessfulRecords++
		case rowUpdated:
			upload.UpdatedRecords++
		case rowSkipped:
			upload.SkippedRecords++
		case rowFailed:
			upload.FailedRecords++
			errs = append(errs, r.err.Error())
		}
	}
	upload.TotalRecords = len(results)

	if len(errs) > 0 {
		if len(errs) > entity.MaxStoredErrors {
			errs = errs[:entity.MaxStoredErrors]
		}
		payload, _ := json.Marshal(errs)
		details := string(payload)
		upload.ErrorDetails = &details
	}

	switch {
	case upload.FailedRecords == 0:
		upload.Status = entity.UploadStatusCompleted
	case upload.SuccessfulRecords > 0 || upload.UpdatedRecords > 0 || upload.SkippedRecords > 0:
		upload.Status = entity.UploadStatusPartial
	default:
		upload.Status = entity.UploadStatusFailed
	}
	upload.UpdatedAt = time.Now()
}

// abort marca la carga como fallida por un error estructural (archivo no
// parseable o columnas faltantes): un único error registrado y los contadores
// quedan en su último valor. El registro se devuelve tal cual, sin error HTTP.
func (uc *UseCase) abort(upload *entity.BulkUpload, message string) (*dto.BulkUploadResponse, error) {
	payload, _ := json.Marshal([]string{message})
	details := string(payload)
	upload.Status = entity.UploadStatusFailed
	upload.ErrorDetails = &details
	upload.UpdatedAt = time.Now()
	if err := uc.uploads.Update(upload); err != nil {
		return nil, fmt.Errorf("finalizar registro de carga: %w", err)
	}
	uc.log.Warn().Str("upload_id", upload.ID).Str("error", message).Msg("carga masiva abortada por error estructural")
	return ToBulkUploadResponse(upload), nil
}

func buildProduct(row *ingest.ProductRow, key, companyID string) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID:              uuid.New().String(),
		ProductKey:      key,
		CompanyID:       companyID,
		ProductName:     row.ProductName,
		ProductType:     row.ProductType,
		Location:        row.Location,
		SerialNumber:    row.SerialNumber,
		BatchNumber:     row.BatchNumber,
		LotNumber:       row.LotNumber,
		Expiry:          row.Expiry,
		Condition:       row.Condition,
		Quantity:        row.Quantity,
		Price:           row.Price,
		PaymentStatus:   row.PaymentStatus,
		Receiver:        row.Receiver,
		ReceiverContact: row.ReceiverContact,
		Remark:          row.Remark,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ToBulkUploadResponse mapea la entidad al DTO de respuesta.
func ToBulkUploadResponse(u *entity.BulkUpload) *dto.BulkUploadResponse {
	if u == nil {
		return nil
	}
	return &dto.BulkUploadResponse{
		ID:                u.ID,
		Filename:          u.Filename,
		Status:            u.Status,
		TotalRecords:      u.TotalRecords,
		SuccessfulRecords: u.SuccessfulRecords,
		FailedRecords:     u.FailedRecords,
		SkippedRecords:    u.SkippedRecords,
		UpdatedRecords:    u.UpdatedRecords,
		ErrorDetails:      u.ErrorDetails,
		DuplicateAction:   u.DuplicateAction,
		UploadedBy:        u.UploadedBy,
		CompanyID:         u.CompanyID,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
