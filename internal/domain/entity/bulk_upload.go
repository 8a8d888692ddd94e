package entity

import "time"

// Estados del ciclo de vida de una carga masiva.
const (
	UploadStatusProcessing = "processing"
	UploadStatusCompleted  = "completed"
	UploadStatusPartial    = "partial"
	UploadStatusFailed     = "failed"
)

// Políticas de resolución de duplicados durante la carga.
const (
	DuplicateActionSkip   = "skip"
	DuplicateActionUpdate = "update"
)

// MaxStoredErrors acota la lista de errores serializada en ErrorDetails.
const MaxStoredErrors = 100

// BulkUpload representa un intento de carga masiva y su resultado agregado.
// Se crea en estado processing antes de procesar filas y se finaliza una sola
// vez con su estado terminal; este subsistema nunca lo elimina.
type BulkUpload struct {
	ID                string
	Filename          string
	Status            string // processing, completed, partial, failed
	TotalRecords      int
	SuccessfulRecords int
	FailedRecords     int
	SkippedRecords    int
	UpdatedRecords    int
	ErrorDetails      *string // JSON array de strings, máx. MaxStoredErrors entradas
	DuplicateAction   string  // skip o update
	UploadedBy        string  // id del manager que inició la carga
	CompanyID         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
