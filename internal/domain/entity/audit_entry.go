package entity

import "time"

// Tipos de acción registrados en el log de auditoría. El prefijo bulk_ indica
// que la mutación se originó en una carga masiva (BulkUpload).
const (
	AuditActionCreate     = "create"
	AuditActionUpdate     = "update"
	AuditActionDelete     = "delete"
	AuditActionBulkCreate = "bulk_create"
	AuditActionBulkUpdate = "bulk_update"
)

// AuditEntry es un registro inmutable de un conjunto de cambios a nivel de campo
// sobre un producto. El log es append-only: nunca se actualiza ni se elimina.
type AuditEntry struct {
	ID           string
	ProductRef   string  // id interno del producto afectado
	ProductKey   *string // clave de negocio, para mostrar en UI aunque el producto ya no exista
	ActionType   string  // ver constantes AuditAction*
	Changes      string  // JSON: {campo: {"old": ..., "new": ...}}
	ChangedBy    string  // id del usuario actor
	CompanyID    string
	BulkUploadID *string // referencia a la carga masiva que originó el cambio, si aplica
	CreatedAt    time.Time

	// Campos de solo lectura poblados por el join del listado (no se persisten aquí).
	ManagerName *string
	ProductName *string
}
