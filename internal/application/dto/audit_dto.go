package dto

import "time"

// AuditEntryResponse una entrada del log de auditoría, enriquecida en lectura
// con el nombre del manager actor y el nombre del producto cuando aún resuelve.
type AuditEntryResponse struct {
	ID           string    `json:"id"`
	ProductRef   string    `json:"product_ref"`
	ProductKey   *string   `json:"product_unique_id"`
	ActionType   string    `json:"action_type"`
	Changes      string    `json:"changes"` // JSON string: {campo: {old, new}}
	ChangedBy    string    `json:"changed_by"`
	ManagerName  *string   `json:"manager_name"`
	ProductName  *string   `json:"product_name"`
	CompanyID    string    `json:"company_id"`
	BulkUploadID *string   `json:"bulk_upload_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuditListResponse lista paginada de entradas de auditoría (orden descendente).
type AuditListResponse struct {
	Items []AuditEntryResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
