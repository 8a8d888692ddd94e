package dto

import "time"

// BulkUploadResponse representa el registro de una carga masiva, en curso o
// finalizado. El cliente debe inspeccionar status y los contadores: los
// problemas por fila nunca se reportan como error HTTP.
type BulkUploadResponse struct {
	ID                string    `json:"id"`
	Filename          string    `json:"filename"`
	Status            string    `json:"upload_status"`
	TotalRecords      int       `json:"total_records"`
	SuccessfulRecords int       `json:"successful_records"`
	FailedRecords     int       `json:"failed_records"`
	SkippedRecords    int       `json:"skipped_records"`
	UpdatedRecords    int       `json:"updated_records"`
	ErrorDetails      *string   `json:"error_details"`
	DuplicateAction   string    `json:"duplicate_action"`
	UploadedBy        string    `json:"uploaded_by"`
	CompanyID         string    `json:"company_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BulkUploadListResponse lista paginada de cargas masivas.
type BulkUploadListResponse struct {
	Items []BulkUploadResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
