package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.BulkUploadRepository = (*BulkUploadRepo)(nil)

const bulkUploadColumns = `id, filename, upload_status, total_records, successful_records,
		failed_records, skipped_records, updated_records, error_details, duplicate_action,
		uploaded_by, company_id, created_at, updated_at`

// BulkUploadRepo implementación del puerto BulkUploadRepository sobre PostgreSQL.
type BulkUploadRepo struct {
	q Querier
}

// NewBulkUploadRepository construye el adaptador de persistencia para cargas masivas.
func NewBulkUploadRepository(q Querier) *BulkUploadRepo {
	return &BulkUploadRepo{q: q}
}

// Create persiste el registro de carga en estado processing, antes de procesar
// la primera fila, para que sea consultable a mitad de ejecución.
func (r *BulkUploadRepo) Create(upload *entity.BulkUpload) error {
	query := `
		INSERT INTO bulk_uploads (` + bulkUploadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		upload.ID, upload.Filename, upload.Status, upload.TotalRecords, upload.SuccessfulRecords,
		upload.FailedRecords, upload.SkippedRecords, upload.UpdatedRecords, upload.ErrorDetails,
		upload.DuplicateAction, upload.UploadedBy, upload.CompanyID, upload.CreatedAt, upload.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bulk upload: %w", err)
	}
	return nil
}

// Update escribe el estado terminal y los contadores del registro.
func (r *BulkUploadRepo) Update(upload *entity.BulkUpload) error {
	query := `
		UPDATE bulk_uploads SET upload_status = $2, total_records = $3, successful_records = $4,
			failed_records = $5, skipped_records = $6, updated_records = $7, error_details = $8,
			updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		upload.ID, upload.Status, upload.TotalRecords, upload.SuccessfulRecords,
		upload.FailedRecords, upload.SkippedRecords, upload.UpdatedRecords, upload.ErrorDetails,
		upload.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bulk upload: %w", err)
	}
	return nil
}

// GetByID obtiene un registro de carga por ID.
func (r *BulkUploadRepo) GetByID(id string) (*entity.BulkUpload, error) {
	query := `SELECT ` + bulkUploadColumns + ` FROM bulk_uploads WHERE id = $1`
	var u entity.BulkUpload
	err := scanBulkUpload(r.q.QueryRow(context.Background(), query, id), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bulk upload: %w", err)
	}
	return &u, nil
}

// ListByCompany lista cargas de un tenant, más recientes primero.
func (r *BulkUploadRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.BulkUpload, error) {
	query := `SELECT ` + bulkUploadColumns + `
		FROM bulk_uploads WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bulk uploads: %w", err)
	}
	defer rows.Close()
	var list []*entity.BulkUpload
	for rows.Next() {
		var u entity.BulkUpload
		if err := scanBulkUpload(rows, &u); err != nil {
			return nil, fmt.Errorf("scan bulk upload: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func scanBulkUpload(row pgx.Row, u *entity.BulkUpload) error {
	return row.Scan(
		&u.ID, &u.Filename, &u.Status, &u.TotalRecords, &u.SuccessfulRecords,
		&u.FailedRecords, &u.SkippedRecords, &u.UpdatedRecords, &u.ErrorDetails,
		&u.DuplicateAction, &u.UploadedBy, &u.CompanyID, &u.CreatedAt, &u.UpdatedAt,
	)
}
