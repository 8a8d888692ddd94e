package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación del puerto AuditRepository sobre PostgreSQL.
// La tabla audit_logs es append-only; changes se guarda como blob JSON en TEXT.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de persistencia para auditoría.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create agrega una entrada al log.
func (r *AuditRepo) Create(entry *entity.AuditEntry) error {
	query := `
		INSERT INTO audit_logs (id, product_ref, product_key, action_type, changes, changed_by,
			company_id, bulk_upload_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductRef, entry.ProductKey, entry.ActionType, entry.Changes,
		entry.ChangedBy, entry.CompanyID, entry.BulkUploadID, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List devuelve entradas orden descendente, enriquecidas en lectura con el
// nombre del manager actor y el nombre del producto (LEFT JOIN: ambos pueden
// haber desaparecido sin invalidar el log).
func (r *AuditRepo) List(filter repository.AuditFilter) ([]*entity.AuditEntry, error) {
	query := `
		SELECT a.id, a.product_ref, a.product_key, a.action_type, a.changes, a.changed_by,
			a.company_id, a.bulk_upload_id, a.created_at, u.name, p.product_name
		FROM audit_logs a
		LEFT JOIN users u ON u.id = a.changed_by
		LEFT JOIN products p ON p.id = a.product_ref
		WHERE ($1::text IS NULL OR a.company_id = $1)
		  AND ($2::text IS NULL OR a.product_ref = $2)
		ORDER BY a.created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query,
		filter.CompanyID, filter.ProductRef, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		if err := rows.Scan(
			&e.ID, &e.ProductRef, &e.ProductKey, &e.ActionType, &e.Changes, &e.ChangedBy,
			&e.CompanyID, &e.BulkUploadID, &e.CreatedAt, &e.ManagerName, &e.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
