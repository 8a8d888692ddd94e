package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// AuditFilter filtros opcionales para el listado de auditoría.
type AuditFilter struct {
	CompanyID  *string // nil = sin filtro (solo admin)
	ProductRef *string // id interno del producto
	Limit      int
	Offset     int
}

// AuditRepository define el puerto de persistencia para AuditEntry.
// El log es append-only: solo se crea y se lista, nunca se actualiza ni borra.
type AuditRepository interface {
	Create(entry *entity.AuditEntry) error
	// List devuelve entradas orden descendente por fecha, enriquecidas con el
	// nombre del manager actor y el nombre del producto cuando aún resuelven.
	List(filter AuditFilter) ([]*entity.AuditEntry, error)
}
