package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// BulkUploadRepository define el puerto de persistencia para BulkUpload.
// El registro se crea en estado processing y se actualiza una sola vez con su
// estado terminal y los contadores; nunca se elimina desde este subsistema.
type BulkUploadRepository interface {
	Create(upload *entity.BulkUpload) error
	Update(upload *entity.BulkUpload) error
	GetByID(id string) (*entity.BulkUpload, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.BulkUpload, error)
}
