package bulkimport

import (
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// StatusUseCase consulta de registros de carga masiva (el estado se sondea,
// no hay push en tiempo real).
type StatusUseCase struct {
	uploads repository.BulkUploadRepository
}

// NewStatusUseCase construye el caso de uso de consulta.
func NewStatusUseCase(uploads repository.BulkUploadRepository) *StatusUseCase {
	return &StatusUseCase{uploads: uploads}
}

// GetByID devuelve un registro de carga. Si companyID no es nil y el registro
// pertenece a otro tenant, responde ErrNotFound (no se revela su existencia).
func (uc *StatusUseCase) GetByID(id string, companyID *string) (*dto.BulkUploadResponse, error) {
	upload, err := uc.uploads.GetByID(id)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, domain.ErrNotFound
	}
	if companyID != nil && upload.CompanyID != *companyID {
		return nil, domain.ErrNotFound
	}
	return ToBulkUploadResponse(upload), nil
}

// ListByCompany lista las cargas de un tenant, más recientes primero.
func (uc *StatusUseCase) ListByCompany(companyID string, limit, offset int) (*dto.BulkUploadListResponse, error) {
	uploads, err := uc.uploads.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BulkUploadResponse, 0, len(uploads))
	for _, u := range uploads {
		items = append(items, *ToBulkUploadResponse(u))
	}
	return &dto.BulkUploadListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
