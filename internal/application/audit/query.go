package audit

import (
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// QueryUseCase listado paginado del log de auditoría.
type QueryUseCase struct {
	repo repository.AuditRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(repo repository.AuditRepository) *QueryUseCase {
	return &QueryUseCase{repo: repo}
}

// List devuelve entradas más recientes primero. companyID nil significa sin
// filtro de tenant (solo admin); productRef filtra por producto.
func (uc *QueryUseCase) List(companyID, productRef *string, limit, offset int) (*dto.AuditListResponse, error) {
	entries, err := uc.repo.List(repository.AuditFilter{
		CompanyID:  companyID,
		ProductRef: productRef,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, *toAuditResponse(e))
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toAuditResponse(e *entity.AuditEntry) *dto.AuditEntryResponse {
	if e == nil {
		return nil
	}
	return &dto.AuditEntryResponse{
		ID:           e.ID,
		ProductRef:   e.ProductRef,
		ProductKey:   e.ProductKey,
		ActionType:   e.ActionType,
		Changes:      e.Changes,
		ChangedBy:    e.ChangedBy,
		ManagerName:  e.ManagerName,
		ProductName:  e.ProductName,
		CompanyID:    e.CompanyID,
		BulkUploadID: e.BulkUploadID,
		CreatedAt:    e.CreatedAt,
	}
}
