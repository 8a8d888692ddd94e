package usecase

import (
	"time"

	"github.com/google/uuid"
	appaudit "github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/product"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Toda mutación pasa por el
// Audit Recorder después de confirmar el cambio en el store.
type ProductUseCase struct {
	repo     repository.ProductRepository
	recorder *appaudit.Recorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, recorder *appaudit.Recorder) *ProductUseCase {
	return &ProductUseCase{repo: repo, recorder: recorder}
}

// Create crea un producto con su clave de negocio derivada. Si la combinación
// (nombre, tipo) ya existe para la empresa devuelve ErrDuplicate: a diferencia
// de la carga masiva, el alta individual no resuelve duplicados, los rechaza.
func (uc *ProductUseCase) Create(companyID, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !validPaymentStatus(in.PaymentStatus) {
		return nil, domain.ErrInvalidInput
	}
	key := product.Key(in.ProductName, in.ProductType, companyID)
	existing, err := uc.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	p := &entity.Product{
		ID:              uuid.New().String(),
		ProductKey:      key,
		CompanyID:       companyID,
		ProductName:     in.ProductName,
		ProductType:     in.ProductType,
		Location:        in.Location,
		SerialNumber:    in.SerialNumber,
		BatchNumber:     in.BatchNumber,
		LotNumber:       in.LotNumber,
		Expiry:          in.Expiry,
		Condition:       in.Condition,
		Quantity:        in.Quantity,
		Price:           in.Price,
		PaymentStatus:   in.PaymentStatus,
		Receiver:        in.Receiver,
		ReceiverContact: in.ReceiverContact,
		Remark:          in.Remark,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	// La auditoría se escribe estrictamente después del commit de la entidad.
	if err := uc.recorder.RecordCreate(p, actorID, companyID, nil); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID obtiene un producto. companyID no nil limita al tenant: un producto
// de otra empresa se reporta como inexistente.
func (uc *ProductUseCase) GetByID(id string, companyID *string) (*dto.ProductResponse, error) {
	p, err := uc.load(id, companyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toProductResponse(p), nil
}

// Update aplica cambios parciales. Si cambian nombre o tipo se regenera la
// clave de negocio y se re-verifica colisión contra todos los demás registros
// (excluyendo el propio) antes de confirmar.
func (uc *ProductUseCase) Update(id string, companyID *string, actorID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.load(id, companyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if in.PaymentStatus != nil && !validPaymentStatus(in.PaymentStatus) {
		return nil, domain.ErrInvalidInput
	}

	oldFields := p.AuditFields()

	if in.ProductName != nil {
		p.ProductName = *in.ProductName
	}
	if in.ProductType != nil {
		p.ProductType = *in.ProductType
	}
	if in.ProductName != nil || in.ProductType != nil {
		newKey := product.Key(p.ProductName, p.ProductType, p.CompanyID)
		if newKey != p.ProductKey {
			taken, err := uc.repo.ExistsKeyExcept(newKey, p.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, domain.ErrDuplicate
			}
			p.ProductKey = newKey
		}
	}
	if in.Location != nil {
		p.Location = in.Location
	}
	if in.SerialNumber != nil {
		p.SerialNumber = in.SerialNumber
	}
	if in.BatchNumber != nil {
		p.BatchNumber = in.BatchNumber
	}
	if in.LotNumber != nil {
		p.LotNumber = in.LotNumber
	}
	if in.Expiry != nil {
		p.Expiry = in.Expiry
	}
	if in.Condition != nil {
		p.Condition = in.Condition
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.PaymentStatus != nil {
		p.PaymentStatus = in.PaymentStatus
	}
	if in.Receiver != nil {
		p.Receiver = in.Receiver
	}
	if in.ReceiverContact != nil {
		p.ReceiverContact = in.ReceiverContact
	}
	if in.Remark != nil {
		p.Remark = in.Remark
	}
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	// Si ningún campo difiere, el recorder no escribe nada (diff vacío).
	if _, err := uc.recorder.RecordUpdate(p, oldFields, actorID, p.CompanyID, nil); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete elimina un producto y registra el borrado con todos los campos a null.
func (uc *ProductUseCase) Delete(id string, companyID *string, actorID string) error {
	p, err := uc.load(id, companyID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(p.ID); err != nil {
		return err
	}
	return uc.recorder.RecordDelete(p, actorID, p.CompanyID)
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *ProductUseCase) load(id string, companyID *string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if companyID != nil && p.CompanyID != *companyID {
		return nil, nil
	}
	return p, nil
}

func validPaymentStatus(s *string) bool {
	if s == nil {
		return true
	}
	switch *s {
	case entity.PaymentStatusPaid, entity.PaymentStatusPending, entity.PaymentStatusUnpaid:
		return true
	}
	return false
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		ProductKey:      p.ProductKey,
		CompanyID:       p.CompanyID,
		ProductName:     p.ProductName,
		ProductType:     p.ProductType,
		Location:        p.Location,
		SerialNumber:    p.SerialNumber,
		BatchNumber:     p.BatchNumber,
		LotNumber:       p.LotNumber,
		Expiry:          p.Expiry,
		Condition:       p.Condition,
		Quantity:        p.Quantity,
		Price:           p.Price,
		PaymentStatus:   p.PaymentStatus,
		Receiver:        p.Receiver,
		ReceiverContact: p.ReceiverContact,
		Remark:          p.Remark,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
