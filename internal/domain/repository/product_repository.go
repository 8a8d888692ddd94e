package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay resultado.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByKey busca por clave de negocio; la clave es única en todo el sistema.
	GetByKey(productKey string) (*entity.Product, error)
	// ExistsKeyExcept verifica colisión de clave excluyendo el propio registro
	// (re-chequeo al regenerar la clave en un update de nombre/tipo).
	ExistsKeyExcept(productKey, excludeID string) (bool, error)
	Update(product *entity.Product) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
