package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. La clave de negocio
// (product_id) se deriva en el servidor a partir de name + type + company.
type CreateProductRequest struct {
	ProductName     string              `json:"product_name" validate:"required,min=1,max=200"`
	ProductType     string              `json:"product_type" validate:"required,min=1,max=100"`
	Location        *string             `json:"location"`
	SerialNumber    *string             `json:"serial_number"`
	BatchNumber     *string             `json:"batch_number"`
	LotNumber       *string             `json:"lot_number"`
	Expiry          *time.Time          `json:"expiry"`
	Condition       *string             `json:"condition"`
	Quantity        int                 `json:"quantity"`
	Price           decimal.NullDecimal `json:"price"`
	PaymentStatus   *string             `json:"payment_status"`
	Receiver        *string             `json:"receiver"`
	ReceiverContact *string             `json:"receiver_contact"`
	Remark          *string             `json:"remark"`
}

// UpdateProductRequest entrada para actualizar un producto. Los campos nil no
// se tocan. Cambiar product_name o product_type regenera la clave de negocio.
type UpdateProductRequest struct {
	ProductName     *string              `json:"product_name" validate:"omitempty,min=1,max=200"`
	ProductType     *string              `json:"product_type" validate:"omitempty,min=1,max=100"`
	Location        *string              `json:"location"`
	SerialNumber    *string              `json:"serial_number"`
	BatchNumber     *string              `json:"batch_number"`
	LotNumber       *string              `json:"lot_number"`
	Expiry          *time.Time           `json:"expiry"`
	Condition       *string              `json:"condition"`
	Quantity        *int                 `json:"quantity"`
	Price           *decimal.NullDecimal `json:"price"`
	PaymentStatus   *string              `json:"payment_status"`
	Receiver        *string              `json:"receiver"`
	ReceiverContact *string              `json:"receiver_contact"`
	Remark          *string              `json:"remark"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string              `json:"id"`
	ProductKey      string              `json:"product_id"`
	CompanyID       string              `json:"company_id"`
	ProductName     string              `json:"product_name"`
	ProductType     string              `json:"product_type"`
	Location        *string             `json:"location"`
	SerialNumber    *string             `json:"serial_number"`
	BatchNumber     *string             `json:"batch_number"`
	LotNumber       *string             `json:"lot_number"`
	Expiry          *time.Time          `json:"expiry"`
	Condition       *string             `json:"condition"`
	Quantity        int                 `json:"quantity"`
	Price           decimal.NullDecimal `json:"price"`
	PaymentStatus   *string             `json:"payment_status"`
	Receiver        *string             `json:"receiver"`
	ReceiverContact *string             `json:"receiver_contact"`
	Remark          *string             `json:"remark"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
