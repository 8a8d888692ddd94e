package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain/audit"
)

// Estados de pago permitidos para Product.PaymentStatus.
const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
	PaymentStatusUnpaid  = "Unpaid"
)

// Product representa un ítem de inventario con alcance de tenant (Company).
// ProductKey es la clave de negocio derivada de nombre + tipo + empresa
// (ver domain/product.Key); es única en todo el sistema porque ya incluye el tenant.
type Product struct {
	ID              string
	ProductKey      string // clave de negocio, ej. WIDGET_A_ELECTRONICS_ACME01
	CompanyID       string
	ProductName     string
	ProductType     string
	Location        *string
	SerialNumber    *string
	BatchNumber     *string
	LotNumber       *string
	Expiry          *time.Time
	Condition       *string
	Quantity        int
	Price           decimal.NullDecimal
	PaymentStatus   *string // Paid, Pending, Unpaid o nil
	Receiver        *string
	ReceiverContact *string
	Remark          *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var _ audit.Auditable = (*Product)(nil)

// AuditRef identifica el producto en el log de auditoría: id interno y clave de negocio.
func (p *Product) AuditRef() (id string, key string) {
	return p.ID, p.ProductKey
}

// AuditFields devuelve el mapa plano campo->valor escalar que consume el Audit Recorder.
// Se excluyen el id interno y los timestamps: updated_at cambia en cada escritura y
// convertiría toda actualización idéntica en un diff no vacío.
func (p *Product) AuditFields() map[string]any {
	return map[string]any{
		"product_id":       audit.SerializeValue(p.ProductKey),
		"company_id":       audit.SerializeValue(p.CompanyID),
		"product_name":     audit.SerializeValue(p.ProductName),
		"product_type":     audit.SerializeValue(p.ProductType),
		"location":         audit.SerializeValue(p.Location),
		"serial_number":    audit.SerializeValue(p.SerialNumber),
		"batch_number":     audit.SerializeValue(p.BatchNumber),
		"lot_number":       audit.SerializeValue(p.LotNumber),
		"expiry":           audit.SerializeValue(p.Expiry),
		"condition":        audit.SerializeValue(p.Condition),
		"quantity":         audit.SerializeValue(p.Quantity),
		"price":            audit.SerializeValue(p.Price),
		"payment_status":   audit.SerializeValue(p.PaymentStatus),
		"receiver":         audit.SerializeValue(p.Receiver),
		"receiver_contact": audit.SerializeValue(p.ReceiverContact),
		"remark":           audit.SerializeValue(p.Remark),
	}
}
