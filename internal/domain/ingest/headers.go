package ingest

import "strings"

// headerAliases mapea los encabezados "humanos" del archivo a los nombres
// canónicos de campo. Un encabezado que no esté aquí se pasa a minúsculas,
// lo que permite subir archivos que ya usan los nombres canónicos.
var headerAliases = map[string]string{
	"ProductName":     FieldProductName,
	"ProductType":     FieldProductType,
	"Location":        FieldLocation,
	"SerialNumber":    FieldSerialNumber,
	"BatchNumber":     FieldBatchNumber,
	"LotNumber":       FieldLotNumber,
	"Expiry":          FieldExpiry,
	"Condition":       FieldCondition,
	"Quantity":        FieldQuantity,
	"Price":           FieldPrice,
	"PaymentStatus":   FieldPaymentStatus,
	"Receiver":        FieldReceiver,
	"ReceiverContact": FieldReceiverContact,
	"Remark":          FieldRemark,
}

// Nombres canónicos de columna.
const (
	FieldProductName     = "product_name"
	FieldProductType     = "product_type"
	FieldLocation        = "location"
	FieldSerialNumber    = "serial_number"
	FieldBatchNumber     = "batch_number"
	FieldLotNumber       = "lot_number"
	FieldExpiry          = "expiry"
	FieldCondition       = "condition"
	FieldQuantity        = "quantity"
	FieldPrice           = "price"
	FieldPaymentStatus   = "payment_status"
	FieldReceiver        = "receiver"
	FieldReceiverContact = "receiver_contact"
	FieldRemark          = "remark"
)

// requiredColumns deben existir tras el mapeo de encabezados; su ausencia es
// una falla estructural que aborta el batch completo.
var requiredColumns = []string{FieldProductName, FieldProductType, FieldQuantity}

// MapHeaders normaliza los encabezados del archivo a nombres canónicos:
// aplica el alias si existe, si no pasa el encabezado recortado a minúsculas.
func MapHeaders(headers []string) []string {
	mapped := make([]string, len(headers))
	for i, h := range headers {
		trimmed := strings.TrimSpace(h)
		if canonical, ok := headerAliases[trimmed]; ok {
			mapped[i] = canonical
			continue
		}
		mapped[i] = strings.ToLower(trimmed)
	}
	return mapped
}

// MissingRequiredColumns devuelve las columnas obligatorias ausentes tras el mapeo.
func MissingRequiredColumns(mappedHeaders []string) []string {
	present := make(map[string]bool, len(mappedHeaders))
	for _, h := range mappedHeaders {
		present[h] = true
	}
	var missing []string
	for _, col := range requiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}
