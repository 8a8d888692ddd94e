package ingest

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProductRow es una fila ya validada y normalizada, lista para convertirse en
// producto. Los campos opcionales son punteros: nil significa celda en blanco.
type ProductRow struct {
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
	PaymentStatus   *string
	Receiver        *string
	ReceiverContact *string
	Remark          *string
}

// RowError es el error de una fila, atado a su posición en el archivo.
// Line es 1-based y cuenta la fila de encabezados (la primera fila de datos es la 2).
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("fila %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ValidateRow normaliza y valida una fila cruda (mapa columna canónica -> valor
// de celda). Aplica el Field Normalizer por campo y luego los chequeos
// estructurales: product_name y product_type requeridos y no vacíos, quantity
// requerido. Falla rápido: el primer campo inválido aborta la fila con un
// RowError posicional; no se acumulan múltiples errores por fila.
func ValidateRow(raw map[string]any, line int) (*ProductRow, error) {
	fail := func(err error) (*ProductRow, error) {
		return nil, &RowError{Line: line, Err: err}
	}

	row := &ProductRow{}

	name := NormalizeText(raw[FieldProductName])
	if name == nil {
		return fail(fmt.Errorf("product_name es requerido"))
	}
	row.ProductName = *name

	productType := NormalizeText(raw[FieldProductType])
	if productType == nil {
		return fail(fmt.Errorf("product_type es requerido"))
	}
	row.ProductType = *productType

	quantity, err := NormalizeQuantity(raw[FieldQuantity])
	if err != nil {
		return fail(err)
	}
	if quantity == nil {
		return fail(fmt.Errorf("quantity es requerido"))
	}
	row.Quantity = *quantity

	for _, field := range []struct {
		column string
		dst    **string
	}{
		{FieldSerialNumber, &row.SerialNumber},
		{FieldBatchNumber, &row.BatchNumber},
		{FieldLotNumber, &row.LotNumber},
	} {
		val, err := NormalizeIdentifier(raw[field.column])
		if err != nil {
			return fail(fmt.Errorf("%s: %w", field.column, err))
		}
		*field.dst = val
	}

	if row.Expiry, err = NormalizeDate(raw[FieldExpiry]); err != nil {
		return fail(err)
	}
	if row.Price, err = NormalizePrice(raw[FieldPrice]); err != nil {
		return fail(err)
	}
	if row.PaymentStatus, err = NormalizePaymentStatus(raw[FieldPaymentStatus]); err != nil {
		return fail(err)
	}
	if row.ReceiverContact, err = NormalizeContact(raw[FieldReceiverContact]); err != nil {
		return fail(err)
	}

	row.Location = NormalizeText(raw[FieldLocation])
	row.Condition = NormalizeText(raw[FieldCondition])
	row.Receiver = NormalizeText(raw[FieldReceiver])
	row.Remark = NormalizeText(raw[FieldRemark])

	return row, nil
}
