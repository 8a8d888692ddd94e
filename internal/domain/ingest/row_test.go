package ingest_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/almacen-api/internal/domain/ingest"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del mapeo de encabezados y la validación de fila.
// ──────────────────────────────────────────────────────────────────────────────

func TestMapHeaders_AliasYMinusculas(t *testing.T) {
	mapped := ingest.MapHeaders([]string{"ProductName", " ProductType ", "Quantity", "Color Favorito"})
	assert.Equal(t, []string{"product_name", "product_type", "quantity", "color favorito"}, mapped)
}

func TestMapHeaders_NombresCanonicosPasanTalCual(t *testing.T) {
	mapped := ingest.MapHeaders([]string{"product_name", "product_type", "quantity"})
	assert.Equal(t, []string{"product_name", "product_type", "quantity"}, mapped)
}

func TestMissingRequiredColumns(t *testing.T) {
	missing := ingest.MissingRequiredColumns([]string{"product_name", "price"})
	assert.ElementsMatch(t, []string{"product_type", "quantity"}, missing)

	missing = ingest.MissingRequiredColumns([]string{"product_name", "product_type", "quantity", "extra"})
	assert.Empty(t, missing)
}

func TestValidateRow_FilaCompleta(t *testing.T) {
	raw := map[string]any{
		"product_name":     "Laptop Dell",
		"product_type":     "Electronics",
		"quantity":         float64(10),
		"serial_number":    float64(98765),
		"price":            "1499.50",
		"payment_status":   "Paid",
		"receiver_contact": "+57 (300) 555-1234",
		"location":         "  Bodega A ",
	}
	row, err := ingest.ValidateRow(raw, 2)
	require.NoError(t, err)

	assert.Equal(t, "Laptop Dell", row.ProductName)
	assert.Equal(t, "Electronics", row.ProductType)
	assert.Equal(t, 10, row.Quantity)
	require.NotNil(t, row.SerialNumber)
	assert.Equal(t, "98765", *row.SerialNumber)
	require.True(t, row.Price.Valid)
	assert.Equal(t, "1499.5", row.Price.Decimal.String())
	require.NotNil(t, row.PaymentStatus)
	assert.Equal(t, "Paid", *row.PaymentStatus)
	require.NotNil(t, row.ReceiverContact)
	assert.Equal(t, "573005551234", *row.ReceiverContact)
	require.NotNil(t, row.Location)
	assert.Equal(t, "Bodega A", *row.Location)
	assert.Nil(t, row.Expiry, "campos ausentes quedan nil")
	assert.Nil(t, row.Remark)
}

func TestValidateRow_NombreRequerido(t *testing.T) {
	_, err := ingest.ValidateRow(map[string]any{
		"product_type": "Electronics",
		"quantity":     5,
	}, 3)
	require.Error(t, err)

	var rowErr *ingest.RowError
	require.True(t, errors.As(err, &rowErr), "el error debe ser posicional")
	assert.Equal(t, 3, rowErr.Line)
	assert.Contains(t, err.Error(), "fila 3")
	assert.Contains(t, err.Error(), "product_name")
}

func TestValidateRow_NombreSoloEspaciosEsRequerido(t *testing.T) {
	_, err := ingest.ValidateRow(map[string]any{
		"product_name": "   ",
		"product_type": "Electronics",
		"quantity":     5,
	}, 2)
	assert.Error(t, err, "un nombre de puros espacios cuenta como ausente")
}

func TestValidateRow_QuantityRequerido(t *testing.T) {
	_, err := ingest.ValidateRow(map[string]any{
		"product_name": "Laptop",
		"product_type": "Electronics",
	}, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
}

func TestValidateRow_FallaRapidoEnElPrimerCampoInvalido(t *testing.T) {
	// serial_number inválido y fecha inválida en la misma fila: solo se reporta
	// el primero del pipeline.
	_, err := ingest.ValidateRow(map[string]any{
		"product_name":  "Laptop",
		"product_type":  "Electronics",
		"quantity":      1,
		"serial_number": 12.5,
		"expiry":        "no es fecha",
	}, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serial_number")
	assert.NotContains(t, err.Error(), "fecha")
}

func TestValidateRow_PaymentStatusFueraDelConjunto(t *testing.T) {
	_, err := ingest.ValidateRow(map[string]any{
		"product_name":   "Laptop",
		"product_type":   "Electronics",
		"quantity":       1,
		"payment_status": "Financed",
	}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment_status")
}
