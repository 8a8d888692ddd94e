package audit_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/almacen-api/internal/domain/audit"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del diff de campos para el log de auditoría.
// ──────────────────────────────────────────────────────────────────────────────

func TestSerializeValue_Escalares(t *testing.T) {
	assert.Nil(t, audit.SerializeValue(nil))

	s := "hola"
	assert.Equal(t, "hola", audit.SerializeValue(&s))
	assert.Nil(t, audit.SerializeValue((*string)(nil)))

	n := 42
	assert.Equal(t, 42, audit.SerializeValue(&n))

	ts := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-30T12:00:00Z", audit.SerializeValue(ts))
	assert.Equal(t, "2025-06-30T12:00:00Z", audit.SerializeValue(&ts))
	assert.Nil(t, audit.SerializeValue((*time.Time)(nil)))

	d := decimal.RequireFromString("99.90")
	assert.Equal(t, "99.9", audit.SerializeValue(d))
	assert.Equal(t, "99.9", audit.SerializeValue(decimal.NullDecimal{Decimal: d, Valid: true}))
	assert.Nil(t, audit.SerializeValue(decimal.NullDecimal{}))
}

func TestComputeChanges_SoloLosCamposQueDifieren(t *testing.T) {
	oldFields := map[string]any{
		"quantity": 10,
		"location": "Bodega A",
		"remark":   nil,
	}
	newFields := map[string]any{
		"quantity": 15,
		"location": "Bodega A",
		"remark":   nil,
	}

	changes := audit.ComputeChanges(oldFields, newFields)
	require.Len(t, changes, 1, "solo quantity cambió")
	assert.Equal(t, audit.FieldChange{Old: 10, New: 15}, changes["quantity"])
}

func TestComputeChanges_IdenticosDevuelveVacio(t *testing.T) {
	fields := map[string]any{"quantity": 10, "location": "Bodega A"}
	changes := audit.ComputeChanges(fields, fields)
	assert.Empty(t, changes, "sin diferencias no hay nada que auditar")
}

func TestComputeChanges_NilAValorYValorANil(t *testing.T) {
	oldFields := map[string]any{"remark": nil, "location": "Bodega A"}
	newFields := map[string]any{"remark": "frágil", "location": nil}

	changes := audit.ComputeChanges(oldFields, newFields)
	require.Len(t, changes, 2)
	assert.Equal(t, audit.FieldChange{Old: nil, New: "frágil"}, changes["remark"])
	assert.Equal(t, audit.FieldChange{Old: "Bodega A", New: nil}, changes["location"])
}

func TestCreateChanges_TodoDeNilAValor(t *testing.T) {
	changes := audit.CreateChanges(map[string]any{"quantity": 5, "location": "Bodega A"})
	require.Len(t, changes, 2)
	assert.Equal(t, audit.FieldChange{Old: nil, New: 5}, changes["quantity"])
	assert.Equal(t, audit.FieldChange{Old: nil, New: "Bodega A"}, changes["location"])
}

func TestDeleteChanges_TodoDeValorANil(t *testing.T) {
	changes := audit.DeleteChanges(map[string]any{"quantity": 5})
	require.Len(t, changes, 1)
	assert.Equal(t, audit.FieldChange{Old: 5, New: nil}, changes["quantity"])
}
