// Package audit define la capacidad de auditoría (Auditable) y el cálculo
// de diffs a nivel de campo, sin depender de persistencia.
package audit

import (
	"time"

	"github.com/shopspring/decimal"
)

// Auditable es la capacidad que expone toda entidad rastreada: su referencia
// (id interno + clave de negocio) y un mapa plano campo->escalar ya serializado.
// El Audit Recorder la consume de manera uniforme, sin código por entidad.
type Auditable interface {
	AuditRef() (id string, key string)
	AuditFields() map[string]any
}

// FieldChange es el par old/new de un campo modificado.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// SerializeValue reduce un valor a un escalar apto para el log de auditoría:
// fechas a ISO-8601, decimales a su representación string exacta, punteros
// desreferenciados (nil queda nil). Todo lo demás pasa sin cambios.
func SerializeValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *int:
		if x == nil {
			return nil
		}
		return *x
	case time.Time:
		return x.Format(time.RFC3339)
	case *time.Time:
		if x == nil {
			return nil
		}
		return x.Format(time.RFC3339)
	case decimal.Decimal:
		return x.String()
	case *decimal.Decimal:
		if x == nil {
			return nil
		}
		return x.String()
	case decimal.NullDecimal:
		if !x.Valid {
			return nil
		}
		return x.Decimal.String()
	default:
		return v
	}
}

// ComputeChanges calcula el conjunto de campos cuyo valor serializado difiere
// entre el estado anterior y el nuevo. Si no hay diferencias devuelve un mapa
// vacío y el llamador no debe escribir ninguna entrada de auditoría.
func ComputeChanges(oldFields, newFields map[string]any) map[string]FieldChange {
	changes := make(map[string]FieldChange)
	for key, oldVal := range oldFields {
		newVal, ok := newFields[key]
		if !ok {
			changes[key] = FieldChange{Old: oldVal, New: nil}
			continue
		}
		if oldVal != newVal {
			changes[key] = FieldChange{Old: oldVal, New: newVal}
		}
	}
	for key, newVal := range newFields {
		if _, ok := oldFields[key]; !ok {
			changes[key] = FieldChange{Old: nil, New: newVal}
		}
	}
	return changes
}

// CreateChanges construye el diff de una creación: todo campo pasa de null a su valor.
func CreateChanges(fields map[string]any) map[string]FieldChange {
	changes := make(map[string]FieldChange, len(fields))
	for key, val := range fields {
		changes[key] = FieldChange{Old: nil, New: val}
	}
	return changes
}

// DeleteChanges construye el diff de un borrado: todo campo pasa de su valor a null.
func DeleteChanges(fields map[string]any) map[string]FieldChange {
	changes := make(map[string]FieldChange, len(fields))
	for key, val := range fields {
		changes[key] = FieldChange{Old: val, New: nil}
	}
	return changes
}
