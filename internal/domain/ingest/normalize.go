package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Los valores de las celdas llegan como any porque el formato de origen mezcla
// tipos: un XLSX entrega números y booleanos nativos, un CSV entrega strings, y
// las hojas de cálculo convierten identificadores en flotantes (12345 -> 12345.0).
// Cada normalizador coacciona ese zoológico a la forma canónica de su campo.

// expiryFormats se prueban en orden; gana el primero que parsea.
var expiryFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006", // MM/DD/YYYY
	"02/01/2006", // DD/MM/YYYY
	"2006/01/02",
}

// paymentStatuses valores permitidos para payment_status.
var paymentStatuses = map[string]bool{
	"Paid":    true,
	"Pending": true,
	"Unpaid":  true,
}

// NormalizeIdentifier coacciona campos identificadores (serial/batch/lot):
// nil se conserva, booleanos son inválidos, enteros y flotantes integrales se
// vuelven string decimal, flotantes con fracción son inválidos, strings se
// recortan y el vacío colapsa a nil.
func NormalizeIdentifier(v any) (*string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return nil, fmt.Errorf("tipo inválido para campo identificador: boolean")
	case int:
		s := strconv.Itoa(x)
		return &s, nil
	case int64:
		s := strconv.FormatInt(x, 10)
		return &s, nil
	case float64:
		if x != math.Trunc(x) {
			return nil, fmt.Errorf("campo identificador no admite decimales")
		}
		s := strconv.FormatInt(int64(x), 10)
		return &s, nil
	case string:
		trimmed := strings.TrimSpace(x)
		if trimmed == "" {
			return nil, nil
		}
		return &trimmed, nil
	default:
		return nil, fmt.Errorf("tipo inválido para campo identificador: %T", v)
	}
}

// NormalizePrice convierte cualquier representación numérica a decimal de
// precisión arbitraria. Blanco o nil queda nil.
func NormalizePrice(v any) (decimal.NullDecimal, error) {
	var raw string
	switch x := v.(type) {
	case nil:
		return decimal.NullDecimal{}, nil
	case int:
		raw = strconv.Itoa(x)
	case int64:
		raw = strconv.FormatInt(x, 10)
	case float64:
		raw = strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		raw = strings.TrimSpace(x)
		if raw == "" {
			return decimal.NullDecimal{}, nil
		}
	default:
		return decimal.NullDecimal{}, fmt.Errorf("precio no reconocido: %v", v)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("precio no reconocido: %s", raw)
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

// NormalizeContact limpia números de contacto: los numéricos se truncan a
// entero y se convierten a string (elimina el .0 de las hojas de cálculo);
// los strings pierden los caracteres de formato + - ( ) y espacios, y si lo
// que queda es todo dígitos se devuelve limpio, si no, el original recortado.
func NormalizeContact(v any) (*string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case int:
		s := strconv.Itoa(x)
		return &s, nil
	case int64:
		s := strconv.FormatInt(x, 10)
		return &s, nil
	case float64:
		s := strconv.FormatInt(int64(x), 10)
		return &s, nil
	case string:
		trimmed := strings.TrimSpace(x)
		if trimmed == "" {
			return nil, nil
		}
		cleaned := strings.NewReplacer("+", "", "-", "", " ", "", "(", "", ")", "").Replace(trimmed)
		if cleaned != "" && isAllDigits(cleaned) {
			return &cleaned, nil
		}
		return &trimmed, nil
	default:
		return nil, fmt.Errorf("tipo inválido para contacto: %T", v)
	}
}

// NormalizePaymentStatus valida el estado de pago contra el conjunto permitido.
// Blanco o nil queda nil; cualquier otro valor fuera del conjunto es error.
func NormalizePaymentStatus(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	if s == "" {
		return nil, nil
	}
	if !paymentStatuses[s] {
		return nil, fmt.Errorf("payment_status debe ser uno de: Paid, Pending, Unpaid")
	}
	return &s, nil
}

// NormalizeDate coacciona cualquier valor no nulo a string y lo parsea contra
// la lista fija de formatos. Blanco queda nil; si ningún formato aplica, el
// error nombra el valor ofensor.
func NormalizeDate(v any) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	raw := strings.TrimSpace(fmt.Sprintf("%v", v))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range expiryFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("fecha no reconocida: %s", raw)
}

// NormalizeQuantity trunca valores numéricos hacia entero; los strings
// numéricos se parsean vía float para tolerar "5.0". Blanco queda nil.
func NormalizeQuantity(v any) (*int, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case int:
		return &x, nil
	case int64:
		n := int(x)
		return &n, nil
	case float64:
		n := int(x)
		return &n, nil
	case string:
		trimmed := strings.TrimSpace(x)
		if trimmed == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("quantity debe ser un entero válido")
		}
		n := int(f)
		return &n, nil
	default:
		return nil, fmt.Errorf("quantity debe ser un entero válido")
	}
}

// NormalizeText recorta strings libres (nombre, ubicación, observaciones);
// el vacío colapsa a nil y los valores no-string se formatean con %v.
func NormalizeText(v any) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	if s == "" {
		return nil
	}
	return &s
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
