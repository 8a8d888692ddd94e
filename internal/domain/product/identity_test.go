package product_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/almacen-api/internal/domain/product"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la clave de negocio: NOMBRE_TIPO_TENANT normalizada. Dos escrituras
// distintas del mismo producto deben colapsar a la misma clave.
// ──────────────────────────────────────────────────────────────────────────────

func TestKey_Normalizacion(t *testing.T) {
	key := product.Key("Laptop Dell", "Electronics", "acme01")
	assert.Equal(t, "LAPTOP_DELL_ELECTRONICS_ACME01", key)
}

func TestKey_VariantesColapsanALaMismaClave(t *testing.T) {
	base := product.Key("Laptop Dell", "Electronics", "acme01")

	variantes := []struct {
		name        string
		productType string
	}{
		{"  Laptop Dell  ", "Electronics"},   // espacios exteriores
		{"laptop dell", "electronics"},       // minúsculas
		{"LAPTOP DELL", "ELECTRONICS"},       // mayúsculas
		{"Laptop Dell", "  Electronics   "},  // espacios en el tipo
	}
	for _, v := range variantes {
		assert.Equal(t, base, product.Key(v.name, v.productType, "acme01"),
			"la variante (%q, %q) debe producir la misma clave", v.name, v.productType)
	}
}

func TestKey_EspaciosInterioresSeVuelvenGuionesBajos(t *testing.T) {
	key := product.Key("Caja de Tornillos", "Ferretería General", "bodega")
	assert.Equal(t, "CAJA_DE_TORNILLOS_FERRETERÍA_GENERAL_BODEGA", key)
}

func TestKey_TenantDistintoClaveDistinta(t *testing.T) {
	a := product.Key("Laptop", "Electronics", "empresa-a")
	b := product.Key("Laptop", "Electronics", "empresa-b")
	assert.NotEqual(t, a, b, "el mismo producto en tenants distintos no debe chocar")
}
