// Package product contiene reglas de dominio puras sobre productos,
// en particular la derivación de la clave de negocio.
package product

import "strings"

// Key deriva la clave de negocio única de un producto a partir de
// (product_name, product_type, company_id): cada componente se recorta,
// los espacios internos se reemplazan por guiones bajos y todo se pasa a
// mayúsculas, concatenado con "_". La clave ya incluye el tenant, por lo
// que es única entre todas las empresas.
//
// Key("Widget A", "Electronics", "acme01") == "WIDGET_A_ELECTRONICS_ACME01"
//
// Es una función pura y determinista: dos pares (nombre, tipo) distintos
// que normalicen a la misma clave son indistinguibles y el segundo se
// rechaza como conflicto en la capa de aplicación.
func Key(name, productType, companyID string) string {
	namePart := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	typePart := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(productType), " ", "_"))
	companyPart := strings.ToUpper(strings.TrimSpace(companyID))
	return namePart + "_" + typePart + "_" + companyPart
}
