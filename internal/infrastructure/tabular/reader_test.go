package tabular_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/tabular"
	"github.com/xuri/excelize/v2"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del lector CSV
// ──────────────────────────────────────────────────────────────────────────────

func TestRead_CSVBasico(t *testing.T) {
	csv := "ProductName,ProductType,Quantity\nLaptop,Electronics,10\nMouse,Electronics,5\n"
	headers, rows, err := tabular.NewReader().Read("productos.csv", strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"ProductName", "ProductType", "Quantity"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, []any{"Laptop", "Electronics", "10"}, rows[0])
	assert.Equal(t, []any{"Mouse", "Electronics", "5"}, rows[1])
}

func TestRead_CSVConBOM(t *testing.T) {
	csv := "\xEF\xBB\xBFProductName,Quantity\nLaptop,1\n"
	headers, _, err := tabular.NewReader().Read("productos.csv", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "ProductName", headers[0], "el BOM de Excel no debe contaminar el primer encabezado")
}

func TestRead_CSVWindows1252(t *testing.T) {
	// "Señal" con la ñ en Windows-1252 (0xF1): bytes inválidos como UTF-8.
	raw := []byte("ProductName,Quantity\nSe\xf1al,3\n")
	headers, rows, err := tabular.NewReader().Read("productos.csv", bytes.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, []string{"ProductName", "Quantity"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, "Señal", rows[0][0], "los CSV exportados por Excel en Windows-1252 deben decodificarse")
}

func TestRead_CSVFilasCortasSeToleran(t *testing.T) {
	csv := "ProductName,ProductType,Quantity\nLaptop,Electronics\n"
	_, rows, err := tabular.NewReader().Read("productos.csv", strings.NewReader(csv))
	require.NoError(t, err, "una fila con menos columnas no es un error de parseo")
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 2)
}

func TestRead_CSVVacioEsError(t *testing.T) {
	_, _, err := tabular.NewReader().Read("productos.csv", strings.NewReader(""))
	assert.Error(t, err)
}

func TestRead_ExtensionNoSoportada(t *testing.T) {
	_, _, err := tabular.NewReader().Read("productos.pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".pdf")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del lector XLSX
// ──────────────────────────────────────────────────────────────────────────────

// buildWorkbook arma un libro en memoria con encabezados y una fila de datos
// que mezcla tipos de celda.
func buildWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "ProductName"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "SerialNumber"))
	require.NoError(t, f.SetCellValue(sheet, "C1", "Quantity"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Laptop"))
	require.NoError(t, f.SetCellValue(sheet, "B2", 98765)) // Excel guarda los números como flotantes
	require.NoError(t, f.SetCellValue(sheet, "C2", 10))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestRead_XLSXConservaTiposNativos(t *testing.T) {
	buf := buildWorkbook(t)

	headers, rows, err := tabular.NewReader().Read("productos.xlsx", buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"ProductName", "SerialNumber", "Quantity"}, headers)
	require.Len(t, rows, 1)

	assert.Equal(t, "Laptop", rows[0][0])
	assert.Equal(t, float64(98765), rows[0][1], "las celdas numéricas llegan como float64, el normalizador decide")
	assert.Equal(t, float64(10), rows[0][2])
}

func TestRead_XLSXCorruptoEsError(t *testing.T) {
	_, _, err := tabular.NewReader().Read("productos.xlsx", strings.NewReader("esto no es un zip"))
	assert.Error(t, err)
}
