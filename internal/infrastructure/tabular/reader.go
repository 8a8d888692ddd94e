// Package tabular parsea archivos CSV y XLSX en una grilla de celdas tipadas
// para el pipeline de carga masiva.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tu-usuario/almacen-api/internal/application/bulkimport"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var _ bulkimport.TabularReader = (*Reader)(nil)

// Reader elige el parser según la extensión del archivo (.csv o .xlsx).
// Las celdas XLSX conservan su tipo nativo (float64, bool); las CSV son
// siempre strings y los normalizadores hacen el resto.
type Reader struct{}

// NewReader construye el lector.
func NewReader() *Reader {
	return &Reader{}
}

// Read parsea el archivo y devuelve la fila de encabezados y las filas de datos.
func (rd *Reader) Read(filename string, r io.Reader) ([]string, [][]any, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(r)
	case ".xlsx":
		return readXLSX(r)
	default:
		return nil, nil, fmt.Errorf("extensión no soportada: %s", filepath.Ext(filename))
	}
}

// readCSV lee el archivo completo. Si los bytes no son UTF-8 válido se asume
// Windows-1252 (los CSV exportados por Excel rara vez vienen en UTF-8).
func readCSV(r io.Reader) ([]string, [][]any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("leer archivo: %w", err)
	}
	if !utf8.Valid(raw) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
		if err != nil {
			return nil, nil, fmt.Errorf("decodificar archivo: %w", err)
		}
		raw = decoded
	}
	// BOM de Excel
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1 // filas cortas/largas se toleran; la validación de fila decide
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parsear CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("archivo vacío")
	}
	headers := records[0]
	rows := make([][]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		cells := make([]any, len(rec))
		for i, v := range rec {
			cells[i] = v
		}
		rows = append(rows, cells)
	}
	return headers, rows, nil
}

// readXLSX lee la primera hoja del libro. Los tipos de celda se respetan:
// numéricas como float64, booleanas como bool, el resto como string.
func readXLSX(r io.Reader) ([]string, [][]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("abrir XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("libro sin hojas")
	}
	sheet := sheets[0]

	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("leer hoja %s: %w", sheet, err)
	}
	if len(grid) == 0 {
		return nil, nil, fmt.Errorf("archivo vacío")
	}

	headers := grid[0]
	rows := make([][]any, 0, len(grid)-1)
	for rowIdx, rec := range grid[1:] {
		cells := make([]any, len(rec))
		for colIdx, v := range rec {
			cells[colIdx] = typedCell(f, sheet, colIdx+1, rowIdx+2, v)
		}
		rows = append(rows, cells)
	}
	return headers, rows, nil
}

// typedCell devuelve el valor de la celda con su tipo nativo cuando se puede
// determinar; ante cualquier duda, el string formateado.
func typedCell(f *excelize.File, sheet string, col, row int, value string) any {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return value
	}
	ctype, err := f.GetCellType(sheet, axis)
	if err != nil {
		return value
	}
	switch ctype {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		// Las celdas numéricas no llevan atributo de tipo en el XML, por eso
		// también se intenta en Unset. Si no parsea, era texto con formato.
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return n
		}
	case excelize.CellTypeBool:
		return strings.EqualFold(value, "TRUE")
	}
	return value
}
