package bulkimport

import (
	"io"

	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta el trabajo de una sola fila dentro de su propia transacción.
// El commit es por fila, no por archivo: una fila fallida se revierte sola y
// las filas ya confirmadas quedan aplicadas (progreso parcial por diseño).
type TxRunner interface {
	RunRow(fn func(products repository.ProductRepository) error) error
}

// TabularReader parsea un archivo tabular (CSV o XLSX según extensión) en una
// fila de encabezados y una grilla de celdas. Las celdas conservan el tipo
// nativo del origen (string, float64, bool, nil) para el Field Normalizer.
type TabularReader interface {
	Read(filename string, r io.Reader) (headers []string, rows [][]any, err error)
}
