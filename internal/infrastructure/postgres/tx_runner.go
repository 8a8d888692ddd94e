package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/almacen-api/internal/application/bulkimport"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ bulkimport.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el trabajo de una fila de carga masiva dentro de su propia
// transacción PostgreSQL. El commit es por fila: si fn falla solo se revierte
// esa fila y el motor continúa con la siguiente.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRow inicia una transacción, ejecuta fn con un ProductRepository atado a la
// tx y hace Commit o Rollback.
func (r *TxRunner) RunRow(fn func(products repository.ProductRepository) error) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
