package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, product_id, company_id, product_name, product_type, location, serial_number,
		batch_number, lot_number, expiry, condition, quantity, price, payment_status,
		receiver, receiver_contact, remark, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. La violación del constraint único de
// product_id (dos escrituras compitiendo por la misma clave) se mapea a ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.ProductKey, product.CompanyID, product.ProductName, product.ProductType,
		product.Location, product.SerialNumber, product.BatchNumber, product.LotNumber,
		product.Expiry, product.Condition, product.Quantity, product.Price, product.PaymentStatus,
		product.Receiver, product.ReceiverContact, product.Remark, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID interno.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetByKey obtiene un producto por clave de negocio (única en todo el sistema).
func (r *ProductRepo) GetByKey(productKey string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productKey), "get product by key")
}

// ExistsKeyExcept verifica si la clave ya está tomada por otro registro.
func (r *ProductRepo) ExistsKeyExcept(productKey, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM products WHERE product_id = $1 AND id <> $2)`,
		productKey, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product key: %w", err)
	}
	return exists, nil
}

// Update sobreescribe los campos mutables del producto. company_id nunca se toca.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET product_id = $2, product_name = $3, product_type = $4, location = $5,
			serial_number = $6, batch_number = $7, lot_number = $8, expiry = $9, condition = $10,
			quantity = $11, price = $12, payment_status = $13, receiver = $14, receiver_contact = $15,
			remark = $16, updated_at = $17
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.ProductKey, product.ProductName, product.ProductType, product.Location,
		product.SerialNumber, product.BatchNumber, product.LotNumber, product.Expiry, product.Condition,
		product.Quantity, product.Price, product.PaymentStatus, product.Receiver, product.ReceiverContact,
		product.Remark, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListByCompany lista productos por empresa con paginación.
func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	if err := scanProduct(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

func scanProduct(row pgx.Row, p *entity.Product) error {
	return row.Scan(
		&p.ID, &p.ProductKey, &p.CompanyID, &p.ProductName, &p.ProductType, &p.Location,
		&p.SerialNumber, &p.BatchNumber, &p.LotNumber, &p.Expiry, &p.Condition, &p.Quantity,
		&p.Price, &p.PaymentStatus, &p.Receiver, &p.ReceiverContact, &p.Remark,
		&p.CreatedAt, &p.UpdatedAt,
	)
}
