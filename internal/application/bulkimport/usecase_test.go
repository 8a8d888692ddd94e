package bulkimport_test

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appaudit "github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/application/bulkimport"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
	"github.com/tu-usuario/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUploadRepo struct {
	uploads map[string]*entity.BulkUpload
}

func newFakeUploadRepo() *fakeUploadRepo {
	return &fakeUploadRepo{uploads: map[string]*entity.BulkUpload{}}
}

func (f *fakeUploadRepo) Create(u *entity.BulkUpload) error {
	cp := *u
	f.uploads[u.ID] = &cp
	return nil
}

func (f *fakeUploadRepo) Update(u *entity.BulkUpload) error {
	cp := *u
	f.uploads[u.ID] = &cp
	return nil
}

func (f *fakeUploadRepo) GetByID(id string) (*entity.BulkUpload, error) {
	return f.uploads[id], nil
}

func (f *fakeUploadRepo) ListByCompany(string, int, int) ([]*entity.BulkUpload, error) {
	out := make([]*entity.BulkUpload, 0, len(f.uploads))
	for _, u := range f.uploads {
		out = append(out, u)
	}
	return out, nil
}

type fakeProductRepo struct {
	byKey      map[string]*entity.Product
	failCreate error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byKey: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.byKey[p.ProductKey] = p
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range f.byKey {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByKey(key string) (*entity.Product, error) {
	return f.byKey[key], nil
}

func (f *fakeProductRepo) ExistsKeyExcept(key, excludeID string) (bool, error) {
	p := f.byKey[key]
	return p != nil && p.ID != excludeID, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	f.byKey[p.ProductKey] = p
	return nil
}

func (f *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Delete(id string) error {
	for k, p := range f.byKey {
		if p.ID == id {
			delete(f.byKey, k)
		}
	}
	return nil
}

// fakeTxRunner ejecuta la operación directamente contra el repo dado, sin
// transacción real: el contrato por fila es el mismo.
type fakeTxRunner struct {
	products repository.ProductRepository
}

func (f *fakeTxRunner) RunRow(fn func(repository.ProductRepository) error) error {
	return fn(f.products)
}

// fakeReader devuelve una grilla fija o un error de parseo.
type fakeReader struct {
	headers []string
	rows    [][]any
	err     error
}

func (f *fakeReader) Read(string, io.Reader) ([]string, [][]any, error) {
	return f.headers, f.rows, f.err
}

type fakeAuditRepo struct {
	entries []*entity.AuditEntry
}

func (f *fakeAuditRepo) Create(e *entity.AuditEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAuditRepo) List(repository.AuditFilter) ([]*entity.AuditEntry, error) {
	return f.entries, nil
}

type engine struct {
	uc       *bulkimport.UseCase
	uploads  *fakeUploadRepo
	products *fakeProductRepo
	audits   *fakeAuditRepo
}

func newEngine(reader *fakeReader) *engine {
	uploads := newFakeUploadRepo()
	products := newFakeProductRepo()
	audits := &fakeAuditRepo{}
	recorder := appaudit.NewRecorder(audits, nil, logger.Nop())
	uc := bulkimport.NewUseCase(uploads, products, &fakeTxRunner{products: products}, reader, recorder, logger.Nop())
	return &engine{uc: uc, uploads: uploads, products: products, audits: audits}
}

func process(t *testing.T, e *engine, action string) *entity.BulkUpload {
	t.Helper()
	resp, err := e.uc.Process("productos.csv", strings.NewReader(""), "manager-1", "acme01", action)
	require.NoError(t, err)
	stored := e.uploads.uploads[resp.ID]
	require.NotNil(t, stored, "el registro de carga debe quedar persistido")
	return stored
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del motor de carga masiva
// ──────────────────────────────────────────────────────────────────────────────

func TestProcess_MezclaDeValidasEInvalidasEsPartial(t *testing.T) {
	reader := &fakeReader{
		headers: []string{"ProductName", "ProductType", "Quantity"},
		rows: [][]any{
			{"Laptop", "Electronics", "10"},
			{"Mouse", "Electronics", "5"},
			{"", "Electronics", "3"},          // sin nombre
			{"Teclado", "Electronics", "uno"}, // cantidad no numérica
			{"Monitor", "Electronics", "2"},
		},
	}
	e := newEngine(reader)
	upload := process(t, e, entity.DuplicateActionSkip)

	assert.Equal(t, entity.UploadStatusPartial, upload.Status)
	assert.Equal(t, 5, upload.TotalRecords)
	assert.Equal(t, 3, upload.SuccessfulRecords)
	assert.Equal(t, 2, upload.FailedRecords)
	assert.Equal(t, 0, upload.SkippedRecords)
	assert.Equal(t, 0, upload.UpdatedRecords)

	require.NotNil(t, upload.ErrorDetails)
	var errs []string
	require.NoError(t, json.Unmarshal([]byte(*upload.ErrorDetails), &errs))
	require.Len(t, errs, 2)
	// Los números de fila cuentan la fila de encabezados: la tercera fila de
	// datos es la fila 4 del archivo.
	assert.Contains(t, errs[0], "fila 4")
	assert.Contains(t, errs[1], "fila 5")
}

func TestProcess_TodasValidasEsCompleted(t *testing.T) {
	reader := &fakeReader{
		headers: []string{"ProductName", "ProductType", "Quantity", "Price"},
		rows: [][]any{
			{"Laptop", "Electronics", "10", "1499.50"},
			{"Mouse", "Electronics", "5", ""},
		},
	}
	e := newEngine(reader)
	upload := process(t, e, entity.DuplicateActionSkip)

	assert.Equal(t, entity.UploadStatusCompleted, upload.Status)
	assert.Equal(t, 2, upload.SuccessfulRecords)
	assert.Nil(t, upload.ErrorDetails)
	assert.Len(t, e.products.byKey, 2)

	// Cada fila creada genera su entrada de auditoría de tipo bulk_create.
	require.Len(t, e.audits.entries, 2)
	for _, entry := range e.audits.entries {
		assert.Equal(t, entity.AuditActionBulkCreate, entry.ActionType)
		require.NotNil(t, entry.BulkUploadID)
		assert.Equal(t, upload.ID, *entry.BulkUploadID)
	}
}

func TestProcess_TodasInvalidasEsFailed(t *testing.T) {
	reader := &fakeReader{
		headers: []string{"ProductName", "ProductType", "Quantity"},
		rows: [][]any{
			{"", "Electronics", "1"},
			{"Laptop", "", "1"},
		},
	}
	e := newEngine(reader)
	upload := process(t, e, entity.DuplicateActionSkip)

	assert.Equal(t, entity.UploadStatusFailed, upload.Status)
	assert.Equal(t, 2, upload.FailedRecords)
	assert.Equal(t, 0, upload.SuccessfulRecords)
}

func TestProcess_DuplicadoConSkipNoTocaElExistente(t *testing.T) {
	reader := &fakeReader{
		headers: []string{"ProductName", "ProductType", "Quantity"},
		rows: [][]any{
			{"Laptop", "Electronics", "99"},
		},
	}
	e := newEngine(reader)
	// Producto preexistente con la misma clave de negocio.
	e.products.byKey["LAPTOP_ELECTRONICS_ACME01"] = &entity.Product{
		ID:          "prod-1",
		ProductKey:  "LAPTOP_ELECTRONICS_ACME01",
		CompanyID:   "acme01",
		ProductName: "Laptop",
		ProductType: "Electronics",
		Quantity:    10,
	}

	upload := process(t, e, entity.DuplicateActionSkip)

	assert.Equal(t, entity.UploadStatusCompleted, upload.Status)
	assert.Equal(t, 1, upload.SkippedRecords)
	assert.Equal(t, 0, upload.SuccessfulRecords)
	assert.Equal(t, 10, e.products.byKey["LAPTOP_ELECTRONICS_ACME01"].Quantity,
		"skip no debe modificar el registro existente")
	assert.Empty(t, e.audits.entries, "una fila saltada no genera auditoría")
}

func TestProcess_DuplicadoConUpdateSobreescribeYAudita(t *testing.T) {
	reader := &fakeReader{
		headers: []string{"ProductName", "ProductType", "Quantity"},
		rows: [][]any{
			{"Laptop", "Electronics", "99"},
		},
	}
	e := newEngine(reader)
	e.products.byKey["LAPTOP_ELECTRONICS_ACME01"] = &entity.Product{
		ID:          "prod-1",
		ProductKey:  "LAPTOP_ELECTRONICS_ACME01",
		CompanyID:   "acme01",
		ProductName: "Laptop",
		ProductType: "Electronics",
		Quantity:    10,
	}

	upload := process(t, e, entity.DuplicateActionUpdate)

	assert.Equal(t, entity.UploadStatusCompleted, upload.Status)
	assert.Equal(t, 1, upload.UpdatedRecords)
	assert.Equal(t, 99, e.products.byKey["LAPTOP_ELECTRONICS_ACME01"].Quantity)

	require.Len(t, e.audits.entries, 1)
	entry := e.audits.entries[0]
	assert.Equal(t, entity.AuditActionBulkUpdate, entry.ActionType)

	var changes map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(entry.Changes), &changes))
	require.Contains(t, changes, "quantity")
	assert.EqualValues(t, 10, changes["quantity"]["old"])
	assert.EqualValues(t, 99, changes["quantity"]["new"])
}

func TestProcess_ColumnasFaltantesAbortaElBatch(t *testing.T) {
	reader := &fakeReader{
		headers: []string{"ProductName", "Price"},
		rows: [][]any{
			{"Laptop", "100"},
		},
	}
	e := newEngine(reader)
	upload := process(t, e, entity.DuplicateActionSkip)

	assert.Equal(t, entity.UploadStatusFailed, upload.Status)
	assert.Equal(t, 0, upload.TotalRecords, "no se procesa ninguna fila")
	require.NotNil(t, upload.ErrorDetails)
	assert.Contains(t, *upload.ErrorDetails, "columnas requeridas faltantes")
	assert.Contains(t, *upload.ErrorDetails, "product_type")
	assert.Contains(t, *upload.ErrorDetails, "quantity")
}

func TestProcess_ArchivoNoParseableAbortaElBatch(t *testing.T) {
	reader := &fakeReader{err: errors.New("zip corrupto")}
	e := newEngine(reader)

	resp, err := e.uc.Process("productos.xlsx", strings.NewReader(""), "manager-1", "acme01", entity.DuplicateActionSkip)
	require.NoError(t, err, "un archivo ilegible es un resultado, no un error de la operación")
	assert.Equal(t, entity.UploadStatusFailed, resp.Status)
	require.NotNil(t, resp.ErrorDetails)
	assert.Contains(t, *resp.ErrorDetails, "archivo no parseable")
}

func TestProcess_FalloDeFilaNoDetieneLasSiguientes(t *testing.T) {
	reader := &fakeReader{
		headers: []string{"ProductName", "ProductType", "Quantity"},
		rows: [][]any{
			{"Laptop", "Electronics", "1"},
			{"Mouse", "Electronics", "2"},
		},
	}
	e := newEngine(reader)
	// El store rechaza el primer insert y luego se recupera.
	e.products.failCreate = errors.New("deadlock")

	resp, err := e.uc.Process("productos.csv", strings.NewReader(""), "manager-1", "acme01", entity.DuplicateActionSkip)
	require.NoError(t, err)
	// Ambas filas fallaron con el mismo error del store.
	assert.Equal(t, entity.UploadStatusFailed, resp.Status)
	assert.Equal(t, 2, resp.FailedRecords)
}

func TestProcess_LimiteDeErroresAlmacenados(t *testing.T) {
	rows := make([][]any, 0, entity.MaxStoredErrors+20)
	for i := 0; i < entity.MaxStoredErrors+20; i++ {
		rows = append(rows, []any{"", "Electronics", "1"}) // todas sin nombre
	}
	reader := &fakeReader{
		headers: []string{"ProductName", "ProductType", "Quantity"},
		rows:    rows,
	}
	e := newEngine(reader)
	upload := process(t, e, entity.DuplicateActionSkip)

	assert.Equal(t, entity.MaxStoredErrors+20, upload.FailedRecords,
		"el contador refleja todos los fallos aunque la lista se trunque")
	require.NotNil(t, upload.ErrorDetails)
	var errs []string
	require.NoError(t, json.Unmarshal([]byte(*upload.ErrorDetails), &errs))
	assert.Len(t, errs, entity.MaxStoredErrors)
}

func TestGetByID_OtroTenantNoExiste(t *testing.T) {
	uploads := newFakeUploadRepo()
	require.NoError(t, uploads.Create(&entity.BulkUpload{ID: "u1", CompanyID: "acme01"}))
	statusUC := bulkimport.NewStatusUseCase(uploads)

	otro := "otra-empresa"
	_, err := statusUC.GetByID("u1", &otro)
	assert.Error(t, err, "un registro de otro tenant se reporta como inexistente")

	mismo := "acme01"
	got, err := statusUC.GetByID("u1", &mismo)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	got, err = statusUC.GetByID("u1", nil)
	require.NoError(t, err, "sin filtro de tenant (admin) el registro es visible")
	assert.Equal(t, "u1", got.ID)
}
