package audit_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appaudit "github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
	"github.com/tu-usuario/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeAuditRepo struct {
	entries []*entity.AuditEntry
	failure error
}

func (f *fakeAuditRepo) Create(e *entity.AuditEntry) error {
	if f.failure != nil {
		return f.failure
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAuditRepo) List(repository.AuditFilter) ([]*entity.AuditEntry, error) {
	return f.entries, nil
}

type fakePublisher struct {
	published []*entity.AuditEntry
	failure   error
}

func (f *fakePublisher) Publish(e *entity.AuditEntry) error {
	if f.failure != nil {
		return f.failure
	}
	f.published = append(f.published, e)
	return nil
}

func sampleProduct() *entity.Product {
	loc := "Bodega A"
	return &entity.Product{
		ID:          "prod-1",
		ProductKey:  "LAPTOP_ELECTRONICS_ACME01",
		CompanyID:   "acme01",
		ProductName: "Laptop",
		ProductType: "Electronics",
		Location:    &loc,
		Quantity:    10,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del Recorder
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordUpdate_SoloCamposModificados(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := appaudit.NewRecorder(repo, nil, logger.Nop())

	p := sampleProduct()
	oldFields := p.AuditFields()
	p.Quantity = 15

	written, err := rec.RecordUpdate(p, oldFields, "user-1", "acme01", nil)
	require.NoError(t, err)
	assert.True(t, written)
	require.Len(t, repo.entries, 1)

	entry := repo.entries[0]
	assert.Equal(t, entity.AuditActionUpdate, entry.ActionType)
	assert.Equal(t, "prod-1", entry.ProductRef)
	require.NotNil(t, entry.ProductKey)
	assert.Equal(t, "LAPTOP_ELECTRONICS_ACME01", *entry.ProductKey)
	assert.Equal(t, "user-1", entry.ChangedBy)
	assert.Nil(t, entry.BulkUploadID)

	var changes map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(entry.Changes), &changes))
	require.Len(t, changes, 1, "solo quantity debe aparecer en el diff")
	assert.EqualValues(t, 10, changes["quantity"]["old"])
	assert.EqualValues(t, 15, changes["quantity"]["new"])
}

func TestRecordUpdate_SinCambiosNoEscribeNada(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := appaudit.NewRecorder(repo, nil, logger.Nop())

	p := sampleProduct()
	oldFields := p.AuditFields()
	// Escritura idéntica: mismo estado antes y después.

	written, err := rec.RecordUpdate(p, oldFields, "user-1", "acme01", nil)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Empty(t, repo.entries, "un diff vacío nunca genera entrada")
}

func TestRecordCreate_TodoDeNilAValor(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := appaudit.NewRecorder(repo, nil, logger.Nop())

	p := sampleProduct()
	require.NoError(t, rec.RecordCreate(p, "user-1", "acme01", nil))
	require.Len(t, repo.entries, 1)
	assert.Equal(t, entity.AuditActionCreate, repo.entries[0].ActionType)

	var changes map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(repo.entries[0].Changes), &changes))
	assert.Nil(t, changes["quantity"]["old"])
	assert.EqualValues(t, 10, changes["quantity"]["new"])
	assert.Nil(t, changes["remark"]["old"])
	assert.Nil(t, changes["remark"]["new"], "un campo en blanco se crea como null -> null")
}

func TestRecordCreate_DentroDeCargaMasivaEsBulkCreate(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := appaudit.NewRecorder(repo, nil, logger.Nop())

	uploadID := "upload-1"
	require.NoError(t, rec.RecordCreate(sampleProduct(), "user-1", "acme01", &uploadID))
	require.Len(t, repo.entries, 1)
	assert.Equal(t, entity.AuditActionBulkCreate, repo.entries[0].ActionType)
	require.NotNil(t, repo.entries[0].BulkUploadID)
	assert.Equal(t, "upload-1", *repo.entries[0].BulkUploadID)
}

func TestRecordDelete_TodoDeValorANil(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := appaudit.NewRecorder(repo, nil, logger.Nop())

	require.NoError(t, rec.RecordDelete(sampleProduct(), "user-1", "acme01"))
	require.Len(t, repo.entries, 1)
	assert.Equal(t, entity.AuditActionDelete, repo.entries[0].ActionType)

	var changes map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(repo.entries[0].Changes), &changes))
	assert.EqualValues(t, 10, changes["quantity"]["old"])
	assert.Nil(t, changes["quantity"]["new"])
}

func TestRecorder_PublicacionEsBestEffort(t *testing.T) {
	repo := &fakeAuditRepo{}
	pub := &fakePublisher{failure: errors.New("broker caído")}
	rec := appaudit.NewRecorder(repo, pub, logger.Nop())

	err := rec.RecordCreate(sampleProduct(), "user-1", "acme01", nil)
	require.NoError(t, err, "un fallo del publisher no debe fallar la auditoría")
	assert.Len(t, repo.entries, 1, "la entrada en el store es la fuente de verdad")
}

func TestRecorder_PublicaCuandoHayPublisher(t *testing.T) {
	repo := &fakeAuditRepo{}
	pub := &fakePublisher{}
	rec := appaudit.NewRecorder(repo, pub, logger.Nop())

	require.NoError(t, rec.RecordCreate(sampleProduct(), "user-1", "acme01", nil))
	require.Len(t, pub.published, 1)
	assert.Equal(t, repo.entries[0].ID, pub.published[0].ID)
}

func TestRecorder_FalloDelStoreSePropaga(t *testing.T) {
	repo := &fakeAuditRepo{failure: errors.New("conexión perdida")}
	rec := appaudit.NewRecorder(repo, nil, logger.Nop())

	err := rec.RecordDelete(sampleProduct(), "user-1", "acme01")
	assert.Error(t, err)
}
