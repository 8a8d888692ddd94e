package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	domainaudit "github.com/tu-usuario/almacen-api/internal/domain/audit"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
	"github.com/tu-usuario/almacen-api/pkg/logger"
)

// EventPublisher puerto de publicación de eventos de auditoría (ej. Kafka).
// La publicación es best-effort: un fallo se registra y no afecta la mutación.
type EventPublisher interface {
	Publish(entry *entity.AuditEntry) error
}

// Recorder persiste entradas de auditoría a partir del diff de campos de una
// entidad Auditable. Se invoca siempre después del commit de la mutación que
// describe: si la mutación falla, nunca se escribe auditoría.
type Recorder struct {
	repo      repository.AuditRepository
	publisher EventPublisher // nil = publicación deshabilitada
	log       *logger.Logger
}

// NewRecorder construye el recorder. publisher puede ser nil.
func NewRecorder(repo repository.AuditRepository, publisher EventPublisher, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, publisher: publisher, log: log}
}

// RecordCreate registra una creación: todo campo pasa de null a su valor.
// Si bulkUploadID no es nil la acción queda como bulk_create.
func (r *Recorder) RecordCreate(subject domainaudit.Auditable, actorID, companyID string, bulkUploadID *string) error {
	changes := domainaudit.CreateChanges(subject.AuditFields())
	action := entity.AuditActionCreate
	if bulkUploadID != nil {
		action = entity.AuditActionBulkCreate
	}
	return r.write(subject, action, changes, actorID, companyID, bulkUploadID)
}

// RecordUpdate registra una actualización con solo los campos que difieren.
// Si ningún campo cambió no se escribe nada y devuelve (false, nil): el log de
// auditoría nunca contiene entradas con diff vacío.
func (r *Recorder) RecordUpdate(subject domainaudit.Auditable, oldFields map[string]any, actorID, companyID string, bulkUploadID *string) (bool, error) {
	changes := domainaudit.ComputeChanges(oldFields, subject.AuditFields())
	if len(changes) == 0 {
		return false, nil
	}
	action := entity.AuditActionUpdate
	if bulkUploadID != nil {
		action = entity.AuditActionBulkUpdate
	}
	if err := r.write(subject, action, changes, actorID, companyID, bulkUploadID); err != nil {
		return false, err
	}
	return true, nil
}

// RecordDelete registra un borrado: todo campo pasa de su valor a null.
func (r *Recorder) RecordDelete(subject domainaudit.Auditable, actorID, companyID string) error {
	changes := domainaudit.DeleteChanges(subject.AuditFields())
	return r.write(subject, entity.AuditActionDelete, changes, actorID, companyID, nil)
}

func (r *Recorder) write(subject domainaudit.Auditable, action string, changes map[string]domainaudit.FieldChange, actorID, companyID string, bulkUploadID *string) error {
	payload, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("serializar cambios de auditoría: %w", err)
	}
	id, key := subject.AuditRef()
	entry := &entity.AuditEntry{
		ID:           uuid.New().String(),
		ProductRef:   id,
		ProductKey:   &key,
		ActionType:   action,
		Changes:      string(payload),
		ChangedBy:    actorID,
		CompanyID:    companyID,
		BulkUploadID: bulkUploadID,
		CreatedAt:    time.Now(),
	}
	if err := r.repo.Create(entry); err != nil {
		return err
	}
	if r.publisher != nil {
		if err := r.publisher.Publish(entry); err != nil {
			// El log en Postgres es la fuente de verdad; el stream es best-effort.
			r.log.Warn().Err(err).Str("audit_id", entry.ID).Msg("publicación de evento de auditoría falló")
		}
	}
	return nil
}
