// Package kafka publica los eventos de auditoría en un topic para consumo
// de sistemas externos (reportería, alertas).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	appaudit "github.com/tu-usuario/almacen-api/internal/application/audit"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

var _ appaudit.EventPublisher = (*Publisher)(nil)

// Publisher envía cada entrada de auditoría como un mensaje JSON. La clave del
// mensaje es el company_id, así los eventos de una empresa quedan ordenados
// dentro de una misma partición.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher crea el productor. Los brokers vienen de la configuración.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

type auditEvent struct {
	ID           string  `json:"id"`
	ProductRef   string  `json:"product_ref"`
	ProductKey   *string `json:"product_unique_id,omitempty"`
	ActionType   string  `json:"action_type"`
	Changes      string  `json:"changes"`
	ChangedBy    string  `json:"changed_by"`
	CompanyID    string  `json:"company_id"`
	BulkUploadID *string `json:"bulk_upload_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// Publish serializa la entrada y la escribe en el topic.
func (p *Publisher) Publish(entry *entity.AuditEntry) error {
	payload, err := json.Marshal(auditEvent{
		ID:           entry.ID,
		ProductRef:   entry.ProductRef,
		ProductKey:   entry.ProductKey,
		ActionType:   entry.ActionType,
		Changes:      entry.Changes,
		ChangedBy:    entry.ChangedBy,
		CompanyID:    entry.CompanyID,
		BulkUploadID: entry.BulkUploadID,
		CreatedAt:    entry.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entry.CompanyID),
		Value: payload,
	})
}

// Close cierra el productor y drena los mensajes pendientes.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
