package entity

import "time"

// Company representa una organización/tenant del sistema. Todos los productos,
// cargas masivas y registros de auditoría están aislados por CompanyID.
type Company struct {
	ID        string
	Name      string
	Size      int // número aproximado de empleados
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
