package entity

import (
	"encoding/json"
	"time"
)

// AuditLog registro de auditoria de uma operação (sucesso ou falha).
type AuditLog struct {
	ID        string
	UnitID    string
	UserID    string
	Entity    string
	EntityID  *string
	Action    string
	Success   bool
	ErrorKind *string
	Before    json.RawMessage
	After     json.RawMessage
	CreatedAt time.Time
}
