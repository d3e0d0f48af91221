package ports

import "context"

// AuditEntry registro de uma operação de escrita, bem-sucedida ou não.
type AuditEntry struct {
	UnitID    string
	UserID    string
	Entity    string
	EntityID  string
	Action    string
	Success   bool
	ErrorKind string
	Before    any
	After     any
}

// AuditLogger grava a trilha de auditoria.
type AuditLogger interface {
	Record(ctx context.Context, e AuditEntry) error
}
