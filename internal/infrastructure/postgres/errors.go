package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/barberpro/barber-analytics-api/internal/domain"
)

// Restrição que o trigger de movimentações viola quando o saldo ficaria negativo.
const stockConstraint = "products_current_stock_non_negative"

// Códigos SQLSTATE tratados.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgInsufficientPriv    = "42501"
	pgRaiseException      = "P0001"
)

// normalize converte erros de driver em erros da taxonomia de domínio.
// Erros que já são de domínio passam intactos.
func normalize(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Wrap(domain.ErrNotFound, "%s: %w", op, err)
	}
	if isNetwork(err) {
		return domain.Wrap(domain.ErrNetwork, "%s: %w", op, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return domain.Wrap(domain.ErrUnknown, "%s: %w", op, err)
	}
	switch {
	case pgErr.Code == pgUniqueViolation:
		return domain.Wrap(domain.ErrDuplicate, "%s: %w", op, err)
	case pgErr.Code == pgForeignKeyViolation:
		return domain.Wrap(domain.ErrForeignKey, "%s: %w", op, err)
	case pgErr.Code == pgCheckViolation && pgErr.ConstraintName == stockConstraint:
		return domain.Wrap(domain.ErrInsufficientStock, "%s: %w", op, err)
	case pgErr.Code == pgCheckViolation:
		e := domain.Wrap(domain.ErrConstraint, "%s: %w", op, err)
		e.Code, e.Message = "CHECK", domain.MsgCheck
		return e
	case pgErr.Code == pgNotNullViolation:
		e := domain.Wrap(domain.ErrConstraint, "%s: %w", op, err)
		e.Code, e.Message = "NOT_NULL", domain.MsgNotNull
		return e
	case pgErr.Code == pgInsufficientPriv:
		return domain.Wrap(domain.ErrPermissionDenied, "%s: %w", op, err)
	case pgErr.Code == pgRaiseException:
		// mensagens de RAISE EXCEPTION dos triggers já são escritas para o usuário
		e := domain.Wrap(domain.ErrConflict, "%s: %w", op, err)
		e.Message = pgErr.Message
		return e
	case strings.HasPrefix(pgErr.Code, "08"):
		return domain.Wrap(domain.ErrNetwork, "%s: %w", op, err)
	}
	return domain.Wrap(domain.ErrUnknown, "%s: %w", op, err)
}

func isNetwork(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
