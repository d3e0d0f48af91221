package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
)

// Querier é satisfeito por *sql.DB e *sql.Tx; os repositórios funcionam com pool ou transação.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DefaultQueryTimeout limite por comando quando a configuração não informa outro.
const DefaultQueryTimeout = 10 * time.Second

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// base concentra o que todo repositório precisa: o Querier e o timeout por comando.
type base struct {
	q       Querier
	timeout time.Duration
}

func newBase(q Querier, timeout time.Duration) base {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return base{q: q, timeout: timeout}
}

func (b base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.timeout)
}

type scanner interface {
	Scan(dest ...any) error
}

// queryRow executa um SELECT/RETURNING de uma linha e aplica scan.
func (b base) queryRow(ctx context.Context, op string, qb squirrel.Sqlizer, scan func(scanner) error) error {
	query, args, err := qb.ToSql()
	if err != nil {
		return normalize(op, err)
	}
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()
	if err := scan(b.q.QueryRowContext(ctx, query, args...)); err != nil {
		return normalize(op, err)
	}
	return nil
}

// queryRows executa um SELECT de várias linhas, chamando scan para cada uma.
func (b base) queryRows(ctx context.Context, op string, qb squirrel.Sqlizer, scan func(scanner) error) error {
	query, args, err := qb.ToSql()
	if err != nil {
		return normalize(op, err)
	}
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()
	rows, err := b.q.QueryContext(ctx, query, args...)
	if err != nil {
		return normalize(op, err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return normalize(op, err)
		}
	}
	if err := rows.Err(); err != nil {
		return normalize(op, err)
	}
	return nil
}

// exec executa um comando e devolve as linhas afetadas.
func (b base) exec(ctx context.Context, op string, qb squirrel.Sqlizer) (int64, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return 0, normalize(op, err)
	}
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()
	res, err := b.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, normalize(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, normalize(op, err)
	}
	return n, nil
}

// execOne exige exatamente uma linha afetada; zero vira ErrNotFound.
func (b base) execOne(ctx context.Context, op string, qb squirrel.Sqlizer) error {
	n, err := b.exec(ctx, op, qb)
	if err != nil {
		return err
	}
	if n == 0 {
		return normalize(op, sql.ErrNoRows)
	}
	return nil
}

// count executa um SELECT COUNT(*) com os mesmos filtros da listagem.
func (b base) count(ctx context.Context, op string, qb squirrel.SelectBuilder) (int, error) {
	var total int
	err := b.queryRow(ctx, op, qb, func(s scanner) error { return s.Scan(&total) })
	return total, err
}

// page aplica limite e deslocamento (limite padrão 20).
func page(qb squirrel.SelectBuilder, limit, offset int) squirrel.SelectBuilder {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return qb.Limit(uint64(limit)).Offset(uint64(offset))
}

// ilike monta a busca textual em várias colunas.
func ilike(term string, columns ...string) squirrel.Or {
	or := squirrel.Or{}
	for _, c := range columns {
		or = append(or, squirrel.ILike{c: "%" + term + "%"})
	}
	return or
}
