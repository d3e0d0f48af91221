package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/barberpro/barber-analytics-api/internal/application/dto"
	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/finance"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
	"github.com/barberpro/barber-analytics-api/pkg/format"
)

// StatementUseCase importação de extrato e conciliação com despesas.
type StatementUseCase struct {
	repo     repository.BankStatementRepository
	expenses repository.ExpenseRepository
	tx       repository.TxRunner
	parser   ports.StatementParser
	out      reporter
}

// NewStatementUseCase constrói o caso de uso.
func NewStatementUseCase(repo repository.BankStatementRepository, expenses repository.ExpenseRepository, tx repository.TxRunner, parser ports.StatementParser, rep Reporting) *StatementUseCase {
	return &StatementUseCase{repo: repo, expenses: expenses, tx: tx, parser: parser, out: newReporter(rep)}
}

// ExternalID identificador estável de uma linha para deduplicar reimportações.
func ExternalID(bankAccount string, date time.Time, amount fmt.Stringer, description string) string {
	sum := sha256.Sum256([]byte(bankAccount + "|" + date.Format("2006-01-02") + "|" + amount.String() + "|" + format.Normalize(description)))
	return hex.EncodeToString(sum[:])
}

// Import lê o arquivo e grava as linhas novas. Linhas já importadas são contadas como duplicadas.
func (uc *StatementUseCase) Import(ctx context.Context, a Actor, bankAccount, fileName string, r io.Reader) (*dto.ImportStatementResponse, error) {
	var res *dto.ImportStatementResponse
	err := a.authorize(domain.PermStatementWrite)
	if err == nil {
		res, err = uc.importFile(ctx, a, bankAccount, fileName, r)
	}
	ev := event{entity: "bank_statement", action: "import", after: res}
	if res != nil {
		ev.message = fmt.Sprintf("Extrato importado: %d novas, %d duplicadas, %d rejeitadas.", res.Imported, res.Duplicated, len(res.Rejected))
	}
	uc.out.done(ctx, a, ev, err)
	return res, err
}

func (uc *StatementUseCase) importFile(ctx context.Context, a Actor, bankAccount, fileName string, r io.Reader) (*dto.ImportStatementResponse, error) {
	meta := dto.ImportStatementDTO{BankAccount: bankAccount, FileName: fileName}
	if err := meta.Validate().Err(); err != nil {
		return nil, err
	}
	lines, rowErrs, err := uc.parser.Parse(fileName, r)
	if err != nil {
		return nil, err
	}
	res := &dto.ImportStatementResponse{Read: len(lines) + len(rowErrs), Rejected: []string{}}
	for _, re := range rowErrs {
		res.Rejected = append(res.Rejected, fmt.Sprintf("linha %d: %s", re.Row, re.Reason))
	}
	for _, l := range lines {
		in := toStatementLineDTO(a.UnitID, bankAccount, l)
		if vr := in.Validate(); !vr.IsValid {
			res.Rejected = append(res.Rejected, fmt.Sprintf("linha %d: %s", l.Row, vr.Errors[0]))
			continue
		}
		values := in.ToObject()
		values["imported_by"] = a.UserID
		inserted, err := uc.repo.Insert(ctx, values)
		if err != nil {
			return nil, err
		}
		if inserted {
			res.Imported++
		} else {
			res.Duplicated++
		}
	}
	return res, nil
}

func toStatementLineDTO(unitID, bankAccount string, l ports.StatementLine) *dto.BankStatementLineDTO {
	kind := entity.StatementCredito
	if l.Amount.IsNegative() {
		kind = entity.StatementDebito
	}
	amount := l.Amount.Abs()
	date := l.Date
	return &dto.BankStatementLineDTO{
		UnitID:          unitID,
		BankAccount:     bankAccount,
		TransactionDate: &date,
		Description:     l.Description,
		Amount:          &amount,
		Type:            kind,
		ExternalID:      ExternalID(bankAccount, l.Date, l.Amount, l.Description),
	}
}

// Reconcile concilia débitos pendentes com despesas em aberto. Cada par é gravado numa
// transação: a linha vira CONCILIADO e a despesa PAGO na data do lançamento.
func (uc *StatementUseCase) Reconcile(ctx context.Context, a Actor) (*dto.ReconcileResponse, error) {
	var res *dto.ReconcileResponse
	err := a.authorize(domain.PermStatementWrite)
	if err == nil {
		res, err = uc.reconcile(ctx, a)
	}
	ev := event{entity: "bank_statement", action: "reconcile", after: res}
	if res != nil {
		ev.message = fmt.Sprintf("%d lançamentos conciliados.", len(res.Matched))
	}
	uc.out.done(ctx, a, ev, err)
	return res, err
}

func (uc *StatementUseCase) reconcile(ctx context.Context, a Actor) (*dto.ReconcileResponse, error) {
	lines, err := uc.repo.ListPendingDebits(ctx, a.UnitID)
	if err != nil {
		return nil, err
	}
	res := &dto.ReconcileResponse{Matched: []dto.ReconcileMatchResponse{}}
	if len(lines) == 0 {
		return res, nil
	}
	from, to := lines[0].TransactionDate, lines[0].TransactionDate
	byID := make(map[string]*entity.BankStatement, len(lines))
	for _, l := range lines {
		byID[l.ID] = l
		if l.TransactionDate.Before(from) {
			from = l.TransactionDate
		}
		if l.TransactionDate.After(to) {
			to = l.TransactionDate
		}
	}
	expenses, err := uc.expenses.ListOpenDue(ctx, a.UnitID, from.Add(-finance.DefaultDateTolerance), to.Add(finance.DefaultDateTolerance))
	if err != nil {
		return nil, err
	}

	for _, m := range finance.MatchStatements(lines, expenses, finance.DefaultDateTolerance) {
		paidAt := byID[m.StatementID].TransactionDate
		err := uc.tx.Run(ctx, func(r repository.Repos) error {
			if err := r.Statements.MarkReconciled(ctx, a.UnitID, m.StatementID, m.ExpenseID); err != nil {
				return err
			}
			return r.Expenses.MarkPaid(ctx, a.UnitID, m.ExpenseID, paidAt, "TRANSFERENCIA")
		})
		// despesa paga ou cancelada depois da listagem: a linha continua pendente
		if errors.Is(err, domain.ErrConflict) {
			uc.out.Log.Info().Str("statement_id", m.StatementID).Str("expense_id", m.ExpenseID).Msg("despesa deixou de estar em aberto; conciliação ignorada")
			continue
		}
		if err != nil {
			return nil, err
		}
		res.Matched = append(res.Matched, dto.ReconcileMatchResponse{
			StatementID: m.StatementID,
			ExpenseID:   m.ExpenseID,
			DaysApart:   m.DaysApart,
			Similarity:  m.Similarity,
		})
	}
	res.Pending = len(lines) - len(res.Matched)
	return res, nil
}

// Ignore tira a linha da conciliação.
func (uc *StatementUseCase) Ignore(ctx context.Context, a Actor, id string) error {
	err := a.authorize(domain.PermStatementWrite)
	if err == nil {
		err = uc.ignore(ctx, a, id)
	}
	uc.out.done(ctx, a, event{entity: "bank_statement", action: "ignore", entityID: id, message: "Lançamento ignorado."}, err)
	return err
}

func (uc *StatementUseCase) ignore(ctx context.Context, a Actor, id string) error {
	line, err := uc.repo.FindByID(ctx, a.UnitID, id)
	if err != nil {
		return err
	}
	if line.Status != entity.StatementPendente {
		return domain.Conflict("Lançamento já está " + line.Status)
	}
	return uc.repo.SetStatus(ctx, a.UnitID, id, entity.StatementIgnorado)
}

// List linhas do extrato com filtros.
func (uc *StatementUseCase) List(ctx context.Context, a Actor, f dto.StatementFilter) (*dto.BankStatementListResponse, error) {
	if err := a.authorize(domain.PermStatementRead); err != nil {
		return nil, err
	}
	pg := f.Page.Normalize()
	list, total, err := uc.repo.List(ctx, a.UnitID, repository.StatementFilter{
		Status: f.Status,
		Type:   f.Type,
		From:   f.From,
		To:     f.To,
		Limit:  pg.Limit,
		Offset: pg.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.BankStatementResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.BankStatementResponse{
			ID:                  s.ID,
			UnitID:              s.UnitID,
			BankAccount:         s.BankAccount,
			TransactionDate:     s.TransactionDate,
			Description:         s.Description,
			Amount:              s.Amount,
			Type:                s.Type,
			ExternalID:          s.ExternalID,
			Status:              s.Status,
			ReconciledExpenseID: s.ReconciledExpenseID,
			CreatedAt:           s.CreatedAt,
		})
	}
	return &dto.BankStatementListResponse{Items: items, Page: dto.PageResponse{Limit: pg.Limit, Offset: pg.Offset, Total: total}}, nil
}
