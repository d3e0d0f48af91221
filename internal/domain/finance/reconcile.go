// Package finance contém as regras puras de conciliação bancária.
package finance

import (
	"sort"
	"time"

	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/pkg/format"
)

// DefaultDateTolerance janela padrão entre a data do lançamento e o vencimento da despesa.
const DefaultDateTolerance = 3 * 24 * time.Hour

// Match associa uma linha de extrato a uma despesa.
type Match struct {
	StatementID string
	ExpenseID   string
	DaysApart   int
	Similarity  float64
}

type candidate struct {
	expense *entity.Expense
	gap     time.Duration
	sim     float64
}

// MatchStatements associa débitos pendentes a despesas pendentes de mesmo valor.
// Vence o vencimento mais próximo da data do lançamento; empate decide pela descrição.
// Cada despesa é usada no máximo uma vez e linhas sem candidato ficam de fora.
func MatchStatements(lines []*entity.BankStatement, expenses []*entity.Expense, tolerance time.Duration) []Match {
	sorted := make([]*entity.BankStatement, 0, len(lines))
	for _, l := range lines {
		if l.Type == entity.StatementDebito && l.Status == entity.StatementPendente {
			sorted = append(sorted, l)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TransactionDate.Before(sorted[j].TransactionDate)
	})

	used := make(map[string]bool)
	var matches []Match
	for _, line := range sorted {
		var best *candidate
		for _, exp := range expenses {
			if used[exp.ID] || !payable(exp) || !exp.Value.Equal(line.Amount) {
				continue
			}
			gap := absDuration(line.TransactionDate.Sub(exp.DueDate))
			if gap > tolerance {
				continue
			}
			c := &candidate{expense: exp, gap: gap, sim: format.Similarity(line.Description, exp.Description)}
			if best == nil || c.gap < best.gap || (c.gap == best.gap && c.sim > best.sim) {
				best = c
			}
		}
		if best == nil {
			continue
		}
		used[best.expense.ID] = true
		matches = append(matches, Match{
			StatementID: line.ID,
			ExpenseID:   best.expense.ID,
			DaysApart:   int(best.gap.Hours() / 24),
			Similarity:  best.sim,
		})
	}
	return matches
}

func payable(e *entity.Expense) bool {
	return e.Status == entity.ExpensePendente || e.Status == entity.ExpenseAtrasado
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
