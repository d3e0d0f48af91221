package ports

import "github.com/barberpro/barber-analytics-api/internal/application/dto"

// CashReportGenerator gera o relatório de fechamento de caixa em PDF.
type CashReportGenerator interface {
	CashRegisterReport(unitName string, register *dto.CashRegisterResponse) ([]byte, error)
}
