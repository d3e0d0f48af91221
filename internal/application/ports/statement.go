package ports

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine linha lida de um extrato bancário. Amount vem com sinal: negativo é débito.
type StatementLine struct {
	Row         int
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// StatementRowError linha do arquivo que não pôde ser interpretada.
type StatementRowError struct {
	Row    int
	Reason string
}

// StatementParser lê extratos .xlsx e .csv.
type StatementParser interface {
	Parse(fileName string, r io.Reader) ([]StatementLine, []StatementRowError, error)
}
