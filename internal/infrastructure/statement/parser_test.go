package statement

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/barberpro/barber-analytics-api/internal/domain"
)

func TestParse_CSVPontoEVirgula(t *testing.T) {
	src := "Data;Histórico;Valor\n" +
		"05/03/2025;PAGAMENTO CONTA LUZ;-189,90\n" +
		"06/03/2025;PIX RECEBIDO;1.250,00\n"

	lines, rowErrs, err := NewParser().Parse("extrato.csv", strings.NewReader(src))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, lines, 2)

	assert.Equal(t, 2, lines[0].Row)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), lines[0].Date)
	assert.Equal(t, "PAGAMENTO CONTA LUZ", lines[0].Description)
	assert.True(t, lines[0].Amount.Equal(decimal.RequireFromString("-189.90")))
	assert.True(t, lines[1].Amount.Equal(decimal.RequireFromString("1250")))
}

func TestParse_CSVVirgulaComColunaTipo(t *testing.T) {
	src := "data,descricao,valor,tipo\n" +
		"2025-03-05,Aluguel,2500.00,D\n" +
		"2025-03-06,Estorno,10.00,C\n"

	lines, _, err := NewParser().Parse("extrato.CSV", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Amount.Equal(decimal.RequireFromString("-2500")))
	assert.True(t, lines[1].Amount.IsPositive())
}

func TestParse_CSVLatin1(t *testing.T) {
	utf := "Data;Descrição;Valor\n05/03/2025;Manutenção ar-condicionado;-300,00\n"
	latin, err := charmap.ISO8859_1.NewEncoder().String(utf)
	require.NoError(t, err)

	lines, _, err := NewParser().Parse("extrato.csv", strings.NewReader(latin))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Manutenção ar-condicionado", lines[0].Description)
}

func TestParse_LinhasInvalidasSaoRejeitadas(t *testing.T) {
	src := "Agência 0001 Conta 12345-6\n" +
		"Data;Descrição;Valor\n" +
		"31/02/2025;Data impossível;-10,00\n" +
		"01/03/2025;;-10,00\n" +
		"02/03/2025;Sem valor;abc\n" +
		"03/03/2025;Tarifa;0,00\n" +
		"04/03/2025;Tarifa pacote;-29,90\n"

	lines, rowErrs, err := NewParser().Parse("extrato.csv", strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Row)
	require.Len(t, rowErrs, 4)
	assert.Equal(t, 3, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Reason, "data inválida")
	assert.Equal(t, "descrição vazia", rowErrs[1].Reason)
	assert.Contains(t, rowErrs[2].Reason, "valor inválido")
	assert.Equal(t, "valor zerado", rowErrs[3].Reason)
}

func TestParse_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Data", "Descrição", "Valor"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"10/03/2025", "Fornecedor de toalhas", -420.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"11/03/2025", "Depósito", 1000}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	lines, rowErrs, err := NewParser().Parse("marco.xlsx", &buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, lines, 2)
	assert.Equal(t, "Fornecedor de toalhas", lines[0].Description)
	assert.True(t, lines[0].Amount.Equal(decimal.RequireFromString("-420.5")))
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), lines[1].Date)
}

func TestParse_FormatoNaoSuportado(t *testing.T) {
	_, _, err := NewParser().Parse("extrato.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParse_ArquivoVazio(t *testing.T) {
	_, _, err := NewParser().Parse("extrato.csv", strings.NewReader("Data;Descrição;Valor\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
