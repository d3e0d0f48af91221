// Package statement lê extratos bancários em .xlsx e .csv.
//
// Colunas reconhecidas pelo cabeçalho (sem acento, qualquer caixa):
//
//	data      → DATA, DATA LANCAMENTO, DT
//	descrição → DESCRICAO, HISTORICO, LANCAMENTO
//	valor     → VALOR, VALOR R$, MONTANTE
//	tipo      → TIPO, D/C, NATUREZA (opcional: D/DEBITO nega o valor)
//
// Sem cabeçalho reconhecível, as três primeiras colunas são data, descrição e valor.
package statement

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/pkg/format"
)

var _ ports.StatementParser = (*Parser)(nil)

// MaxFileSize limite de tamanho do arquivo de extrato.
const MaxFileSize = 5 << 20

const headerScanRows = 10

var (
	dateHeaders = []string{"DATA", "DATA LANCAMENTO", "DATA MOVIMENTO", "DT"}
	descHeaders = []string{"DESCRICAO", "HISTORICO", "LANCAMENTO", "DESCRICAO LANCAMENTO"}
	valHeaders  = []string{"VALOR", "VALOR R", "MONTANTE", "VALOR RS"}
	typeHeaders = []string{"TIPO", "D C", "NATUREZA"}

	dateLayouts = []string{"02/01/2006", "2006-01-02", "02/01/06", "02-01-2006", "2006/01/02"}
)

type columns struct {
	date, desc, value, kind int
}

var positional = columns{date: 0, desc: 1, value: 2, kind: -1}

// Parser implementa ports.StatementParser.
type Parser struct{}

// NewParser constrói o leitor de extratos.
func NewParser() *Parser { return &Parser{} }

// Parse detecta o formato pela extensão. Linhas com problema voltam em rowErrs; erro só quando
// o arquivo inteiro é ilegível.
func (p *Parser) Parse(fileName string, r io.Reader) ([]ports.StatementLine, []ports.StatementRowError, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("statement: ler arquivo: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, nil, domain.Invalid("Arquivo de extrato maior que 5 MB.")
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx":
		rows, err = xlsxRows(data)
	case ".csv", ".txt":
		rows, err = csvRows(data)
	default:
		return nil, nil, domain.Invalid("Formato de extrato não suportado. Use .xlsx ou .csv.")
	}
	if err != nil {
		return nil, nil, err
	}
	lines, rowErrs := parseRows(rows)
	if len(lines) == 0 && len(rowErrs) == 0 {
		return nil, nil, domain.Invalid("Extrato sem lançamentos.")
	}
	return lines, rowErrs, nil
}

// xlsxRows primeira planilha, valores crus (datas como número de série).
func xlsxRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, domain.Invalid("Planilha .xlsx inválida.")
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.Invalid("Planilha sem abas.")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("statement: ler planilha: %w", err)
	}
	return rows, nil
}

// csvRows aceita UTF-8 (com ou sem BOM) e ISO-8859-1; separador ; ou , pela primeira linha.
func csvRows(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}
	reader := csv.NewReader(src)
	reader.Comma = sniffComma(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, domain.Invalid(fmt.Sprintf("CSV inválido na linha %d.", perr.Line))
		}
		return nil, fmt.Errorf("statement: ler csv: %w", err)
	}
	return rows, nil
}

func sniffComma(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.Count(first, []byte(";")) >= bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

func parseRows(rows [][]string) ([]ports.StatementLine, []ports.StatementRowError) {
	cols, start := positional, 0
	// bancos costumam pôr agência/conta antes do cabeçalho
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		if c, ok := headerColumns(rows[i]); ok {
			cols, start = c, i+1
			break
		}
	}

	var lines []ports.StatementLine
	var rowErrs []ports.StatementRowError
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if blank(row) {
			continue
		}
		n := i + 1 // numeração da planilha
		line, err := parseLine(row, cols)
		if err != nil {
			rowErrs = append(rowErrs, ports.StatementRowError{Row: n, Reason: err.Error()})
			continue
		}
		line.Row = n
		lines = append(lines, line)
	}
	return lines, rowErrs
}

func headerColumns(row []string) (columns, bool) {
	c := columns{date: -1, desc: -1, value: -1, kind: -1}
	for i, cell := range row {
		h := format.Normalize(cell)
		switch {
		case c.date < 0 && oneOf(h, dateHeaders):
			c.date = i
		case c.desc < 0 && oneOf(h, descHeaders):
			c.desc = i
		case c.value < 0 && oneOf(h, valHeaders):
			c.value = i
		case c.kind < 0 && oneOf(h, typeHeaders):
			c.kind = i
		}
	}
	return c, c.date >= 0 && c.desc >= 0 && c.value >= 0
}

func parseLine(row []string, c columns) (ports.StatementLine, error) {
	var l ports.StatementLine
	date, err := parseDate(cell(row, c.date))
	if err != nil {
		return l, err
	}
	desc := strings.TrimSpace(cell(row, c.desc))
	if desc == "" {
		return l, errors.New("descrição vazia")
	}
	amount, err := format.ParseBRL(cell(row, c.value))
	if err != nil {
		return l, fmt.Errorf("valor inválido %q", cell(row, c.value))
	}
	if amount.IsZero() {
		return l, errors.New("valor zerado")
	}
	if c.kind >= 0 && debit(cell(row, c.kind)) && amount.IsPositive() {
		amount = amount.Neg()
	}
	l.Date, l.Description, l.Amount = date, desc, amount.Round(2)
	return l, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("data vazia")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	// número de série do Excel
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida %q", s)
}

func debit(s string) bool {
	switch format.Normalize(s) {
	case "D", "DEBITO", "DEB", "SAIDA":
		return true
	}
	return false
}

func oneOf(h string, names []string) bool {
	for _, n := range names {
		if h == n {
			return true
		}
	}
	return false
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
