// Package format reúne formatadores e validadores de dados brasileiros
// (moeda, CPF, CNPJ, telefone) usados pelos DTOs e relatórios.
package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// BRL formata um valor em reais: 1234.5 → "R$ 1.234,50"; negativos recebem "-" à frente.
func BRL(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}
	s := v.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + "R$ " + thousands(intPart) + "," + frac
}

// thousands insere pontos de milhar em uma string numérica sem decimais.
// Ex: "25000" → "25.000", "1000000" → "1.000.000"
func thousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

var moneyJunk = regexp.MustCompile(`[^0-9,.\-]`)

// ParseBRL interpreta valores como "R$ 1.234,56", "-1234.56", "(89,90)" ou "1,234.56".
// Parênteses indicam valor negativo (formato contábil).
func ParseBRL(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("format: valor vazio")
	}
	negative := strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")")
	clean := moneyJunk.ReplaceAllString(raw, "")
	if strings.HasPrefix(clean, "-") {
		negative = true
		clean = strings.TrimPrefix(clean, "-")
	}
	lastComma := strings.LastIndex(clean, ",")
	lastDot := strings.LastIndex(clean, ".")
	switch {
	case lastComma > lastDot:
		// padrão brasileiro: ponto é milhar, vírgula é decimal
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case lastDot > lastComma && lastComma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case lastDot >= 0 && strings.Count(clean, ".") > 1:
		clean = strings.ReplaceAll(clean, ".", "")
	}
	v, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("format: valor monetário inválido %q: %w", s, err)
	}
	if negative {
		v = v.Neg()
	}
	return v, nil
}
