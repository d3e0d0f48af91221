package format

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9 ]+`)
	whitespace      = regexp.MustCompile(`\s+`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Normalize remove acentos e pontuação, passa para maiúsculas e colapsa espaços.
// "Pagamento  Conta de Luz - Março" → "PAGAMENTO CONTA DE LUZ MARCO"
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	result = strings.ToUpper(result)
	result = nonAlphanumeric.ReplaceAllString(result, " ")
	result = whitespace.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// Similarity devolve a fração de palavras em comum (Jaccard) entre dois textos normalizados.
func Similarity(a, b string) float64 {
	ta := tokenSet(Normalize(a))
	tb := tokenSet(Normalize(b))
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	inter := 0
	for w := range ta {
		if tb[w] {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

// ValidEmail validação simples por expressão regular.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidUUID informa se s é um UUID canônico.
func ValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}
