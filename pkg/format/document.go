package format

import "unicode"

// pesos do dígito verificador (módulo 11) da Receita Federal.
var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// OnlyDigits remove tudo que não for dígito.
func OnlyDigits(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) && r < 128 {
			out = append(out, byte(r))
		}
	}
	return string(out)
}

// ValidCPF valida os dois dígitos verificadores de um CPF (com ou sem máscara).
func ValidCPF(cpf string) bool {
	d := OnlyDigits(cpf)
	if len(d) != 11 || allEqual(d) {
		return false
	}
	for pos := 9; pos <= 10; pos++ {
		sum := 0
		for i := 0; i < pos; i++ {
			sum += int(d[i]-'0') * (pos + 1 - i)
		}
		if checkDigit(sum) != d[pos] {
			return false
		}
	}
	return true
}

// ValidCNPJ valida os dois dígitos verificadores de um CNPJ (com ou sem máscara).
func ValidCNPJ(cnpj string) bool {
	d := OnlyDigits(cnpj)
	if len(d) != 14 || allEqual(d) {
		return false
	}
	if checkDigit(weighted(d[:12], cnpjWeights1)) != d[12] {
		return false
	}
	return checkDigit(weighted(d[:13], cnpjWeights2)) == d[13]
}

// CPF formata 11 dígitos como 000.000.000-00. Entradas inválidas voltam sem alteração.
func CPF(cpf string) string {
	d := OnlyDigits(cpf)
	if len(d) != 11 {
		return cpf
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// CNPJ formata 14 dígitos como 00.000.000/0000-00. Entradas inválidas voltam sem alteração.
func CNPJ(cnpj string) string {
	d := OnlyDigits(cnpj)
	if len(d) != 14 {
		return cnpj
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

func weighted(digits string, weights []int) int {
	sum := 0
	for i := range digits {
		sum += int(digits[i]-'0') * weights[i]
	}
	return sum
}

func checkDigit(sum int) byte {
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + (11 - r))
}

func allEqual(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
