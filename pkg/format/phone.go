package format

// ValidPhone aceita fixo (10 dígitos) ou celular (11 dígitos, iniciando em 9) com DDD válido.
// O prefixo 55 do país é ignorado.
func ValidPhone(phone string) bool {
	d := nationalDigits(phone)
	switch len(d) {
	case 10:
		return validDDD(d[:2]) && d[2] >= '2' && d[2] <= '5'
	case 11:
		return validDDD(d[:2]) && d[2] == '9'
	default:
		return false
	}
}

// Phone formata como (11) 3456-7890 ou (11) 98765-4321. Entradas inválidas voltam sem alteração.
func Phone(phone string) string {
	d := nationalDigits(phone)
	switch len(d) {
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	default:
		return phone
	}
}

func nationalDigits(phone string) string {
	d := OnlyDigits(phone)
	if (len(d) == 12 || len(d) == 13) && d[:2] == "55" {
		d = d[2:]
	}
	return d
}

// DDDs começam em 11 e não usam zero no segundo dígito.
func validDDD(ddd string) bool {
	return ddd[0] >= '1' && ddd[0] <= '9' && ddd[1] >= '1' && ddd[1] <= '9'
}
