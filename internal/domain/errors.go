package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifica falhas em categorias estáveis, independentes do banco.
type ErrorKind string

const (
	KindNetwork    ErrorKind = "NETWORK_ERROR"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindConstraint ErrorKind = "CONSTRAINT_VIOLATION"
	KindPermission ErrorKind = "PERMISSION_DENIED"
	KindValidation ErrorKind = "VALIDATION_ERROR"
	KindUnknown    ErrorKind = "UNKNOWN_ERROR"
)

// Mensagens exibidas ao usuário. O detalhe técnico fica em Err.
const (
	MsgNetwork      = "Falha de conexão com o servidor. Verifique sua internet e tente novamente."
	MsgNotFound     = "Registro não encontrado."
	MsgConstraint   = "Operação viola uma regra de integridade dos dados."
	MsgDuplicate    = "Já existe um registro com estes dados."
	MsgForeignKey   = "Registro relacionado inexistente ou em uso."
	MsgNotNull      = "Campo obrigatório não informado."
	MsgCheck        = "Valores informados violam uma regra do sistema."
	MsgStock        = "Estoque insuficiente para a operação."
	MsgPermission   = "Você não tem permissão para realizar esta operação."
	MsgValidation   = "Dados inválidos."
	MsgUnauthorized = "Credenciais inválidas."
	MsgConflict     = "Operação incompatível com o estado atual do registro."
	MsgUnknown      = "Erro inesperado. Tente novamente mais tarde."
)

// Error é o erro de domínio devolvido por repositórios e serviços.
type Error struct {
	Kind    ErrorKind
	Code    string   // subcódigo opcional (DUPLICATE, INSUFFICIENT_STOCK, ...)
	Message string   // mensagem para o usuário
	Details []string // erros de validação campo a campo
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Code != "" {
		b.WriteString("/" + e.Code)
	}
	b.WriteString(": " + e.Message)
	if len(e.Details) > 0 {
		b.WriteString(" (" + strings.Join(e.Details, "; ") + ")")
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por categoria; se o alvo tiver Code, o código também precisa bater.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Code == "" || t.Code == e.Code)
}

// Erros sentinela. Use errors.Is(err, domain.ErrNotFound).
var (
	ErrNetwork           = &Error{Kind: KindNetwork, Message: MsgNetwork}
	ErrNotFound          = &Error{Kind: KindNotFound, Message: MsgNotFound}
	ErrConstraint        = &Error{Kind: KindConstraint, Message: MsgConstraint}
	ErrDuplicate         = &Error{Kind: KindConstraint, Code: "DUPLICATE", Message: MsgDuplicate}
	ErrForeignKey        = &Error{Kind: KindConstraint, Code: "FOREIGN_KEY", Message: MsgForeignKey}
	ErrInsufficientStock = &Error{Kind: KindConstraint, Code: "INSUFFICIENT_STOCK", Message: MsgStock}
	ErrConflict          = &Error{Kind: KindConstraint, Code: "CONFLICT", Message: MsgConflict}
	ErrPermissionDenied  = &Error{Kind: KindPermission, Message: MsgPermission}
	ErrUnauthorized      = &Error{Kind: KindPermission, Code: "UNAUTHORIZED", Message: MsgUnauthorized}
	ErrInvalidInput      = &Error{Kind: KindValidation, Message: MsgValidation}
	ErrUnknown           = &Error{Kind: KindUnknown, Message: MsgUnknown}
)

// NewValidationError agrupa as mensagens de validação de um DTO.
func NewValidationError(details []string) *Error {
	return &Error{Kind: KindValidation, Message: MsgValidation, Details: details}
}

// Wrap associa uma causa técnica a um erro sentinela preservando categoria e mensagem.
func Wrap(sentinel *Error, format string, args ...any) *Error {
	return &Error{
		Kind:    sentinel.Kind,
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Err:     fmt.Errorf(format, args...),
	}
}

// Conflict cria um erro de regra de negócio com mensagem própria.
func Conflict(message string) *Error {
	return &Error{Kind: KindConstraint, Code: ErrConflict.Code, Message: message}
}

// Invalid cria um erro de validação com uma única mensagem.
func Invalid(message string) *Error {
	return &Error{Kind: KindValidation, Message: MsgValidation, Details: []string{message}}
}

// KindOf devolve a categoria do erro; erros fora da taxonomia são UNKNOWN.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// UserMessage devolve a mensagem segura para exibir ao usuário.
func UserMessage(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return MsgUnknown
}
