package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"

	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/pkg/format"
)

// ValidationResult resultado da validação de um DTO. Errors nunca é nil.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Err converte o resultado em erro de domínio (nil quando válido).
func (r ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}
	return domain.NewValidationError(r.Errors)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool { return format.ValidCPF(fl.Field().String()) })
	_ = v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool { return format.ValidCNPJ(fl.Field().String()) })
	_ = v.RegisterValidation("phone_br", func(fl validator.FieldLevel) bool { return format.ValidPhone(fl.Field().String()) })
	_ = v.RegisterValidation("cep", func(fl validator.FieldLevel) bool { return len(format.OnlyDigits(fl.Field().String())) == 8 })
	return v
}

// checker acumula mensagens de validação e os campos que já falharam.
type checker struct {
	errs   []string
	failed map[string]bool
}

func check(s interface{}) *checker {
	c := &checker{errs: []string{}, failed: map[string]bool{}}
	err := validate.Struct(s)
	if err == nil {
		return c
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.errs = append(c.errs, "dados inválidos")
		return c
	}
	for _, fe := range verrs {
		field := fieldLabel(fe)
		c.failed[field] = true
		c.errs = append(c.errs, message(field, fe))
	}
	return c
}

// ok informa se nenhum dos campos falhou nas regras declarativas.
func (c *checker) ok(fields ...string) bool {
	for _, f := range fields {
		if c.failed[f] {
			return false
		}
	}
	return true
}

func (c *checker) add(field, msg string) {
	c.failed[field] = true
	c.errs = append(c.errs, msg)
}

func (c *checker) result() ValidationResult {
	return ValidationResult{IsValid: len(c.errs) == 0, Errors: c.errs}
}

// ValidateStruct valida structs de requisição tipadas (auth, unidades).
func ValidateStruct(s interface{}) ValidationResult {
	return check(s).result()
}

// fieldLabel remove o nome do struct do namespace: "CreateSupplierDTO.contacts[0].name" → "contacts[0].name".
func fieldLabel(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(field string, fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return field + " é obrigatório"
	case "uuid", "uuid4":
		return field + " deve ser um UUID válido"
	case "oneof":
		return field + " deve ser um dos valores: " + strings.Join(strings.Fields(param), ", ")
	case "gt":
		return fmt.Sprintf("%s deve ser maior que %s", field, param)
	case "gte":
		if param == "0" {
			return field + " não pode ser negativo"
		}
		return fmt.Sprintf("%s deve ser maior ou igual a %s", field, param)
	case "lt":
		return fmt.Sprintf("%s deve ser menor que %s", field, param)
	case "lte":
		return fmt.Sprintf("%s deve ser menor ou igual a %s", field, param)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s deve ter no mínimo %s caracteres", field, param)
		}
		return fmt.Sprintf("%s deve ser no mínimo %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s deve ter no máximo %s caracteres", field, param)
		}
		return fmt.Sprintf("%s deve ser no máximo %s", field, param)
	case "len":
		return fmt.Sprintf("%s deve ter %s caracteres", field, param)
	case "email":
		return field + " deve ser um e-mail válido"
	case "cpf":
		return field + " deve ser um CPF válido"
	case "cnpj":
		return field + " deve ser um CNPJ válido"
	case "phone_br":
		return field + " deve ser um telefone válido"
	case "cep":
		return field + " deve ser um CEP válido"
	case "gtfield":
		return fmt.Sprintf("%s deve ser posterior a %s", field, snake(param))
	case "gtefield":
		return fmt.Sprintf("%s não pode ser anterior a %s", field, snake(param))
	default:
		return field + " é inválido"
	}
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ── Construção a partir do mapa cru ───────────────────────────────────────────

var decodeFieldPattern = regexp.MustCompile(`'([^']+)'`)

// decode preenche out a partir do corpo JSON cru. Chaves desconhecidas são ignoradas.
// Falhas de conversão viram erro de validação com o nome do campo.
func decode(raw map[string]any, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			decimalHook,
			timeHook,
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	var merr *mapstructure.Error
	if !errors.As(err, &merr) {
		return domain.Invalid("corpo da requisição inválido")
	}
	details := make([]string, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		if m := decodeFieldPattern.FindStringSubmatch(e); m != nil {
			details = append(details, m[1]+" possui formato inválido")
			continue
		}
		details = append(details, "corpo da requisição inválido")
	}
	return domain.NewValidationError(details)
}

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	timeType    = reflect.TypeOf(time.Time{})
)

func decimalHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		return format.ParseBRL(v)
	}
	return data, nil
}

// Datas aceitas: YYYY-MM-DD, RFC3339 ou DD/MM/YYYY.
func timeHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != timeType {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	return ParseDate(s)
}

// ParseDate interpreta datas nos formatos aceitos pela API.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida: %q", s)
}

// ── Whitelist ─────────────────────────────────────────────────────────────────

// pick devolve apenas as colunas permitidas com valor definido; ponteiros são desreferenciados.
func pick(columns []string, values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for _, col := range columns {
		v, ok := values[col]
		if !ok || v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Ptr {
			if rv.IsNil() {
				continue
			}
			v = rv.Elem().Interface()
		}
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			continue
		}
		out[col] = v
	}
	return out
}

func ptr[T any](v T) *T { return &v }
