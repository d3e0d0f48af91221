package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barberpro/barber-analytics-api/internal/domain"
)

func TestError_IsPorCategoria(t *testing.T) {
	err := domain.Wrap(domain.ErrDuplicate, "insert product: %w", errors.New("23505"))

	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.True(t, errors.Is(err, domain.ErrConstraint), "duplicado também é violação de restrição")
	assert.False(t, errors.Is(err, domain.ErrInsufficientStock), "códigos diferentes não se confundem")
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestError_IsAtravesDeWrapping(t *testing.T) {
	err := fmt.Errorf("usecase: %w", domain.ErrNotFound)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Equal(t, domain.MsgNotFound, domain.UserMessage(err))
}

func TestKindOf_ErroForaDaTaxonomia(t *testing.T) {
	assert.Equal(t, domain.KindUnknown, domain.KindOf(errors.New("boom")))
	assert.Equal(t, domain.ErrorKind(""), domain.KindOf(nil))
	assert.Equal(t, domain.MsgUnknown, domain.UserMessage(errors.New("boom")))
}

func TestNewValidationError_MantemDetalhes(t *testing.T) {
	err := domain.NewValidationError([]string{"name é obrigatório"})

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, []string{"name é obrigatório"}, err.Details)
	assert.Contains(t, err.Error(), "name é obrigatório")
}

func TestWrap_PreservaCausa(t *testing.T) {
	cause := errors.New("connection refused")
	err := domain.Wrap(domain.ErrNetwork, "list expenses: %w", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, domain.MsgNetwork, err.Message)
}
