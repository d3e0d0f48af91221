package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/barberpro/barber-analytics-api/internal/interfaces/http"
)

type fakeModules struct {
	active map[string]bool
	err    error
	calls  int
}

func (f *fakeModules) HasActiveModule(_ context.Context, _, module string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.active[module], nil
}

func moduleApp(checker *fakeModules) *fiber.App {
	app := fiber.New()
	app.Get("/estoque",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireModule("estoque", checker),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	app.Get("/sem-auth",
		apphttp.RequireModule("estoque", checker),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestRequireModule(t *testing.T) {
	cases := []struct {
		name     string
		checker  *fakeModules
		path     string
		status   int
		wantCode string
	}{
		{"módulo ativo", &fakeModules{active: map[string]bool{"estoque": true}}, "/estoque", http.StatusOK, ""},
		{"módulo não contratado", &fakeModules{active: map[string]bool{"financeiro": true}}, "/estoque", http.StatusForbidden, "MODULE_DISABLED"},
		{"falha no banco", &fakeModules{err: errors.New("conexão recusada")}, "/estoque", http.StatusServiceUnavailable, "MODULE_CHECK_FAILED"},
		{"sem unidade no contexto", &fakeModules{}, "/sem-auth", http.StatusUnauthorized, "UNAUTHORIZED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req.Header.Set("Authorization", tokenForRole(t, "gerente"))
			resp, err := moduleApp(tc.checker).Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.wantCode != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Contains(t, string(body), tc.wantCode)
			}
		})
	}
}
