package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-cliente/internal/application/auth"
	"github.com/jhoicas/gestion-cliente/internal/application/usecase"
	"github.com/jhoicas/gestion-cliente/internal/infrastructure/mock"
	"github.com/jhoicas/gestion-cliente/internal/infrastructure/pdf"
	"github.com/jhoicas/gestion-cliente/internal/infrastructure/storage"
	"github.com/jhoicas/gestion-cliente/internal/interfaces/cli"
	"github.com/jhoicas/gestion-cliente/pkg/logger"
)

type harness struct {
	app *cli.App
	m   *auth.Manager
	out *bytes.Buffer
	err *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithStore(t, storage.NewMemoryStore())
}

// newHarnessWithStore arranca el Manager sobre un almacén ya poblado.
func newHarnessWithStore(t *testing.T, kv *storage.MemoryStore) *harness {
	t.Helper()
	log := logger.Nop()
	backend := mock.New(log)
	ports := backend.Ports()
	m := auth.NewManager(storage.NewSessionStore(kv, log), ports.Auth, log)
	backend.SetTokenSource(m)
	m.Initialize()

	h := &harness{m: m, out: new(bytes.Buffer), err: new(bytes.Buffer)}
	h.app = &cli.App{
		Manager:  m,
		Reports:  usecase.NewReportUseCase(ports, m, log),
		PDF:      pdf.NewReportGenerator(""),
		Interval: 10 * time.Millisecond,
		Out:      h.out,
		Err:      h.err,
		Log:      log,
	}
	return h
}

func (h *harness) run(args ...string) int {
	h.out.Reset()
	h.err.Reset()
	return h.app.Run(context.Background(), args)
}

// ──────────────────────────────────────────────────────────────────────────────
// Comandos
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_FlagsYPosicionales(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, cli.ExitOK, h.run("login", "-u", "vendedor", "--password", "vendedor123"))
	assert.Contains(t, h.out.String(), "Vendedor")
	assert.Contains(t, h.out.String(), "/dashboard")

	require.Equal(t, cli.ExitOK, h.run("logout"))
	assert.False(t, h.m.IsAuthenticated())

	require.Equal(t, cli.ExitOK, h.run("login", "cliente", "cliente123"))
	assert.Contains(t, h.out.String(), "/store")
}

func TestLogin_Fallido(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, cli.ExitFailed, h.run("login", "-u", "admin", "-p", "x"))
	assert.Contains(t, h.err.String(), "Credenciales inválidas")

	assert.Equal(t, cli.ExitFailed, h.run("login"))
	assert.Contains(t, h.err.String(), "Por favor completa todos los campos")
}

func TestWhoami_SinSesion(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, cli.ExitDenied, h.run("whoami"))
	assert.Contains(t, h.err.String(), "gestion login")
	assert.Empty(t, h.out.String())
}

func TestWhoami_MuestraPermisos(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, cli.ExitOK, h.run("login", "-u", "cliente", "-p", "cliente123"))
	require.Equal(t, cli.ExitOK, h.run("whoami"))
	out := h.out.String()
	assert.Contains(t, out, "Cliente (CLIENTE)")
	assert.Contains(t, out, "viewStore, makePurchase")
	assert.NotContains(t, out, "viewReports")
}

func TestMenu_SegunRol(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, cli.ExitOK, h.run("login", "-u", "vendedor", "-p", "vendedor123"))
	require.Equal(t, cli.ExitOK, h.run("menu"))
	out := h.out.String()
	assert.Contains(t, out, "/dashboard")
	assert.Contains(t, out, "/products")
	assert.Contains(t, out, "/orders")
	assert.NotContains(t, out, "/users")
	assert.NotContains(t, out, "/reports")
	assert.Contains(t, out, "Salir")
}

func TestWhoamiYMenu_TodosLosRoles(t *testing.T) {
	cases := []struct {
		user, role, inicio string
	}{
		{"admin", "Administrador (ADMIN)", "/dashboard"},
		{"vendedor", "Vendedor (VENDEDOR)", "/dashboard"},
		{"cliente", "Cliente (CLIENTE)", "/store"},
	}
	for _, tc := range cases {
		t.Run(tc.user, func(t *testing.T) {
			h := newHarness(t)
			require.Equal(t, cli.ExitOK, h.run("login", "-u", tc.user, "-p", tc.user+"123"))

			require.Equal(t, cli.ExitOK, h.run("whoami"), h.err.String())
			assert.Contains(t, h.out.String(), tc.role)
			assert.Contains(t, h.out.String(), "Inicio:   "+tc.inicio)
			assert.Empty(t, h.err.String())

			require.Equal(t, cli.ExitOK, h.run("menu"), h.err.String())
			assert.Contains(t, h.out.String(), tc.inicio)
			assert.Contains(t, h.out.String(), "Salir")
		})
	}
}

func TestWhoamiYMenu_RolDesconocidoDenegado(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(storage.KeyToken, "token-opaco"))
	require.NoError(t, kv.Set(storage.KeyUserData, `{"username":"raro","role":"GERENTE"}`))
	h := newHarnessWithStore(t, kv)
	require.True(t, h.m.IsAuthenticated())

	assert.Equal(t, cli.ExitDenied, h.run("whoami"))
	assert.Contains(t, h.err.String(), "Tu rol actual: GERENTE")
	assert.Empty(t, h.out.String())

	assert.Equal(t, cli.ExitDenied, h.run("menu"))
	assert.Contains(t, h.err.String(), "Tu rol actual: GERENTE")
	assert.NotContains(t, h.err.String(), "gestion login")
}

func TestReport_SoloAdmin(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, cli.ExitOK, h.run("login", "-u", "vendedor", "-p", "vendedor123"))
	assert.Equal(t, cli.ExitDenied, h.run("report"))
	assert.Contains(t, h.err.String(), "Tu rol actual: VENDEDOR")
}

func TestReport_EscribePDF(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, cli.ExitOK, h.run("login", "-u", "admin", "-p", "admin123"))

	out := filepath.Join(t.TempDir(), "reporte.pdf")
	require.Equal(t, cli.ExitOK, h.run("report", "--pdf", out))
	assert.Contains(t, h.out.String(), "Total con IVA: 1619.95")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestReport_WatchHastaCancelar(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, cli.ExitOK, h.run("login", "-u", "admin", "-p", "admin123"))
	h.out.Reset()

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()
	code := h.app.Run(ctx, []string{"report", "--watch"})
	require.Equal(t, cli.ExitOK, code, h.err.String())
	assert.GreaterOrEqual(t, strings.Count(h.out.String(), "Reporte de Ventas"), 2)
}

func TestRun_ComandoDesconocidoYConsolaPorDefecto(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, cli.ExitUsage, h.run("volar"))
	assert.Contains(t, h.err.String(), "uso: gestion")

	called := false
	h.app.Console = func(context.Context) error { called = true; return nil }
	assert.Equal(t, cli.ExitOK, h.run())
	assert.True(t, called)
}
