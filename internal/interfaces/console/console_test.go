package console_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-cliente/internal/application/auth"
	"github.com/jhoicas/gestion-cliente/internal/application/guard"
	"github.com/jhoicas/gestion-cliente/internal/application/usecase"
	"github.com/jhoicas/gestion-cliente/internal/domain/entity"
	"github.com/jhoicas/gestion-cliente/internal/infrastructure/mock"
	"github.com/jhoicas/gestion-cliente/internal/infrastructure/pdf"
	"github.com/jhoicas/gestion-cliente/internal/infrastructure/storage"
	"github.com/jhoicas/gestion-cliente/internal/interfaces/console"
	"github.com/jhoicas/gestion-cliente/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixedSession struct{ sess entity.Session }

func (f fixedSession) Session() entity.Session { return f.sess }

// buildTestApp consola completa sobre el backend simulado y un almacén en memoria.
func buildTestApp(t *testing.T) (*fiber.App, *auth.Manager) {
	t.Helper()
	return buildTestAppWithStore(t, storage.NewMemoryStore())
}

func buildTestAppWithStore(t *testing.T, kv *storage.MemoryStore) (*fiber.App, *auth.Manager) {
	t.Helper()
	log := logger.Nop()
	backend := mock.New(log)
	ports := backend.Ports()

	store := storage.NewSessionStore(kv, log)
	m := auth.NewManager(store, ports.Auth, log)
	backend.SetTokenSource(m)
	m.Initialize()

	app := console.NewApp("gestion-test", console.RouterDeps{
		Manager:   m,
		Catalog:   usecase.NewCatalogUseCase(ports.Products, m),
		Orders:    usecase.NewOrderUseCase(ports.Orders, m),
		Users:     usecase.NewUserUseCase(ports.Users, m, m),
		Store:     usecase.NewStoreUseCase(ports.Products, ports.Orders, m),
		Dashboard: usecase.NewDashboardUseCase(ports, m, log),
		Reports:   usecase.NewReportUseCase(ports, m, log),
		PDF:       pdf.NewReportGenerator(""),
		Log:       log,
	})
	return app, m
}

// guardApp aplicación mínima con un handler dummy detrás del middleware.
func guardApp(mw fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/protected", mw, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func loginAs(t *testing.T, app *fiber.App, user string) {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/login", `{"username":"`+user+`","password":"`+user+`123"}`)
	var res auth.LoginResult
	decode(t, resp, &res)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, res.Success)
}

// ──────────────────────────────────────────────────────────────────────────────
// Middleware de guards
// ──────────────────────────────────────────────────────────────────────────────

func TestGuardRoute_CargandoDevuelve202(t *testing.T) {
	src := fixedSession{entity.Session{IsLoading: true, State: entity.StateLoading}}
	app := guardApp(console.GuardRoute(src, "/dashboard", logger.Nop()))

	resp := doRequest(t, app, http.MethodGet, "/protected", "")
	var body console.DecisionView
	decode(t, resp, &body)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "pending", body.Kind)
	assert.Equal(t, guard.MsgCheckingSession, body.Message)
}

func TestRequireGuards_VistaAccesoDenegado(t *testing.T) {
	src := fixedSession{entity.Session{
		Token:           "tok",
		User:            &entity.User{ID: "3", Username: "cliente", Role: "CLIENTE"},
		IsAuthenticated: true,
		State:           entity.StateAuthenticated,
	}}
	mw := console.RequireGuards(src, logger.Nop(),
		guard.Authenticated,
		guard.Role(guard.Options{AllowedRoles: []string{"ADMIN"}, ShowUnauthorized: true}),
	)
	resp := doRequest(t, guardApp(mw), http.MethodGet, "/protected", "")
	var body console.DecisionView
	decode(t, resp, &body)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "denied", body.Kind)
	assert.Equal(t, console.DeniedTitle, body.Title)
	assert.Equal(t, "No tienes permisos para acceder a este recurso.", body.Message)
	assert.Equal(t, console.DeniedRoleLabel, body.RoleLabel)
	assert.Equal(t, "CLIENTE", body.Role)
}

func TestRequireGuards_RolPermitidoPasa(t *testing.T) {
	src := fixedSession{entity.Session{
		Token:           "tok",
		User:            &entity.User{ID: "1", Role: "administrador"},
		IsAuthenticated: true,
		State:           entity.StateAuthenticated,
	}}
	mw := console.RequireGuards(src, logger.Nop(), guard.Role(guard.Options{AllowedRoles: []string{"ADMIN", "ADMINISTRADOR"}}))
	resp := doRequest(t, guardApp(mw), http.MethodGet, "/protected", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Router completo
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_SinSesionRedirigeALogin(t *testing.T) {
	app, _ := buildTestApp(t)
	for _, path := range []string{"/", "/dashboard", "/products", "/orders/1", "/users", "/store", "/reports", "/profile"} {
		resp := doRequest(t, app, http.MethodGet, path, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}
}

func TestRouter_RolDesconocidoSinBucleEnLogin(t *testing.T) {
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(storage.KeyToken, "token-opaco"))
	require.NoError(t, kv.Set(storage.KeyUserData, `{"username":"raro","role":"GERENTE"}`))
	app, m := buildTestAppWithStore(t, kv)
	require.True(t, m.IsAuthenticated())

	resp := doRequest(t, app, http.MethodGet, "/", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = doRequest(t, app, http.MethodGet, "/login", "")
	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "login", body["page"])
}

func TestRouter_RutaDesconocida404(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/no-existe", "")
	var body console.DecisionView
	decode(t, resp, &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, guard.MsgPageNotFound, body.Message)
}

func TestRouter_LoginValidaCampos(t *testing.T) {
	app, m := buildTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/login", `{"username":"admin","password":""}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/login", `{"username":"admin","password":"mala"}`)
	var res auth.LoginResult
	decode(t, resp, &res)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, res.Success)
	assert.Equal(t, "Credenciales inválidas", res.Message)
	assert.False(t, m.IsAuthenticated())
}

func TestRouter_AdminLoginYDashboard(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/login", `{"username":"admin","password":"admin123"}`)
	var res auth.LoginResult
	decode(t, resp, &res)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/dashboard", res.RedirectTo)

	resp = doRequest(t, app, http.MethodGet, "/dashboard", "")
	var view struct {
		Page   string `json:"page"`
		Navbar struct {
			Visible  bool   `json:"visible"`
			RoleName string `json:"roleName"`
			Items    []struct {
				Path string `json:"path"`
			} `json:"items"`
		} `json:"navbar"`
		Data usecase.DashboardStats `json:"data"`
	}
	decode(t, resp, &view)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "dashboard", view.Page)
	assert.True(t, view.Navbar.Visible)
	assert.Equal(t, "Administrador", view.Navbar.RoleName)
	assert.Len(t, view.Navbar.Items, 6)
	assert.Equal(t, 8, view.Data.Products)
	assert.Equal(t, 3, view.Data.Orders)
	assert.Equal(t, 5, view.Data.Users)

	// Con sesión, /login y / llevan a la ruta por defecto.
	for _, path := range []string{"/login", "/"} {
		resp = doRequest(t, app, http.MethodGet, path, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"), path)
	}
}

func TestRouter_ClienteRedirigidoALaTienda(t *testing.T) {
	app, _ := buildTestApp(t)
	loginAs(t, app, "cliente")

	for _, path := range []string{"/dashboard", "/products", "/users", "/reports"} {
		resp := doRequest(t, app, http.MethodGet, path, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/store", resp.Header.Get("Location"), path)
	}

	resp := doRequest(t, app, http.MethodGet, "/store", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_VendedorSinReportesNiBorrado(t *testing.T) {
	app, _ := buildTestApp(t)
	loginAs(t, app, "vendedor")

	resp := doRequest(t, app, http.MethodGet, "/reports", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	// La vista de productos es accesible, la acción de borrar no.
	resp = doRequest(t, app, http.MethodGet, "/products?limit=5", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/products/1", "")
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	decode(t, resp, &body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body.Code)
}

func TestRouter_ClienteCompra(t *testing.T) {
	app, _ := buildTestApp(t)
	loginAs(t, app, "cliente")

	resp := doRequest(t, app, http.MethodPost, "/store/checkout", `{"items":[{"productId":7,"quantity":2}],"medioPago":"debito"}`)
	var order entity.Order
	decode(t, resp, &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(3), order.CustomerID)
	assert.Equal(t, "PENDIENTE", order.Status)

	resp = doRequest(t, app, http.MethodPost, "/store/checkout", `{"items":[{"productId":7,"quantity":50}]}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/store/checkout", `{"items":[]}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ReportePDF(t *testing.T) {
	app, _ := buildTestApp(t)
	loginAs(t, app, "admin")

	resp := doRequest(t, app, http.MethodGet, "/reports/pdf", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestRouter_LogoutCierraSesion(t *testing.T) {
	app, m := buildTestApp(t)
	loginAs(t, app, "admin")
	require.True(t, m.IsAuthenticated())

	resp := doRequest(t, app, http.MethodPost, "/logout", "")
	var res auth.LogoutResult
	decode(t, resp, &res)
	assert.True(t, res.Success)
	assert.False(t, m.IsAuthenticated())

	resp = doRequest(t, app, http.MethodGet, "/session", "")
	var sess console.SessionView
	decode(t, resp, &sess)
	assert.Equal(t, "unauthenticated", sess.State)
	assert.False(t, sess.Navbar.Visible)
	assert.Empty(t, sess.Granted)
}

func TestRouter_PerfilActualizaSesion(t *testing.T) {
	app, m := buildTestApp(t)
	loginAs(t, app, "vendedor")

	resp := doRequest(t, app, http.MethodPut, "/profile", `{"name":"Vendedor Uno"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Vendedor Uno", m.Session().User.Name)
}
