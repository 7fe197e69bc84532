// Package cli despacha los comandos de línea de órdenes. Cada comando que abre una vista
// pasa por los mismos guards que la consola.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/gestion-cliente/internal/application/auth"
	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/guard"
	"github.com/jhoicas/gestion-cliente/internal/application/navigation"
	"github.com/jhoicas/gestion-cliente/internal/application/usecase"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/internal/domain/rbac"
	"github.com/jhoicas/gestion-cliente/pkg/logger"
)

// Códigos de salida.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitUsage  = 2
	ExitDenied = 3
)

// DefaultCommand comando cuando no se indica ninguno.
const DefaultCommand = "console"

// Renderer exporta un snapshot de reportes a PDF.
type Renderer interface {
	Generate(ctx context.Context, snap *dto.ReportSnapshot, generatedBy string) ([]byte, error)
}

// App dependencias de los comandos.
type App struct {
	Manager  *auth.Manager
	Reports  *usecase.ReportUseCase
	PDF      Renderer
	Console  func(ctx context.Context) error
	Interval time.Duration
	Out      io.Writer
	Err      io.Writer
	Log      *logger.Logger
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, a *App, args []string) int
}

var commands = []command{
	{"login", "iniciar sesión (--username, --password)", runLogin},
	{"logout", "cerrar sesión", runLogout},
	{"whoami", "usuario, rol y permisos de la sesión", runWhoami},
	{"menu", "entradas del menú visibles para el rol", runMenu},
	{"report", "reporte de ventas (--pdf archivo, --watch)", runReport},
	{"console", "consola HTTP local", runConsole},
}

// Run ejecuta args (sin el nombre del programa) y devuelve el código de salida.
func (a *App) Run(ctx context.Context, args []string) int {
	name := DefaultCommand
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name, args = args[0], args[1:]
	}
	if name == "help" || name == "-h" || name == "--help" {
		a.usage()
		return ExitOK
	}
	for _, c := range commands {
		if c.name == name {
			return c.run(ctx, a, args)
		}
	}
	fmt.Fprintf(a.stderr(), "comando desconocido %q\n", name)
	a.usage()
	return ExitUsage
}

func (a *App) usage() {
	w := a.stderr()
	fmt.Fprintln(w, "uso: gestion <comando> [opciones]")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}
}

func (a *App) stdout() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

func (a *App) stderr() io.Writer {
	if a.Err == nil {
		return os.Stderr
	}
	return a.Err
}

// check evalúa los guards de route e imprime por qué no se puede continuar.
func (a *App) check(route string) bool {
	sess := a.Manager.Session()
	d := guard.Evaluate(sess, route)
	if d.Allowed() {
		return true
	}
	// "/" solo reenvía a la ruta inicial del rol; en consola eso equivale a permitir.
	if d.Kind == guard.Redirect && sess.IsAuthenticated && d.Path != rbac.RouteLogin {
		return true
	}
	w := a.stderr()
	switch {
	case d.Kind == guard.Pending:
		fmt.Fprintln(w, d.Message)
	case d.Kind == guard.Redirect && !sess.IsAuthenticated:
		fmt.Fprintln(w, "No hay sesión activa. Ejecuta: gestion login")
	default:
		a.Log.Info().Str("ruta", route).Str("rol", sess.RawRole()).Msg("acceso denegado")
		fmt.Fprintf(w, "%s Tu rol actual: %s\n", domain.MsgAccessDenied, sess.RawRole())
	}
	return false
}

func newFlags(name string, a *App) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.stderr())
	return fs
}

// ── Comandos ──────────────────────────────────────────────────────────────────

func runLogin(ctx context.Context, a *App, args []string) int {
	fs := newFlags("login", a)
	username := fs.StringP("username", "u", "", "usuario")
	password := fs.StringP("password", "p", "", "contraseña")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if rest := fs.Args(); *username == "" && len(rest) > 0 {
		*username = rest[0]
		if *password == "" && len(rest) > 1 {
			*password = rest[1]
		}
	}
	res := a.Manager.Login(ctx, auth.Credentials{Username: *username, Password: *password})
	if !res.Success {
		fmt.Fprintln(a.stderr(), res.Message)
		return ExitFailed
	}
	sess := a.Manager.Session()
	fmt.Fprintf(a.stdout(), "Bienvenido, %s (%s)\n", sess.User.DisplayLabel(), rbac.DisplayName(sess.RawRole()))
	fmt.Fprintf(a.stdout(), "Ruta inicial: %s\n", res.RedirectTo)
	return ExitOK
}

func runLogout(ctx context.Context, a *App, _ []string) int {
	a.Manager.Logout(ctx)
	fmt.Fprintln(a.stdout(), "Sesión cerrada")
	return ExitOK
}

func runWhoami(_ context.Context, a *App, args []string) int {
	fs := newFlags("whoami", a)
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if !a.check(rbac.RouteHome) {
		return ExitDenied
	}
	sess := a.Manager.Session()
	perms := rbac.PermissionsFor(sess.RawRole())
	w := a.stdout()
	fmt.Fprintf(w, "Usuario:  %s\n", sess.User.Username)
	if sess.User.Name != "" {
		fmt.Fprintf(w, "Nombre:   %s\n", sess.User.Name)
	}
	fmt.Fprintf(w, "Rol:      %s (%s)\n", rbac.DisplayName(sess.RawRole()), sess.RawRole())
	fmt.Fprintf(w, "Inicio:   %s\n", rbac.DefaultRoute(sess.RawRole()))
	fmt.Fprintf(w, "Permisos: %s\n", strings.Join(perms.Granted(), ", "))
	return ExitOK
}

func runMenu(_ context.Context, a *App, _ []string) int {
	if !a.check(rbac.RouteHome) {
		return ExitDenied
	}
	bar := navigation.Present(a.Manager.Session())
	w := a.stdout()
	fmt.Fprintf(w, "%s %s · %s (%s)\n", navigation.BrandIcon, bar.Brand, bar.UserName, bar.RoleName)
	for _, it := range bar.Items {
		fmt.Fprintf(w, "  %s %-10s %s\n", it.Icon, it.Label, it.Path)
	}
	fmt.Fprintf(w, "  ⏏ %s\n", bar.Logout)
	return ExitOK
}

func runReport(ctx context.Context, a *App, args []string) int {
	fs := newFlags("report", a)
	out := fs.String("pdf", "", "escribe el reporte en este archivo PDF")
	watch := fs.Bool("watch", false, "refresca el reporte periódicamente hasta Ctrl+C")
	interval := fs.Duration("interval", a.Interval, "intervalo de refresco con --watch")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if !a.check(rbac.RouteReports) {
		return ExitDenied
	}

	if *watch {
		err := a.Reports.Poll(ctx, *interval, func(u usecase.ReportUpdate) {
			if u.Err != nil {
				fmt.Fprintln(a.stderr(), u.Message)
				return
			}
			printSnapshot(a.stdout(), u.Snapshot)
		})
		// Cancelar (Ctrl+C o plazo vencido) es la salida normal del modo --watch.
		if err != nil && ctx.Err() == nil {
			fmt.Fprintln(a.stderr(), err)
			return ExitFailed
		}
		return ExitOK
	}

	snap, err := a.Reports.Snapshot(ctx)
	if err != nil {
		fmt.Fprintln(a.stderr(), usecase.MsgReportsUnavailable)
		a.Log.Warn().Err(err).Msg("reporte fallido")
		return ExitFailed
	}
	printSnapshot(a.stdout(), snap)
	if *out == "" {
		return ExitOK
	}
	if a.PDF == nil {
		fmt.Fprintln(a.stderr(), "exportación PDF no disponible")
		return ExitFailed
	}
	data, err := a.PDF.Generate(ctx, snap, a.Manager.Session().User.DisplayLabel())
	if err != nil {
		fmt.Fprintf(a.stderr(), "no se pudo generar el PDF: %v\n", err)
		return ExitFailed
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(a.stderr(), "no se pudo escribir %s: %v\n", *out, err)
		return ExitFailed
	}
	fmt.Fprintf(a.stdout(), "PDF escrito en %s\n", *out)
	return ExitOK
}

func runConsole(ctx context.Context, a *App, _ []string) int {
	if a.Console == nil {
		fmt.Fprintln(a.stderr(), "consola no disponible")
		return ExitFailed
	}
	if err := a.Console(ctx); err != nil {
		fmt.Fprintln(a.stderr(), err)
		return ExitFailed
	}
	return ExitOK
}

func printSnapshot(w io.Writer, s *dto.ReportSnapshot) {
	fmt.Fprintf(w, "Reporte de Ventas · %s\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Productos: %d  Órdenes: %d  Usuarios: %d\n", s.Products, s.Orders, s.Users)
	fmt.Fprintf(w, "  Subtotal: %s  IVA: %s  Total con IVA: %s\n",
		s.Subtotal.StringFixed(2), s.IVA.StringFixed(2), s.TotalConIVA.StringFixed(2))
	for _, m := range dto.PaymentMethods() {
		t := s.ByPayment[m]
		fmt.Fprintf(w, "  %-9s %s\n", m, t.Total.StringFixed(2))
	}
}
