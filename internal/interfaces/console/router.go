// Package console expone las vistas del cliente como una consola HTTP local (Fiber).
// Cada vista pasa por los guards de la tabla de rutas antes de llegar al handler.
package console

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/gestion-cliente/internal/application/auth"
	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/usecase"
	"github.com/jhoicas/gestion-cliente/internal/domain"
	"github.com/jhoicas/gestion-cliente/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Manager   *auth.Manager
	Catalog   *usecase.CatalogUseCase
	Orders    *usecase.OrderUseCase
	Users     *usecase.UserUseCase
	Store     *usecase.StoreUseCase
	Dashboard *usecase.DashboardUseCase
	Reports   *usecase.ReportUseCase
	PDF       ReportRenderer
	Log       *logger.Logger
}

// NewApp aplicación Fiber con recover, /health y todas las vistas registradas.
func NewApp(name string, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP", Message: fe.Message})
			}
			deps.Log.Error().Err(err).Str("ruta", c.Path()).Msg("error no controlado")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: domain.MsgServerError})
		},
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name, "session": deps.Manager.State().String()})
	})

	Router(app, deps)
	return app
}

// Router registra las vistas. Debe ser lo último registrado: termina con el 404.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log.Component("guard")
	sess := deps.Manager

	// Públicas
	authHandler := NewAuthHandler(deps.Manager)
	app.Get("/login", authHandler.LoginView)
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)
	app.Get("/session", authHandler.Session)

	// "/" solo redirige a la ruta por defecto del rol.
	app.Get("/", GuardRoute(sess, "/", log), NotFound)

	dashboardHandler := NewDashboardHandler(deps.Dashboard, sess)
	app.Get("/dashboard", GuardRoute(sess, "/dashboard", log), dashboardHandler.Show)

	products := app.Group("/products", GuardRoute(sess, "/products", log))
	productHandler := NewProductHandler(deps.Catalog, sess)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	orders := app.Group("/orders", GuardRoute(sess, "/orders", log))
	orderHandler := NewOrderHandler(deps.Orders, sess)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/statistics", orderHandler.Statistics)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/details", orderHandler.Details)
	orders.Put("/:id/status", orderHandler.UpdateStatus)
	orders.Delete("/:id", orderHandler.Cancel)

	users := app.Group("/users", GuardRoute(sess, "/users", log))
	userHandler := NewUserHandler(deps.Users, sess)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:username", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Patch("/:id/role", userHandler.ChangeRole)

	profile := app.Group("/profile", GuardRoute(sess, "/profile", log))
	profile.Get("/", userHandler.Profile)
	profile.Put("/", userHandler.UpdateProfile)

	store := app.Group("/store", GuardRoute(sess, "/store", log))
	storeHandler := NewStoreHandler(deps.Store, sess)
	store.Get("/", storeHandler.List)
	store.Post("/checkout", storeHandler.Checkout)

	reports := app.Group("/reports", GuardRoute(sess, "/reports", log))
	reportHandler := NewReportHandler(deps.Reports, deps.PDF, sess)
	reports.Get("/", reportHandler.Show)
	reports.Get("/pdf", reportHandler.PDF)

	app.Use(NotFound)
}
