// Package http expone la API REST de Firmeza sobre Fiber.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/firmeza/firmeza-api/internal/application/auth"
	"github.com/firmeza/firmeza-api/internal/application/catalog"
	"github.com/firmeza/firmeza-api/internal/application/customers"
	"github.com/firmeza/firmeza-api/internal/application/importer"
	"github.com/firmeza/firmeza-api/internal/application/rentals"
	"github.com/firmeza/firmeza-api/internal/application/sales"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	ProductUC  *catalog.ProductUseCase
	CategoryUC *catalog.CategoryUseCase
	CustomerUC *customers.UseCase
	CreateSale *sales.CreateSaleUseCase
	SaleQuery  *sales.SaleQueryUseCase
	RentalUC   *rentals.UseCase
	ImportUC   *importer.ImportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo (público)
	productHandler := NewProductHandler(deps.ProductUC, deps.CategoryUC)
	api.Get("/products", productHandler.ListPublic)
	api.Get("/products/category/:categoryId", productHandler.ListByCategory)
	api.Get("/products/:id", productHandler.GetPublic)
	api.Get("/categories", productHandler.ListCategories)

	// Tienda (JWT; cliente o admin)
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleQuery)
	store := api.Group("/sales",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleCustomer, entity.RoleAdmin),
	)
	store.Post("/", saleHandler.Create)
	store.Get("/my-sales", saleHandler.MySales)
	store.Get("/:id", saleHandler.GetByID)
	store.Get("/:id/receipt", saleHandler.Receipt)

	// Back-office (JWT; solo admin)
	admin := api.Group("/admin",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin),
	)

	admin.Get("/products", productHandler.ListAdmin)
	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	admin.Get("/customers", customerHandler.List)
	admin.Post("/customers", customerHandler.Create)
	admin.Get("/customers/:id", customerHandler.GetByID)
	admin.Put("/customers/:id", customerHandler.Update)
	admin.Delete("/customers/:id", customerHandler.Delete)

	vehicleHandler := NewVehicleHandler(deps.RentalUC)
	admin.Get("/vehicles", vehicleHandler.List)
	admin.Post("/vehicles", vehicleHandler.Create)
	admin.Get("/vehicles/:id", vehicleHandler.GetByID)
	admin.Put("/vehicles/:id", vehicleHandler.Update)
	admin.Delete("/vehicles/:id", vehicleHandler.Delete)
	admin.Post("/rentals", vehicleHandler.Rent)
	admin.Post("/rentals/:id/return", vehicleHandler.Return)

	admin.Get("/sales", saleHandler.ListAdmin)
	admin.Get("/sales/export", saleHandler.Export)

	importHandler := NewImportHandler(deps.ImportUC)
	admin.Post("/import", importHandler.Import)
}
