package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/firmeza/firmeza-api/internal/application/auth"
	"github.com/firmeza/firmeza-api/internal/application/catalog"
	"github.com/firmeza/firmeza-api/internal/application/customers"
	"github.com/firmeza/firmeza-api/internal/application/importer"
	"github.com/firmeza/firmeza-api/internal/application/rentals"
	"github.com/firmeza/firmeza-api/internal/application/sales"
	infrmail "github.com/firmeza/firmeza-api/internal/infrastructure/mail"
	infrpdf "github.com/firmeza/firmeza-api/internal/infrastructure/pdf"
	"github.com/firmeza/firmeza-api/internal/infrastructure/postgres"
	"github.com/firmeza/firmeza-api/internal/infrastructure/receipts"
	httpRouter "github.com/firmeza/firmeza-api/internal/interfaces/http"
	"github.com/firmeza/firmeza-api/pkg/config"
	"github.com/firmeza/firmeza-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	rentalRepo := postgres.NewRentalRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	receiptStore, err := receipts.NewStore(cfg.Receipts.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de recibos")
	}
	receiptGen := infrpdf.NewMarotoReceiptGenerator()

	// Sin SMTP configurado la tienda funciona igual, solo que sin correos.
	var saleMailer sales.Mailer
	var welcomeMailer auth.WelcomeMailer
	if cfg.SMTP.Enabled() {
		mailer := infrmail.NewMailer(cfg.SMTP)
		saleMailer = mailer
		welcomeMailer = mailer
	} else {
		log.Warn().Msg("SMTP no configurado, correos deshabilitados")
	}

	authUC := auth.NewUseCase(txRunner, userRepo, customerRepo, welcomeMailer, cfg.JWT, log)
	productUC := catalog.NewProductUseCase(productRepo, categoryRepo)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	customerUC := customers.NewUseCase(customerRepo, saleRepo)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, customerRepo, saleRepo, receiptGen, receiptStore, saleMailer, log)
	saleQueryUC := sales.NewSaleQueryUseCase(saleRepo, customerRepo, productRepo, receiptStore)
	rentalUC := rentals.NewUseCase(txRunner, vehicleRepo, rentalRepo, customerRepo)
	importUC := importer.NewImportUseCase(txRunner, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // archivos xlsx de importación
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Firmeza API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		CategoryUC: categoryUC,
		CustomerUC: customerUC,
		CreateSale: createSaleUC,
		SaleQuery:  saleQueryUC,
		RentalUC:   rentalUC,
		ImportUC:   importUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
