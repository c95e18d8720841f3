// Comando seed: crea el usuario administrador y el catálogo de demostración.
// Es idempotente: si los datos ya existen no hace nada.
package main

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/firmeza/firmeza-api/internal/domain"
	"github.com/firmeza/firmeza-api/internal/domain/entity"
	"github.com/firmeza/firmeza-api/internal/infrastructure/postgres"
	"github.com/firmeza/firmeza-api/pkg/config"
	"github.com/firmeza/firmeza-api/pkg/logger"
)

const (
	adminEmail    = "admin@firmeza.com"
	adminPassword = "Admin123!"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	// Usuario administrador
	if _, err := userRepo.GetByEmail(adminEmail); errors.Is(err, domain.ErrUserNotFound) {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de contraseña")
		}
		admin := &entity.User{
			ID:           uuid.New().String(),
			Email:        adminEmail,
			PasswordHash: string(hash),
			FirstName:    "Admin",
			LastName:     "Principal",
			Role:         entity.RoleAdmin,
		}
		if err := userRepo.Create(admin); err != nil {
			log.Fatal().Err(err).Msg("crear usuario admin")
		}
		log.Info().Str("email", adminEmail).Msg("usuario admin creado")
	} else if err != nil {
		log.Fatal().Err(err).Msg("consultar usuario admin")
	} else {
		log.Info().Msg("usuario admin ya existe")
	}

	// Catálogo de demostración
	if existing, err := categoryRepo.List(); err != nil {
		log.Fatal().Err(err).Msg("consultar categorías")
	} else if len(existing) > 0 {
		log.Info().Msg("el catálogo ya tiene datos, nada que sembrar")
		return
	}

	categories := map[string]*entity.Category{
		"materiales":   {ID: uuid.New().String(), Name: "Materiales de Construcción", Description: "Cemento, arena, ladrillos, etc."},
		"herramientas": {ID: uuid.New().String(), Name: "Herramientas", Description: "Herramientas manuales y eléctricas"},
		"acabados":     {ID: uuid.New().String(), Name: "Acabados", Description: "Pinturas, cerámicas, pisos"},
	}
	for _, c := range categories {
		if err := categoryRepo.Create(c); err != nil {
			log.Fatal().Err(err).Str("categoria", c.Name).Msg("crear categoría")
		}
	}

	type seedProduct struct {
		code, name, description, ptype, category string
		price                                    int64
		stock                                    int
	}
	products := []seedProduct{
		{"MAT-001", "Cemento Portland Tipo 1", "Cemento gris de uso general para construcción", entity.ProductTypeMaterial, "materiales", 28500, 500},
		{"MAT-002", "Ladrillo Tolete", "Ladrillo de arcilla cocida para mampostería", entity.ProductTypeMaterial, "materiales", 1200, 10000},
		{"HER-001", "Taladro Percutor 1/2\"", "Taladro industrial 800W con velocidad variable", entity.ProductTypeTool, "herramientas", 250000, 15},
		{"HER-002", "Juego de Destornilladores", "Set de 6 destornilladores punta plana y estrella", entity.ProductTypeTool, "herramientas", 45000, 30},
	}
	for _, p := range products {
		categoryID := categories[p.category].ID
		err := productRepo.Create(&entity.Product{
			ID:          uuid.New().String(),
			Code:        p.code,
			Name:        p.name,
			Description: p.description,
			Price:       decimal.NewFromInt(p.price),
			Stock:       p.stock,
			Type:        p.ptype,
			CategoryID:  &categoryID,
			IsActive:    true,
		})
		if err != nil {
			log.Fatal().Err(err).Str("code", p.code).Msg("crear producto")
		}
	}

	log.Info().Int("categorias", len(categories)).Int("productos", len(products)).Msg("catálogo sembrado")
}
