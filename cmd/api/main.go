package main

import (
	"souk/internal/config"
	"souk/internal/domain/model"
	"souk/internal/handler"
	"souk/internal/infra/db"
	infraRepo "souk/internal/infra/repository"
	"souk/internal/server"
	"souk/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Order numbers sort by creation time and cannot collide by construction.
type ulidOrderNumberGenerator struct{}

func (g *ulidOrderNumberGenerator) Next() string {
	return "ORD-" + ulid.Make().String()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.GoEnv == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tenant{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.StaffAssignment{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
	); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	// repositories
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	tenantRepo := infraRepo.NewTenantGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	staffRepo := infraRepo.NewStaffGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)

	orderNumbers := &ulidOrderNumberGenerator{}

	// usecases
	authUC := usecase.NewAuthUsecase(userRepo, []byte(cfg.JWTSecret))
	tenantUC := usecase.NewTenantUsecase(tenantRepo)
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo, staffRepo, auditRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(
		tenantRepo, productRepo, cartRepo,
		orderRepo, orderItemRepo, inventoryRepo,
		orderNumbers, logger,
	)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo, staffRepo)
	statusUC := usecase.NewOrderStatusUsecase(
		orderRepo, orderItemRepo, inventoryRepo,
		staffRepo, auditRepo, logger,
	)

	// handlers
	h := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Tenant:       handler.NewTenantHandler(tenantUC),
		Product:      handler.NewProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Checkout:     handler.NewCheckoutHandler(checkoutUC),
		Order:        handler.NewOrderHandler(orderUC, statusUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		AdminOrder:   handler.NewAdminOrderHandler(orderUC, statusUC),
	}

	e := server.New(cfg, logger, h)

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := server.Start(e, cfg); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
