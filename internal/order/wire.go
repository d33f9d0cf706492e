package order

import (
	"database/sql"

	"palantir/internal/config"
	"palantir/internal/order/controller"
	orderrepo "palantir/internal/order/repository"
	"palantir/internal/order/service"
	"palantir/internal/order/usecase"
	"palantir/internal/verifier"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.OrderController {
	repo := orderrepo.NewMySQLOrderRepository(db)

	customers := verifier.NewHTTPVerifier(cfg.Services.CustomerBaseURL, cfg.Services.Timeout)
	products := verifier.NewHTTPVerifier(cfg.Services.ProductBaseURL, cfg.Services.Timeout)

	validator := service.NewOrderValidator(customers, products, logger)
	lifecycle := service.NewLifecycleManager()
	queries := service.NewQueryEngine()

	uc := usecase.NewOrderUseCase(repo, validator, lifecycle, queries, logger)

	return controller.NewOrderController(uc, logger)
}
