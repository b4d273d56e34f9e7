package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/procura-api/internal/application/inventory"
	"github.com/jhoicas/procura-api/pkg/logger"
)

// Roles que pueden contabilizar movimientos.
var postingRoles = []string{"admin", "bodeguero"}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RecordMovement *inventory.RecordMovementUseCase
	Queries        *inventory.QueryUseCase
	JWTSecret      string
	Logger         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventory movements (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RecordMovement, deps.Queries, deps.Logger)
	invGroup.Post("/movements", RequireRole(postingRoles...), inventoryHandler.RecordMovement)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)
	invGroup.Get("/movements/:id/transactions", inventoryHandler.ListMovementTransactions)
	invGroup.Get("/balances", inventoryHandler.GetBalance)
}
