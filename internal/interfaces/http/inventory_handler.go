package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/procura-api/internal/application/dto"
	"github.com/jhoicas/procura-api/internal/application/inventory"
	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/pkg/logger"
)

// InventoryHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type InventoryHandler struct {
	record   *inventory.RecordMovementUseCase
	query    *inventory.QueryUseCase
	validate *validator.Validate
	log      *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(record *inventory.RecordMovementUseCase, query *inventory.QueryUseCase, log *logger.Logger) *InventoryHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryHandler{record: record, query: query, validate: validator.New(), log: log}
}

// RecordMovement godoc
// @Summary      Contabilizar movimiento de inventario
// @Description  receipt, issue, transfer o adjust. Todas las líneas se aplican o ninguna.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "type, movedAt, reference, notes, lines[itemId, qty, uom, fromLocationId, toLocationId, reason]"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	userID := GetUserID(c)
	if tenantID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(in); err != nil {
		return h.validationError(c, err)
	}

	input := inventory.MovementInput{
		TenantID: tenantID,
		UserID:   userID,
		Type:     in.Type,
		MovedAt:  in.MovedAt,
		Notes:    in.Notes,
		Lines:    make([]inventory.LineInput, 0, len(in.Lines)),
	}
	if in.Reference != nil {
		input.Reference = &inventory.ReferenceInput{Source: in.Reference.Source, ID: in.Reference.ID}
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, inventory.LineInput{
			ItemID:         l.ItemID,
			Quantity:       l.Quantity,
			UOM:            l.UOM,
			FromLocationID: l.FromLocationID,
			ToLocationID:   l.ToLocationID,
			Reason:         l.Reason,
		})
	}

	mov, err := h.record.RecordMovement(h.ctx(c), input)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// GetMovement godoc
// @Summary      Obtener movimiento con sus líneas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	mov, err := h.query.GetMovement(h.ctx(c), tenantID, c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(mov))
}

// ListMovementTransactions godoc
// @Summary      Log de transacciones de un movimiento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del movimiento"
// @Success      200  {object}  map[string]interface{}  "total, transactions[]"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id}/transactions [get]
func (h *InventoryHandler) ListMovementTransactions(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.query.ListMovementTransactions(h.ctx(c), tenantID, c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":        len(list),
		"transactions": dto.ToStockTransactionResponses(list),
	})
}

// GetBalance godoc
// @Summary      Saldo de un ítem en una ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id      query  string  true  "ID del ítem"
// @Param        location_id  query  string  true  "ID de sede o bin"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/balances [get]
func (h *InventoryHandler) GetBalance(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	bal, err := h.query.GetBalance(h.ctx(c), tenantID, c.Query("item_id"), c.Query("location_id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.ToBalanceResponse(bal))
}

// ctx propaga el request id de Fiber a los logs y a la auditoría.
func (h *InventoryHandler) ctx(c *fiber.Ctx) context.Context {
	rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return logger.WithRequestID(c.UserContext(), rid)
}

func (h *InventoryHandler) validationError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: fmt.Sprintf("%s no cumple %s", fe.Namespace(), fe.Tag()),
			Field:   fe.Field(),
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
}

// domainErrorCodes códigos de los rechazos del libro (422 salvo stock insuficiente).
var domainErrorCodes = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrUnknownItem, fiber.StatusUnprocessableEntity, "UNKNOWN_ITEM"},
	{domain.ErrInvalidLocation, fiber.StatusUnprocessableEntity, "INVALID_LOCATION"},
	{domain.ErrLocationRequired, fiber.StatusUnprocessableEntity, "LOCATION_REQUIRED"},
	{domain.ErrSameLocation, fiber.StatusUnprocessableEntity, "SAME_LOCATION"},
	{domain.ErrInvalidQuantity, fiber.StatusUnprocessableEntity, "INVALID_QUANTITY"},
	{domain.ErrUnsupportedMovementType, fiber.StatusUnprocessableEntity, "UNSUPPORTED_MOVEMENT_TYPE"},
	{domain.ErrEmptyMovement, fiber.StatusUnprocessableEntity, "EMPTY_MOVEMENT"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

func (h *InventoryHandler) writeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrLockTimeout) {
		c.Set(fiber.HeaderRetryAfter, "1")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code:    "LOCK_TIMEOUT",
			Message: domain.ErrLockTimeout.Error(),
		})
	}

	resp := dto.ErrorResponse{}
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		resp.Line = fe.Line
		resp.Field = fe.Field
	}
	for _, m := range domainErrorCodes {
		if errors.Is(err, m.err) {
			resp.Code = m.code
			resp.Message = m.err.Error()
			if fe != nil {
				resp.Message = fe.Error()
			}
			return c.Status(m.status).JSON(resp)
		}
	}

	h.log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
