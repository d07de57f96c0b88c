package controllers

import (
	"net/http"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/lifecycle"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type MaintenanceController struct {
	maintenanceService services.MaintenanceServiceInterface
	dashboardService   services.DashboardServiceInterface
	logger             *zap.Logger
}

func NewMaintenanceController(
	maintenanceService services.MaintenanceServiceInterface,
	dashboardService services.DashboardServiceInterface,
	logger *zap.Logger,
) *MaintenanceController {
	return &MaintenanceController{
		maintenanceService: maintenanceService,
		dashboardService:   dashboardService,
		logger:             logger,
	}
}

func (c *MaintenanceController) requestID(ctx echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Malformed request id",
			err,
			map[string]interface{}{"param": ctx.Param("id")},
		)
	}
	return id, nil
}

func (c *MaintenanceController) GetRequests(ctx echo.Context) error {
	res, err := c.maintenanceService.GetRequests(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetRequests: failed to list maintenance requests", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Maintenance requests fetched", http.StatusOK)
}

func (c *MaintenanceController) FindRequest(ctx echo.Context) error {
	id, err := c.requestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.FindRequest(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindRequest: lookup failed", zap.String("id", id.String()), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Maintenance request found", http.StatusOK)
}

func (c *MaintenanceController) CreateRequest(ctx echo.Context) error {
	var payload dto.CreateMaintenanceRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateRequest: failed to bind payload", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Malformed request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.CreateRequest(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateRequest: failed to create maintenance request", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.dashboardService.InvalidateStats(ctx.Request().Context())
	return utils.SuccessResponse(ctx, res, "Maintenance request created", http.StatusCreated)
}

func (c *MaintenanceController) UpdateRequest(ctx echo.Context) error {
	id, err := c.requestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateMaintenanceRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdateRequest: failed to bind payload", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Malformed request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.maintenanceService.UpdateRequest(ctx.Request().Context(), id, payload)
	if err != nil {
		c.logger.Error("UpdateRequest: failed to update maintenance request", zap.String("id", id.String()), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Maintenance request updated", http.StatusOK)
}

func (c *MaintenanceController) ChangeState(ctx echo.Context) error {
	id, err := c.requestID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ChangeStateDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("ChangeState: failed to bind payload", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Malformed request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	// The validator already vetted the state string.
	newState, _ := lifecycle.ParseState(payload.State)

	res, err := c.maintenanceService.ChangeState(ctx.Request().Context(), id, newState)
	if err != nil {
		c.logger.Warn("ChangeState: transition rejected or failed",
			zap.String("id", id.String()),
			zap.String("to", payload.State),
			zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.dashboardService.InvalidateStats(ctx.Request().Context())
	return utils.SuccessResponse(ctx, res, "State changed", http.StatusOK)
}

func (c *MaintenanceController) GetCalendar(ctx echo.Context) error {
	res, err := c.maintenanceService.GetCalendar(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetCalendar: failed to build calendar", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Calendar fetched", http.StatusOK)
}
