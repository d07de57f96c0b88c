package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/services"
)

func runMaintenanceRouter(
	secureGroup *echo.Group,
	maintenanceService services.MaintenanceServiceInterface,
	dashboardService services.DashboardServiceInterface,
	logger *zap.Logger,
) {
	maintenanceController := controllers.NewMaintenanceController(maintenanceService, dashboardService, logger)

	secureGroup.GET("/maintenance", maintenanceController.GetRequests)
	secureGroup.GET("/maintenance/calendar", maintenanceController.GetCalendar)
	secureGroup.GET("/maintenance/:id", maintenanceController.FindRequest)
	secureGroup.POST("/maintenance", maintenanceController.CreateRequest)
	secureGroup.PUT("/maintenance/:id", maintenanceController.UpdateRequest)
	secureGroup.PATCH("/maintenance/:id/state", maintenanceController.ChangeState)
}
