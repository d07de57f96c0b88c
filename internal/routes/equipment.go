package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/services"
)

func runEquipmentRouter(
	secureGroup *echo.Group,
	equipmentService services.EquipmentServiceInterface,
	importService services.EquipmentImportServiceInterface,
	logger *zap.Logger,
) {
	equipmentController := controllers.NewEquipmentController(equipmentService, importService, logger)

	secureGroup.GET("/equipment", equipmentController.GetEquipments)
	secureGroup.GET("/equipment/:id", equipmentController.FindEquipment)
	secureGroup.POST("/equipment", equipmentController.CreateEquipment)
	secureGroup.POST("/equipment/import", equipmentController.ImportEquipments)
	secureGroup.PUT("/equipment/:id", equipmentController.UpdateEquipment)
	secureGroup.DELETE("/equipment/:id", equipmentController.DeleteEquipment)
}
