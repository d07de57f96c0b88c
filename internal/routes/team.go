package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/services"
)

func runTeamRouter(secureGroup *echo.Group, teamService services.TeamServiceInterface, logger *zap.Logger) {
	teamController := controllers.NewTeamController(teamService, logger)

	secureGroup.GET("/teams", teamController.GetTeams)
	secureGroup.GET("/teams/technicians", teamController.GetTechnicians)
	secureGroup.GET("/teams/:id", teamController.FindTeam)
	secureGroup.POST("/teams", teamController.CreateTeam)
}
