package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/services"
)

func runBoardRouter(secureGroup *echo.Group, boardService services.BoardServiceInterface, logger *zap.Logger) {
	boardController := controllers.NewBoardController(boardService, logger)

	secureGroup.GET("/board", boardController.GetBoard)
	secureGroup.POST("/board/move", boardController.MoveCard)
}
