package controllers

import (
	"errors"
	"net/http"

	"maintenance-system/internal/board"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type BoardController struct {
	boardService services.BoardServiceInterface
	logger       *zap.Logger
}

func NewBoardController(boardService services.BoardServiceInterface, logger *zap.Logger) *BoardController {
	return &BoardController{boardService: boardService, logger: logger}
}

// moveResponse carries the authoritative board regardless of the move outcome,
// so the client can re-render after a rollback without a second request.
type moveResponse struct {
	Moved   bool           `json:"moved"`
	Board   board.Snapshot `json:"board"`
	Notices []board.Notice `json:"notices,omitempty"`
}

func (c *BoardController) GetBoard(ctx echo.Context) error {
	filter := ctx.QueryParam("equipment")

	res, err := c.boardService.GetBoard(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetBoard: failed to project board", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Board fetched", http.StatusOK)
}

func (c *BoardController) MoveCard(ctx echo.Context) error {
	var payload dto.MoveCardDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("MoveCard: failed to bind payload", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Malformed request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	snapshot, notices, moveErr := c.boardService.MoveCard(ctx.Request().Context(), payload)

	switch {
	case moveErr == nil:
		return utils.SuccessResponse(ctx,
			moveResponse{Moved: true, Board: snapshot, Notices: notices},
			"Card moved", http.StatusOK)

	case errors.Is(moveErr, board.ErrMoveDeclined):
		// Cancellation was not confirmed; nothing changed.
		return utils.SuccessResponse(ctx,
			moveResponse{Moved: false, Board: snapshot, Notices: notices},
			"Move requires confirmation", http.StatusOK)

	case errors.Is(moveErr, board.ErrMoveInFlight):
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusConflict,
				"Another move for this card is still being saved", moveErr, nil),
			c.logger)

	case errors.Is(moveErr, apperrors.ErrNotFound),
		errors.As(moveErr, new(*apperrors.InvalidInputError)):
		return utils.ErrorResponse(ctx, moveErr, c.logger)

	default:
		// The coordinator already rolled the board back and queued a notice;
		// hand the restored board to the client along with the failure.
		c.logger.Error("MoveCard: move failed and was rolled back",
			zap.String("request_id", payload.RequestID), zap.Error(moveErr))
		return ctx.JSON(http.StatusOK, &utils.HTTPResponse{
			Status:  false,
			Body:    moveResponse{Moved: false, Board: snapshot, Notices: notices},
			Message: "Failed to save the move",
		})
	}
}
