package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/services"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/utils"
)

type NotificationPreferencesController struct {
	prefsService services.NotificationPreferencesServiceInterface
	logger       *zap.Logger
}

func NewNotificationPreferencesController(
	prefsService services.NotificationPreferencesServiceInterface,
	logger *zap.Logger,
) *NotificationPreferencesController {
	return &NotificationPreferencesController{prefsService: prefsService, logger: logger}
}

// GetMyPreferences - настройки уведомлений текущего пользователя.
func (c *NotificationPreferencesController) GetMyPreferences(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	res, err := c.prefsService.GetForUser(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Настройки уведомлений успешно получены", http.StatusOK)
}

// UpdateMyPreferences меняет только переданные переключатели.
func (c *NotificationPreferencesController) UpdateMyPreferences(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	var payload dto.UpdateNotificationPreferencesDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}

	res, err := c.prefsService.UpdateForUser(ctx.Request().Context(), userID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Настройки уведомлений успешно обновлены", http.StatusOK)
}
