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

type SettingController struct {
	settingService services.SettingServiceInterface
	logger         *zap.Logger
}

func NewSettingController(settingService services.SettingServiceInterface, logger *zap.Logger) *SettingController {
	return &SettingController{settingService: settingService, logger: logger}
}

func (c *SettingController) GetSettings(ctx echo.Context) error {
	res, err := c.settingService.GetSettings(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Настройки успешно получены", http.StatusOK)
}

func (c *SettingController) FindSetting(ctx echo.Context) error {
	key := ctx.Param("key")
	if key == "" {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("ключ настройки обязателен"), c.logger)
	}

	res, err := c.settingService.FindSetting(ctx.Request().Context(), key)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Настройка успешно найдена", http.StatusOK)
}

func (c *SettingController) UpsertSetting(ctx echo.Context) error {
	key := ctx.Param("key")
	if key == "" {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("ключ настройки обязателен"), c.logger)
	}

	var payload dto.UpdateSettingDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.settingService.UpsertSetting(ctx.Request().Context(), key, payload.Value)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Настройка успешно сохранена", http.StatusOK)
}
