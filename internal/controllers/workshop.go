package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/services"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/pdf"
	"workshop-system/pkg/utils"
)

type WorkshopController struct {
	workshopService  services.WorkshopServiceInterface
	equipmentService services.EquipmentServiceInterface
	workOrderGen     *pdf.WorkOrderGenerator
	logger           *zap.Logger
}

func NewWorkshopController(
	workshopService services.WorkshopServiceInterface,
	equipmentService services.EquipmentServiceInterface,
	workOrderGen *pdf.WorkOrderGenerator,
	logger *zap.Logger,
) *WorkshopController {
	return &WorkshopController{
		workshopService:  workshopService,
		equipmentService: equipmentService,
		workOrderGen:     workOrderGen,
		logger:           logger,
	}
}

func (c *WorkshopController) GetWorkshops(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.workshopService.GetWorkshops(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Список мастер-классов успешно получен", http.StatusOK, total)
}

func (c *WorkshopController) FindWorkshop(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.workshopService.FindWorkshop(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Мастер-класс успешно найден", http.StatusOK)
}

func (c *WorkshopController) CreateWorkshop(ctx echo.Context) error {
	var payload dto.CreateWorkshopDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.workshopService.CreateWorkshop(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateWorkshop: бронирование не удалось", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Мастер-класс успешно забронирован", http.StatusCreated)
}

func (c *WorkshopController) UpdateWorkshop(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateWorkshopDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.workshopService.UpdateWorkshop(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Мастер-класс успешно обновлён", http.StatusOK)
}

// UpdateChecklist заменяет чек-лист подготовки целиком.
func (c *WorkshopController) UpdateChecklist(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var checklist map[string]string
	if err := ctx.Bind(&checklist); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}

	if err := c.workshopService.UpdateChecklist(ctx.Request().Context(), id, checklist); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Чек-лист успешно обновлён", http.StatusOK)
}

func (c *WorkshopController) DeleteWorkshop(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.workshopService.DeleteWorkshop(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Мастер-класс и связанные данные успешно удалены", http.StatusOK)
}

func (c *WorkshopController) GetWorkshopEquipment(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.GetEquipmentByWorkshop(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Снаряжение мастер-класса успешно получено", http.StatusOK)
}

func (c *WorkshopController) CreateSummary(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateWorkshopSummaryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.workshopService.CreateSummary(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Итог мастер-класса успешно сохранён", http.StatusCreated)
}

func (c *WorkshopController) GetSummary(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.workshopService.GetSummary(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Итог мастер-класса успешно получен", http.StatusOK)
}

// GetWorkOrderPDF отдаёт бланк заказа для склада: шапка мастер-класса
// и список снаряжения, текст на иврите.
func (c *WorkshopController) GetWorkOrderPDF(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	reqCtx := ctx.Request().Context()

	workshop, err := c.workshopService.FindWorkshop(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	equipment, err := c.equipmentService.GetEquipmentByWorkshop(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	payload, err := c.workOrderGen.Generate(workshop, equipment)
	if err != nil {
		c.logger.Error("GetWorkOrderPDF: генерация не удалась", zap.Uint64("workshopID", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileName := fmt.Sprintf("work_order_%d.pdf", id)
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	return ctx.Blob(http.StatusOK, "application/pdf", payload)
}
