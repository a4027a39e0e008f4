package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workshop-system/internal/catalog"
	"workshop-system/pkg/utils"
)

// ExerciseController отдаёт каталог упражнений и считает потребность в
// снаряжении для предпросмотра при бронировании.
type ExerciseController struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

func NewExerciseController(cat *catalog.Catalog, logger *zap.Logger) *ExerciseController {
	return &ExerciseController{catalog: cat, logger: logger}
}

func (c *ExerciseController) GetExercises(ctx echo.Context) error {
	return utils.SuccessResponse(ctx, c.catalog.Exercises(), "Каталог упражнений успешно получен", http.StatusOK)
}

func (c *ExerciseController) FindExercise(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	exercise, err := c.catalog.FindExercise(id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, exercise, "Упражнение успешно найдено", http.StatusOK)
}

// GetEquipmentPreview считает итоговую потребность в снаряжении по выбору:
// ?subActivities=1,2,3&numGroups=4. Пустой выбор означает все под-активности.
func (c *ExerciseController) GetEquipmentPreview(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var subActivityIDs []uint64
	if raw := ctx.QueryParam("subActivities"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil {
				continue
			}
			subActivityIDs = append(subActivityIDs, v)
		}
	}

	numGroups := 1
	if raw := ctx.QueryParam("numGroups"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			numGroups = v
		}
	}

	requirements, err := c.catalog.EquipmentForSelection(id, subActivityIDs)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	totals := catalog.GetTotalEquipment(requirements, numGroups)
	return utils.SuccessResponse(ctx, totals, "Потребность в снаряжении успешно рассчитана", http.StatusOK)
}
