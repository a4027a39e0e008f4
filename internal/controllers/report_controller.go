package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/entities"
	"workshop-system/internal/services"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/utils"
)

type ReportController struct {
	reportService services.MonthlyReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.MonthlyReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetMonthlyReports - отчёты инструкторов за период ?year=&month=.
func (c *ReportController) GetMonthlyReports(ctx echo.Context) error {
	year, month, err := parsePeriod(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reportService.GetReports(ctx.Request().Context(), year, month)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Месячные отчёты успешно получены", http.StatusOK)
}

// GenerateMonthlyReports пересчитывает отчёты за период.
func (c *ReportController) GenerateMonthlyReports(ctx echo.Context) error {
	var payload dto.CreateMonthlyReportDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if payload.Month < 1 || payload.Month > 12 || payload.Year < 2000 {
		return utils.ErrorResponse(ctx,
			apperrors.NewInvalidInputError("некорректный период: %02d/%d", payload.Month, payload.Year),
			c.logger)
	}

	res, err := c.reportService.GenerateReports(ctx.Request().Context(), payload.Year, payload.Month)
	if err != nil {
		c.logger.Error("GenerateMonthlyReports: пересчёт не удался", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Месячные отчёты успешно пересчитаны", http.StatusOK)
}

func (c *ReportController) ApproveReport(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reportService.ApproveReport(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Отчёт успешно утверждён", http.StatusOK)
}

// GetWorkshopReport - сводный отчёт по мастер-классам. Формат ответа
// задаётся ?format=json|csv|xlsx.
func (c *ReportController) GetWorkshopReport(ctx echo.Context) error {
	filter := entities.ReportFilter{}
	if v, err := strconv.Atoi(ctx.QueryParam("year")); err == nil {
		filter.Year = v
	}
	if v, err := strconv.Atoi(ctx.QueryParam("month")); err == nil {
		filter.Month = v
	}
	if v, err := strconv.ParseUint(ctx.QueryParam("instructor_id"), 10, 64); err == nil {
		filter.InstructorID = v
	}

	rows, err := c.reportService.GetWorkshopRows(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	switch strings.ToLower(ctx.QueryParam("format")) {
	case "csv":
		return c.respondWithCSV(ctx, rows)
	case "xlsx":
		return c.respondWithXLSX(ctx, rows)
	default:
		return utils.SuccessResponse(ctx, rows, "Сводный отчёт успешно сформирован", http.StatusOK)
	}
}

var workshopReportHeaders = []string{
	"ID", "Название", "Дата", "Место", "Участники", "Статус", "Клиент", "Инструктор",
}

func workshopRowToSlice(row entities.WorkshopReportRow) []interface{} {
	var scheduled string
	if row.ScheduledAt != nil {
		scheduled = row.ScheduledAt.Format("02.01.2006 15:04")
	}
	return []interface{}{
		row.ID, row.Title, scheduled, row.Location, row.Participants,
		row.Status, row.ClientName, row.InstructorName,
	}
}

func (c *ReportController) respondWithCSV(ctx echo.Context, rows []entities.WorkshopReportRow) error {
	fileName := fmt.Sprintf("workshops_%s.csv", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)

	// BOM, чтобы Excel распознал UTF-8.
	if _, err := ctx.Response().Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	w := csv.NewWriter(ctx.Response().Writer)
	if err := w.Write(workshopReportHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, 0, len(workshopReportHeaders))
		for _, cell := range workshopRowToSlice(row) {
			record = append(record, fmt.Sprint(cell))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, rows []entities.WorkshopReportRow) error {
	f := excelize.NewFile()
	sheet := "Мастер-классы"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &workshopReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "H1", style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		record := workshopRowToSlice(row)
		f.SetSheetRow(sheet, cell, &record)
	}
	f.SetColWidth(sheet, "B", "B", 35)
	f.SetColWidth(sheet, "C", "D", 20)
	f.SetColWidth(sheet, "G", "H", 25)

	fileName := fmt.Sprintf("workshops_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func parsePeriod(ctx echo.Context) (int, int, error) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if raw := ctx.QueryParam("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, apperrors.NewInvalidInputError("некорректный год: %q", raw)
		}
		year = v
	}
	if raw := ctx.QueryParam("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			return 0, 0, apperrors.NewInvalidInputError("некорректный месяц: %q", raw)
		}
		month = v
	}
	return year, month, nil
}
