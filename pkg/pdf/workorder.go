// Package pdf генерирует бланк заказа (work order) для склада: шапка
// мастер-класса, контакты и список снаряжения. Текст на иврите, поэтому
// строки раскладываются справа налево перед отрисовкой.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"workshop-system/internal/entities"
	"workshop-system/pkg/config"
)

type WorkOrderGenerator struct {
	fontPath string
}

func NewWorkOrderGenerator(cfg config.PDFConfig) *WorkOrderGenerator {
	return &WorkOrderGenerator{fontPath: cfg.HebrewFontPath}
}

// Generate рисует бланк заказа и возвращает готовый PDF.
func (g *WorkOrderGenerator) Generate(workshop *entities.Workshop, equipment []entities.Equipment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8Font("hebrew", "", g.fontPath)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	title := fmt.Sprintf("הזמנת ציוד - %s", workshop.Title)
	pdf.SetFont("hebrew", "", 18)
	pdf.CellFormat(usable, 12, visualRTL(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("hebrew", "", 12)
	writeLine := func(label, value string) {
		if value == "" {
			return
		}
		pdf.CellFormat(usable, 8, visualRTL(fmt.Sprintf("%s: %s", label, value)), "", 1, "R", false, 0, "")
	}

	if workshop.ScheduledAt.Valid {
		writeLine("תאריך", workshop.ScheduledAt.Time.Format("02/01/2006 15:04"))
	}
	writeLine("מיקום", workshop.Location.String)
	writeLine("לקוח", workshop.ClientName.String)
	if workshop.Participants.Valid {
		writeLine("משתתפים", fmt.Sprintf("%d", workshop.Participants.Int64))
	}
	if workshop.Instructor != nil {
		writeLine("מנחה", workshop.Instructor.Name)
	}

	if workshop.HRContactName.Valid || workshop.ProcurementContactName.Valid {
		pdf.Ln(4)
		pdf.SetFont("hebrew", "", 14)
		pdf.CellFormat(usable, 10, visualRTL("אנשי קשר"), "", 1, "R", false, 0, "")
		pdf.SetFont("hebrew", "", 12)
		if workshop.HRContactName.Valid {
			contact := workshop.HRContactName.String
			if workshop.HRContactPhone.Valid {
				contact = fmt.Sprintf("%s, %s", contact, workshop.HRContactPhone.String)
			}
			writeLine("משאבי אנוש", contact)
		}
		if workshop.ProcurementContactName.Valid {
			contact := workshop.ProcurementContactName.String
			if workshop.ProcurementContactPhone.Valid {
				contact = fmt.Sprintf("%s, %s", contact, workshop.ProcurementContactPhone.String)
			}
			writeLine("רכש", contact)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("hebrew", "", 14)
	pdf.CellFormat(usable, 10, visualRTL("רשימת ציוד"), "", 1, "R", false, 0, "")

	pdf.SetFont("hebrew", "", 12)
	statusCol, nameCol := 40.0, usable-40.0

	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(statusCol, 9, visualRTL("סטטוס"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(nameCol, 9, visualRTL("פריט"), "1", 1, "C", true, 0, "")

	for _, item := range equipment {
		pdf.CellFormat(statusCol, 8, item.Status.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(nameCol, 8, visualRTL(item.Name), "1", 1, "R", false, 0, "")
	}

	if len(equipment) == 0 {
		pdf.CellFormat(usable, 8, visualRTL("לא הוזמן ציוד"), "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("ошибка генерации PDF: %w", err)
	}
	return buf.Bytes(), nil
}
