package export

import (
	"fmt"
	"io"

	"github.com/alexanderramin/solplan/internal/domain"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Gantt"

// WriteXLSX writes the phase table as a workbook with a styled header,
// real date cells and the phase color as the phase cell fill.
func WriteXLSX(w io.Writer, projects []*domain.Project) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#003D5B"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	dateFmt := "dd/mm/yyyy"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return fmt.Errorf("creating date style: %w", err)
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(Headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	phaseStyles := make(map[string]int)
	for i, r := range Flatten(projects) {
		row := i + 2
		values := []any{
			r.ProjectIndex,
			r.SiteName,
			r.CapacityKWc,
			r.PhaseName,
			r.StartDate,
			r.EndDate,
			r.DurationMonths,
			milestoneText(r.Milestone),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}

		startCell, _ := excelize.CoordinatesToCellName(5, row)
		endCell, _ := excelize.CoordinatesToCellName(6, row)
		if err := f.SetCellStyle(sheetName, startCell, endCell, dateStyle); err != nil {
			return fmt.Errorf("styling dates: %w", err)
		}

		if r.Color == "" {
			continue
		}
		style, ok := phaseStyles[r.Color]
		if !ok {
			style, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Color: []string{r.Color}, Pattern: 1},
			})
			if err != nil {
				return fmt.Errorf("creating phase style: %w", err)
			}
			phaseStyles[r.Color] = style
		}
		phaseCell, _ := excelize.CoordinatesToCellName(4, row)
		if err := f.SetCellStyle(sheetName, phaseCell, phaseCell, style); err != nil {
			return fmt.Errorf("styling phase: %w", err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "H", 18); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
