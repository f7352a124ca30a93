package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/queueless/queueless-api/internal/model"
)

const (
	baselineSheetName = "Baselines"
	signalSheetName   = "Live Signals"
)

// ReportSource is the reference-data surface the report generator reads.
type ReportSource interface {
	GetOffice(officeID string) (*model.Office, error)
	ListOfficeBaselines(officeID string) ([]model.BaselineRecord, error)
}

// ReportGenerator builds Excel exports of an office's baseline grid and
// recent signal activity.
type ReportGenerator struct {
	reference ReportSource
	signals   SignalSource
}

// NewReportGenerator creates a new report generator.
func NewReportGenerator(reference ReportSource, signals SignalSource) *ReportGenerator {
	return &ReportGenerator{reference: reference, signals: signals}
}

// Generate builds the workbook for one office: a day-by-slot baseline grid
// plus the signals of the trailing window. Returns (nil, nil, nil) when the
// office does not exist.
func (g *ReportGenerator) Generate(officeID string, now time.Time) (*bytes.Buffer, *model.Office, error) {
	office, err := g.reference.GetOffice(officeID)
	if err != nil {
		return nil, nil, err
	}
	if office == nil {
		return nil, nil, nil
	}

	baselines, err := g.reference.ListOfficeBaselines(officeID)
	if err != nil {
		return nil, nil, err
	}

	signals, err := g.signals.ListSince(officeID, now.Add(-SignalWindow))
	if err != nil {
		return nil, nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, baselineSheetName); err != nil {
		return nil, nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(signalSheetName); err != nil {
		return nil, nil, fmt.Errorf("create sheet: %w", err)
	}

	if err := g.writeBaselineGrid(f, office, baselines); err != nil {
		return nil, nil, fmt.Errorf("write baselines: %w", err)
	}
	if err := g.writeSignals(f, signals); err != nil {
		return nil, nil, fmt.Errorf("write signals: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, nil, fmt.Errorf("write buffer: %w", err)
	}

	return buf, office, nil
}

// writeBaselineGrid lays out slots as rows and weekdays as columns, with
// the office name on top.
func (g *ReportGenerator) writeBaselineGrid(f *excelize.File, office *model.Office, baselines []model.BaselineRecord) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	if err := f.SetCellValue(baselineSheetName, "A1", office.Name); err != nil {
		return err
	}

	// Header row: slot column plus the seven weekdays.
	if err := f.SetCellValue(baselineSheetName, "A2", "Time Slot"); err != nil {
		return err
	}
	for day, name := range model.DayNames {
		cell, _ := excelize.CoordinatesToCellName(day+2, 2)
		if err := f.SetCellValue(baselineSheetName, cell, name); err != nil {
			return err
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(model.DayNames)+1, 2)
	if err := f.SetCellStyle(baselineSheetName, "A2", endHeader, headerStyle); err != nil {
		return err
	}

	// Collect the slots actually present, in first-seen order, and index
	// the grid by (slot, day).
	grid := make(map[string]map[int]int)
	var slots []string
	for _, b := range baselines {
		if _, ok := grid[b.TimeSlot]; !ok {
			grid[b.TimeSlot] = make(map[int]int)
			slots = append(slots, b.TimeSlot)
		}
		grid[b.TimeSlot][b.DayOfWeek] = b.AvgWaitMinutes
	}

	for row, slot := range slots {
		excelRow := row + 3

		cell, _ := excelize.CoordinatesToCellName(1, excelRow)
		if err := f.SetCellValue(baselineSheetName, cell, slot); err != nil {
			return err
		}

		for day := range model.DayNames {
			minutes, ok := grid[slot][day]
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(day+2, excelRow)
			if err := f.SetCellValue(baselineSheetName, cell, minutes); err != nil {
				return err
			}
		}
	}

	for col := 1; col <= len(model.DayNames)+1; col++ {
		colName, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(baselineSheetName, colName, colName, 14); err != nil {
			return err
		}
	}

	return nil
}

// writeSignals lists the window's signals and a count summary.
func (g *ReportGenerator) writeSignals(f *excelize.File, signals []model.LiveSignal) error {
	headers := []string{"Recorded At", "Signal Type"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(signalSheetName, cell, header); err != nil {
			return err
		}
	}

	for row, s := range signals {
		excelRow := row + 2

		cell, _ := excelize.CoordinatesToCellName(1, excelRow)
		if err := f.SetCellValue(signalSheetName, cell, s.RecordedAt.Format(time.RFC3339)); err != nil {
			return err
		}
		cell, _ = excelize.CoordinatesToCellName(2, excelRow)
		if err := f.SetCellValue(signalSheetName, cell, string(s.SignalType)); err != nil {
			return err
		}
	}

	entered, completed := CountByType(signals)
	summaryRow := len(signals) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	if err := f.SetCellValue(signalSheetName, cell, fmt.Sprintf("Entered: %d", entered)); err != nil {
		return err
	}
	cell, _ = excelize.CoordinatesToCellName(2, summaryRow)
	if err := f.SetCellValue(signalSheetName, cell, fmt.Sprintf("Completed: %d", completed)); err != nil {
		return err
	}

	for col := 1; col <= 2; col++ {
		colName, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(signalSheetName, colName, colName, 24); err != nil {
			return err
		}
	}

	return nil
}
