package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/queueless/queueless-api/internal/model"
)

type fakeReportSource struct {
	office    *model.Office
	baselines []model.BaselineRecord
}

func (f *fakeReportSource) GetOffice(officeID string) (*model.Office, error) {
	if f.office != nil && f.office.ID == officeID {
		return f.office, nil
	}
	return nil, nil
}

func (f *fakeReportSource) ListOfficeBaselines(officeID string) ([]model.BaselineRecord, error) {
	return f.baselines, nil
}

func TestGenerateReport(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	reference := &fakeReportSource{
		office: &model.Office{ID: "office-1", LocationID: "loc-1", Name: "Central Registry"},
		baselines: []model.BaselineRecord{
			{OfficeID: "office-1", DayOfWeek: 0, TimeSlot: "09:00-10:00", AvgWaitMinutes: 40},
			{OfficeID: "office-1", DayOfWeek: 1, TimeSlot: "09:00-10:00", AvgWaitMinutes: 35},
			{OfficeID: "office-1", DayOfWeek: 0, TimeSlot: "10:00-11:00", AvgWaitMinutes: 25},
		},
	}
	signals := &fakeSignals{signals: []model.LiveSignal{
		{OfficeID: "office-1", SignalType: model.SignalEntered, RecordedAt: now.Add(-10 * time.Minute)},
		{OfficeID: "office-1", SignalType: model.SignalCompleted, RecordedAt: now.Add(-5 * time.Minute)},
	}}

	g := NewReportGenerator(reference, signals)

	buf, office, err := g.Generate("office-1", now)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if office == nil || office.Name != "Central Registry" {
		t.Fatalf("office = %+v", office)
	}
	if buf.Len() == 0 {
		t.Fatal("workbook buffer is empty")
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue("Baselines", "A1")
	if err != nil {
		t.Fatalf("read A1: %v", err)
	}
	if title != "Central Registry" {
		t.Errorf("A1 = %q, want office name", title)
	}

	// Monday column, first slot row
	monday, err := f.GetCellValue("Baselines", "B3")
	if err != nil {
		t.Fatalf("read B3: %v", err)
	}
	if monday != "40" {
		t.Errorf("B3 = %q, want 40", monday)
	}

	sheets := f.GetSheetList()
	found := false
	for _, s := range sheets {
		if s == "Live Signals" {
			found = true
		}
	}
	if !found {
		t.Errorf("sheets = %v, missing Live Signals", sheets)
	}
}

func TestGenerateReportUnknownOffice(t *testing.T) {
	g := NewReportGenerator(&fakeReportSource{}, &fakeSignals{})

	buf, office, err := g.Generate("ghost", time.Now())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if buf != nil || office != nil {
		t.Errorf("Generate = (%v, %v), want (nil, nil)", buf, office)
	}
}
