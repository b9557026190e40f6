package types

import (
	"github.com/ap-automation/roi-planner/internal/store/model"
)

// NotAvailable is written in place of an undefined metric.
const NotAvailable = "n/a"

type ExportRenderer interface {
	Render(data *ExportData) ([]byte, error)
	SupportedFormat() ExportFormat
	ContentType() string
}

type ExportFormat string

const (
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatCSV  ExportFormat = "csv"
)

type ExportData struct {
	Scenario *model.Scenario
	Inputs   []Row
	Results  []Row
}

// Row is a label and an already formatted value.
type Row struct {
	Label string
	Value string
}
