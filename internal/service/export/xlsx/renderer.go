package xlsx

import (
	"bytes"
	"fmt"

	"github.com/ap-automation/roi-planner/internal/service/export/types"
	"github.com/xuri/excelize/v2"
)

const (
	InputsSheet  = "Inputs"
	ResultsSheet = "Results"

	contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ExportFormat {
	return types.ExportFormatXLSX
}

func (r *Renderer) ContentType() string {
	return contentType
}

func (r *Renderer) Render(data *types.ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	inputsIndex, err := f.NewSheet(InputsSheet)
	if err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(ResultsSheet); err != nil {
		return nil, err
	}
	f.SetActiveSheet(inputsIndex)
	_ = f.DeleteSheet("Sheet1")

	if err := r.writeSheet(f, InputsSheet, []string{"Input", "Value"}, data.Inputs); err != nil {
		return nil, err
	}
	if err := r.writeSheet(f, ResultsSheet, []string{"Metric", "Value"}, data.Results); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) writeSheet(f *excelize.File, sheet string, headers []string, rows []types.Row) error {
	for colIndex, header := range headers {
		if err := f.SetCellValue(sheet, cellRef(colIndex, 1), header); err != nil {
			return err
		}
	}

	for rowIndex, row := range rows {
		if err := f.SetCellValue(sheet, cellRef(0, rowIndex+2), row.Label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellRef(1, rowIndex+2), row.Value); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "A", 32)
}

func cellRef(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}
