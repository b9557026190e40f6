package csv

import (
	"bytes"
	"encoding/csv"

	"github.com/ap-automation/roi-planner/internal/service/export/types"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ExportFormat {
	return types.ExportFormatCSV
}

func (r *Renderer) ContentType() string {
	return "text/csv"
}

func (r *Renderer) Render(data *types.ExportData) ([]byte, error) {
	csvRows := [][]string{{"Section", "Field", "Value"}}

	for _, row := range data.Inputs {
		csvRows = append(csvRows, []string{"input", row.Label, row.Value})
	}
	for _, row := range data.Results {
		csvRows = append(csvRows, []string{"result", row.Label, row.Value})
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(csvRows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
