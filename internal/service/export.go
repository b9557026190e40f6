package service

import (
	"context"

	"github.com/ap-automation/roi-planner/internal/service/export"
	"github.com/ap-automation/roi-planner/internal/service/export/csv"
	"github.com/ap-automation/roi-planner/internal/service/export/types"
	"github.com/ap-automation/roi-planner/internal/service/export/xlsx"
	"github.com/google/uuid"
)

type ExportFormat = types.ExportFormat

const (
	ExportFormatXLSX = types.ExportFormatXLSX
	ExportFormatCSV  = types.ExportFormatCSV
)

// ExportedScenario is a rendered scenario ready to be served as a download.
type ExportedScenario struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ExportService struct {
	scenarios *ScenarioService
	renderers map[types.ExportFormat]types.ExportRenderer
}

func NewExportService(scenarios *ScenarioService) *ExportService {
	service := &ExportService{
		scenarios: scenarios,
		renderers: make(map[types.ExportFormat]types.ExportRenderer),
	}

	xlsxRenderer := xlsx.NewRenderer()
	csvRenderer := csv.NewRenderer()

	service.renderers[xlsxRenderer.SupportedFormat()] = xlsxRenderer
	service.renderers[csvRenderer.SupportedFormat()] = csvRenderer

	return service
}

// Export renders the stored scenario id. An empty format means xlsx.
func (e *ExportService) Export(ctx context.Context, id uuid.UUID, format types.ExportFormat) (*ExportedScenario, error) {
	if format == "" {
		format = types.ExportFormatXLSX
	}

	renderer, exists := e.renderers[format]
	if !exists {
		return nil, NewErrUnsupportedFormat(string(format))
	}

	scenario, err := e.scenarios.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := renderer.Render(export.NewExportData(scenario))
	if err != nil {
		return nil, err
	}

	return &ExportedScenario{
		Filename:    "scenario-" + scenario.ID.String() + "." + string(format),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}
