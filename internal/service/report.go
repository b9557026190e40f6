package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/ap-automation/roi-planner/internal/events"
	"github.com/ap-automation/roi-planner/internal/simulation"
	"github.com/ap-automation/roi-planner/internal/validator"
	"github.com/ap-automation/roi-planner/pkg/log"
	"github.com/ap-automation/roi-planner/pkg/metrics"
)

const emailField = "email"

type EventWriter interface {
	Write(ctx context.Context, kind string, body io.Reader) error
}

type ReportRequest struct {
	Email string
	Input simulation.Input
}

// ReportService captures a lead when a visitor asks for the report of a simulation.
// Nothing is persisted; the lead leaves as an event.
type ReportService struct {
	engine    *simulation.Engine
	writer    EventWriter
	validator *validator.Validator
	now       func() time.Time
	logger    *log.StructuredLogger
}

func NewReportService(engine *simulation.Engine, writer EventWriter) *ReportService {
	return &ReportService{
		engine:    engine,
		writer:    writer,
		validator: validator.NewValidator(),
		now:       time.Now,
		logger:    log.NewDebugLogger("report_service"),
	}
}

func (r *ReportService) RequestReport(ctx context.Context, req ReportRequest) error {
	tracer := r.logger.WithContext(ctx).Operation("request_report").
		WithString("scenario_name", req.Input.Name()).
		Build()

	if err := r.validator.Var(emailField, req.Email, "required,email"); err != nil {
		metrics.IncreaseLeadEventsTotalMetric(metrics.LeadRejected)
		tracer.Error(err).Log()
		return simulation.NewErrInvalidInput([]string{emailField}, "a valid email address is required")
	}

	res, err := r.engine.Compute(req.Input)
	if err != nil {
		metrics.IncreaseLeadEventsTotalMetric(metrics.LeadRejected)
		tracer.Error(err).Log()
		return err
	}

	lead := events.LeadEvent{
		Email:        req.Email,
		ScenarioName: req.Input.Name(),
		Input:        req.Input,
		Result:       res,
		RequestedAt:  r.now().UTC(),
	}

	data, err := json.Marshal(lead)
	if err != nil {
		metrics.IncreaseLeadEventsTotalMetric(metrics.LeadFailed)
		tracer.Error(err).Log()
		return err
	}

	if err := r.writer.Write(ctx, events.LeadMessageKind, bytes.NewReader(data)); err != nil {
		metrics.IncreaseLeadEventsTotalMetric(metrics.LeadFailed)
		tracer.Error(err).Log()
		return err
	}

	metrics.UniqueLeadsPerWeek.Add(req.Email)
	metrics.IncreaseLeadEventsTotalMetric(metrics.LeadAccepted)
	tracer.Success().Log()

	return nil
}
