package v1alpha1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ap-automation/roi-planner/api/v1alpha1"
	"github.com/ap-automation/roi-planner/internal/service"
	"github.com/ap-automation/roi-planner/internal/simulation"
	"github.com/ap-automation/roi-planner/pkg/requestid"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ServiceHandler struct {
	simulationSrv *service.SimulationService
	scenarioSrv   *service.ScenarioService
	reportSrv     *service.ReportService
	exportSrv     *service.ExportService
}

func NewServiceHandler(
	simulationSrv *service.SimulationService,
	scenarioSrv *service.ScenarioService,
	reportSrv *service.ReportService,
	exportSrv *service.ExportService,
) *ServiceHandler {
	return &ServiceHandler{
		simulationSrv: simulationSrv,
		scenarioSrv:   scenarioSrv,
		reportSrv:     reportSrv,
		exportSrv:     exportSrv,
	}
}

// Routes mounts the API under the router. The router is expected to be mounted at /api/v1.
func (h *ServiceHandler) Routes(r chi.Router) {
	r.Post("/simulate", h.Simulate)
	r.Route("/scenarios", func(r chi.Router) {
		r.Post("/", h.CreateScenario)
		r.Get("/", h.ListScenarios)
		r.Get("/{id}", h.GetScenario)
		r.Get("/{id}/export", h.ExportScenario)
	})
	r.Post("/report/generate", h.GenerateReport)
	r.Get("/health", h.Health)
}

// decode reads a json body into v. Type mismatches are reported as invalid input on the offending field.
func decode(r *http.Request, v any) error {
	err := render.DecodeJSON(r.Body, v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return simulation.NewErrInvalidInput([]string{wireField(typeErr.Field)}, fmt.Sprintf("expected %s", typeErr.Type))
	}

	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}

	return &errMalformedBody{err}
}

// wireField drops the embedded struct path encoding/json prefixes to fields promoted from
// an embedded body, e.g. "SimulationInput.hourly_wage".
func wireField(field string) string {
	if i := strings.LastIndex(field, "."); i >= 0 {
		return field[i+1:]
	}
	return field
}

var errEmptyBody = errors.New("empty body")

type errMalformedBody struct {
	error
}

// renderError writes err with the status its type maps to.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	reply := v1alpha1.ErrorReply{
		Error: v1alpha1.Error{
			Message:   err.Error(),
			RequestId: requestid.FromContextPtr(r.Context()),
		},
		StatusCode: statusCode(err),
	}

	var invalid *simulation.ErrInvalidInput
	if errors.As(err, &invalid) {
		reply.Fields = invalid.Fields
	}

	if reply.StatusCode == http.StatusInternalServerError {
		reply.Message = "internal error"
	}

	_ = render.Render(w, r, reply)
}

func statusCode(err error) int {
	var (
		invalid     *simulation.ErrInvalidInput
		notFound    *service.ErrResourceNotFound
		unavailable *service.ErrBackendUnavailable
		unsupported *service.ErrUnsupportedFormat
		malformed   *errMalformedBody
		badQuery    *errBadQuery
	)

	switch {
	case errors.As(err, &invalid),
		errors.As(err, &unsupported),
		errors.As(err, &malformed),
		errors.As(err, &badQuery),
		errors.Is(err, errEmptyBody):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
