package v1alpha1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ap-automation/roi-planner/api/v1alpha1"
	"github.com/ap-automation/roi-planner/internal/handlers/v1alpha1/mappers"
	"github.com/ap-automation/roi-planner/internal/service"
	"github.com/ap-automation/roi-planner/pkg/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

type errBadQuery struct {
	error
}

func newErrBadQuery(param, value string) *errBadQuery {
	return &errBadQuery{fmt.Errorf("invalid value %q for %s", value, param)}
}

// (POST /api/v1/scenarios)
func (h *ServiceHandler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	var body v1alpha1.ScenarioCreate
	if err := decode(r, &body); err != nil {
		renderError(w, r, err)
		return
	}

	in, precomputed := mappers.ScenarioCreateFromApi(body)
	scenario, err := h.scenarioSrv.Save(r.Context(), in, precomputed)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	_ = render.Render(w, r, mappers.ScenarioToApi(*scenario))
}

// (GET /api/v1/scenarios)
func (h *ServiceHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	filter, err := scenarioFilter(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	summaries, err := h.scenarioSrv.List(r.Context(), filter)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, mappers.ScenarioListToApi(summaries))
}

// (GET /api/v1/scenarios/{id})
func (h *ServiceHandler) GetScenario(w http.ResponseWriter, r *http.Request) {
	id, err := scenarioID(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	scenario, err := h.scenarioSrv.Get(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	_ = render.Render(w, r, mappers.ScenarioToApi(*scenario))
}

// (GET /api/v1/scenarios/{id}/export)
func (h *ServiceHandler) ExportScenario(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("scenario_handler").
		WithContext(r.Context()).
		Operation("export_scenario").
		WithString("format", r.URL.Query().Get("format")).
		Build()

	id, err := scenarioID(r)
	if err != nil {
		logger.Error(err).Log()
		renderError(w, r, err)
		return
	}

	exported, err := h.exportSrv.Export(r.Context(), id, service.ExportFormat(r.URL.Query().Get("format")))
	if err != nil {
		logger.Error(err).WithUUID("scenario_id", id).Log()
		renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", exported.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exported.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(exported.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(exported.Content); err != nil {
		logger.Error(err).Log()
		return
	}

	logger.Success().WithUUID("scenario_id", id).WithInt("size", len(exported.Content)).Log()
}

func scenarioID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, newErrBadQuery("id", raw)
	}
	return id, nil
}

func scenarioFilter(r *http.Request) (*service.ScenarioFilter, error) {
	query := r.URL.Query()
	filter := &service.ScenarioFilter{Name: query.Get("name")}

	var err error
	if filter.Limit, err = nonNegativeInt(query.Get("limit"), "limit"); err != nil {
		return nil, err
	}
	if filter.Offset, err = nonNegativeInt(query.Get("offset"), "offset"); err != nil {
		return nil, err
	}

	if v := query.Get("profitable"); v != "" {
		filter.ProfitableOnly, err = strconv.ParseBool(v)
		if err != nil {
			return nil, newErrBadQuery("profitable", v)
		}
	}

	return filter, nil
}

func nonNegativeInt(v, param string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, newErrBadQuery(param, v)
	}
	return n, nil
}
