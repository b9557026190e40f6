package v1alpha1

import (
	"net/http"

	"github.com/ap-automation/roi-planner/api/v1alpha1"
	"github.com/ap-automation/roi-planner/internal/handlers/v1alpha1/mappers"
	"github.com/go-chi/render"
)

// (POST /api/v1/simulate)
func (h *ServiceHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var body v1alpha1.SimulationInput
	if err := decode(r, &body); err != nil {
		renderError(w, r, err)
		return
	}

	res, err := h.simulationSrv.Simulate(r.Context(), mappers.SimulationInputFromApi(body))
	if err != nil {
		renderError(w, r, err)
		return
	}

	_ = render.Render(w, r, mappers.SimulationResultToApi(res))
}

// (POST /api/v1/report/generate)
func (h *ServiceHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var body v1alpha1.ReportRequest
	if err := decode(r, &body); err != nil {
		renderError(w, r, err)
		return
	}

	if err := h.reportSrv.RequestReport(r.Context(), mappers.ReportRequestFromApi(body)); err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusAccepted)
	_ = render.Render(w, r, v1alpha1.Status{Message: "Lead captured. Report ready."})
}

// (GET /api/v1/health)
func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.scenarioSrv.Ping(r.Context()); err != nil {
		renderError(w, r, err)
		return
	}
	_ = render.Render(w, r, v1alpha1.Status{Message: "ok"})
}
