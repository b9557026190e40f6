package v1alpha1

import (
	"net/http"

	"github.com/go-chi/render"
)

func (s Status) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s SimulationResult) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s Scenario) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s ScenarioSummary) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// ErrorReply is an Error rendered with its status code.
type ErrorReply struct {
	Error
	StatusCode int `json:"-"`
}

func (e ErrorReply) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}
