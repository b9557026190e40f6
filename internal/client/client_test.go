package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/ap-automation/roi-planner/api/v1alpha1"
	"github.com/ap-automation/roi-planner/internal/client"
	"github.com/ap-automation/roi-planner/pkg/requestid"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("roi-planner client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("simulates", func() {
		payback := 4.5
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Method).To(Equal(http.MethodPost))
			Expect(r.URL.Path).To(Equal("/api/v1/simulate"))
			Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))

			var in v1alpha1.SimulationInput
			Expect(json.NewDecoder(r.Body).Decode(&in)).To(Succeed())
			Expect(in.MonthlyInvoiceVolume).To(Equal(2000.0))

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(v1alpha1.SimulationResult{MonthlySavings: 11200, PaybackMonths: &payback})
		}))
		defer server.Close()

		res, err := client.NewClient(server.URL+"/", time.Second).Simulate(ctx, v1alpha1.SimulationInput{MonthlyInvoiceVolume: 2000})
		Expect(err).To(BeNil())
		Expect(res.MonthlySavings).To(Equal(11200.0))
		Expect(*res.PaybackMonths).To(Equal(4.5))
	})

	It("sends list filters and forwards the request id", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/api/v1/scenarios"))
			Expect(r.URL.Query().Get("name")).To(Equal("vendor"))
			Expect(r.URL.Query().Get("limit")).To(Equal("5"))
			Expect(r.URL.Query().Get("profitable")).To(Equal("true"))
			Expect(r.URL.Query().Has("offset")).To(BeFalse())
			Expect(r.Header.Get(requestid.Header)).To(Equal("cli-1"))
			_, _ = w.Write([]byte(`[{"id":"` + uuid.NewString() + `","scenario_name":"vendor a","monthly_savings":1,"roi_percentage":null,"created_at":"2026-09-01T00:00:00Z"}]`))
		}))
		defer server.Close()

		list, err := client.NewClient(server.URL, 0).ListScenarios(requestid.ToContext(ctx, "cli-1"),
			client.ListOptions{Name: "vendor", Limit: 5, ProfitableOnly: true})
		Expect(err).To(BeNil())
		Expect(list).To(HaveLen(1))
		Expect(list[0].RoiPercentage).To(BeNil())
	})

	It("returns api errors with their fields", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(requestid.Header, "req-9")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"invalid input","fields":["hourly_wage"]}`))
		}))
		defer server.Close()

		_, err := client.NewClient(server.URL, 0).CreateScenario(ctx, v1alpha1.ScenarioCreate{})
		Expect(err).NotTo(BeNil())

		var apiErr *client.APIError
		Expect(errors.As(err, &apiErr)).To(BeTrue())
		Expect(apiErr.StatusCode).To(Equal(http.StatusBadRequest))
		Expect(apiErr.Fields).To(ConsistOf("hourly_wage"))
		Expect(apiErr.RequestID).To(Equal("req-9"))
		Expect(err.Error()).To(ContainSubstring("hourly_wage"))
	})

	It("keeps a plain text error body", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}))
		defer server.Close()

		err := client.NewClient(server.URL, 0).HealthCheck(ctx)
		var apiErr *client.APIError
		Expect(errors.As(err, &apiErr)).To(BeTrue())
		Expect(apiErr.Message).To(Equal("bad gateway"))
	})

	It("downloads exports", func() {
		id := uuid.New()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/api/v1/scenarios/" + id.String() + "/export"))
			Expect(r.URL.Query().Get("format")).To(Equal("csv"))
			_, _ = w.Write([]byte("Section,Field,Value\n"))
		}))
		defer server.Close()

		content, err := client.NewClient(server.URL, 0).ExportScenario(ctx, id, "csv")
		Expect(err).To(BeNil())
		Expect(string(content)).To(HavePrefix("Section"))
	})

	It("fails when the server is unreachable", func() {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		_, err := client.NewClient(url, time.Second).GetScenario(ctx, uuid.New())
		Expect(err).To(MatchError(ContainSubstring("failed to call roi-planner api")))
	})
})
