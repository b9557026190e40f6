package v1alpha1_test

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/ap-automation/roi-planner/api/v1alpha1"
	"github.com/ap-automation/roi-planner/internal/store"
	"github.com/ap-automation/roi-planner/pkg/requestid"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
)

var _ = Describe("api handlers", func() {
	var (
		s      store.Store
		writer *testwriter
		router http.Handler
	)

	BeforeEach(func() {
		s = newTestStore()
		writer = &testwriter{}
		router = newTestRouter(s, writer)
	})

	AfterEach(func() {
		Expect(s.Close()).To(Succeed())
	})

	Context("simulate", func() {
		It("returns the computed metrics", func() {
			rec := do(router, http.MethodPost, "/api/v1/simulate", referenceBody())
			Expect(rec.Code).To(Equal(http.StatusOK))

			var res v1alpha1.SimulationResult
			Expect(json.Unmarshal(rec.Body.Bytes(), &res)).To(Succeed())
			Expect(res.MonthlySavings).To(Equal(11200.0))
			Expect(*res.PaybackMonths).To(Equal(4.5))
			Expect(*res.RoiPercentage).To(Equal(706.4))
			Expect(res.Undefined).To(BeEmpty())
			Expect(res.Breakdown).To(HaveLen(3))
		})

		It("renders undefined roi as null", func() {
			body := referenceBody()
			body["one_time_implementation_cost"] = 0
			rec := do(router, http.MethodPost, "/api/v1/simulate", body)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var raw map[string]any
			Expect(json.Unmarshal(rec.Body.Bytes(), &raw)).To(Succeed())
			Expect(raw).To(HaveKeyWithValue("roi_percentage", BeNil()))
			Expect(raw["undefined"]).To(ConsistOf("roi_percentage"))
		})

		It("reports invalid fields", func() {
			body := referenceBody()
			body["time_horizon_months"] = 0
			body["error_rate_manual"] = 120
			rec := do(router, http.MethodPost, "/api/v1/simulate", body)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var reply v1alpha1.Error
			Expect(json.Unmarshal(rec.Body.Bytes(), &reply)).To(Succeed())
			Expect(reply.Fields).To(ConsistOf("time_horizon_months", "error_rate_manual"))
			Expect(reply.RequestId).NotTo(BeNil())
			Expect(*reply.RequestId).To(Equal(rec.Header().Get(requestid.Header)))
		})

		It("reports the field with the wrong type", func() {
			body := referenceBody()
			body["hourly_wage"] = "thirty"
			rec := do(router, http.MethodPost, "/api/v1/simulate", body)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var reply v1alpha1.Error
			Expect(json.Unmarshal(rec.Body.Bytes(), &reply)).To(Succeed())
			Expect(reply.Fields).To(ConsistOf("hourly_wage"))
		})

		DescribeTable("reports the wire name of a wrong typed field on every input body",
			func(path string, extra map[string]any) {
				body := referenceBody()
				for k, v := range extra {
					body[k] = v
				}
				body["hourly_wage"] = "thirty"
				rec := do(router, http.MethodPost, path, body)
				Expect(rec.Code).To(Equal(http.StatusBadRequest))

				var reply v1alpha1.Error
				Expect(json.Unmarshal(rec.Body.Bytes(), &reply)).To(Succeed())
				Expect(reply.Fields).To(ConsistOf("hourly_wage"))
				Expect(writer.Len()).To(Equal(0))
			},
			Entry("simulate", "/api/v1/simulate", nil),
			Entry("save scenario", "/api/v1/scenarios", nil),
			Entry("report", "/api/v1/report/generate", map[string]any{"email": "cfo@example.com"}),
		)

		It("rejects malformed and empty bodies", func() {
			Expect(do(router, http.MethodPost, "/api/v1/simulate", "{not json").Code).To(Equal(http.StatusBadRequest))
			Expect(do(router, http.MethodPost, "/api/v1/simulate", "").Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("scenarios", func() {
		create := func(name string) v1alpha1.Scenario {
			body := referenceBody()
			body["scenario_name"] = name
			rec := do(router, http.MethodPost, "/api/v1/scenarios", body)
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var scenario v1alpha1.Scenario
			Expect(json.Unmarshal(rec.Body.Bytes(), &scenario)).To(Succeed())
			return scenario
		}

		It("creates, lists and gets scenarios", func() {
			first := create("First")
			second := create("Second")
			Expect(first.Id).NotTo(Equal(second.Id))
			Expect(first.MonthlySavings).To(Equal(11200.0))

			rec := do(router, http.MethodGet, "/api/v1/scenarios", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var list []v1alpha1.ScenarioSummary
			Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(Succeed())
			Expect(list).To(HaveLen(2))
			Expect(list[0].Id).To(Equal(first.Id))
			Expect(list[1].Id).To(Equal(second.Id))

			rec = do(router, http.MethodGet, "/api/v1/scenarios/"+first.Id.String(), nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var got v1alpha1.Scenario
			Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
			Expect(got.ScenarioName).To(Equal("First"))
			Expect(got.NetBenefit).To(Equal(353200.0))
			Expect(got.CreatedAt).To(BeTemporally("==", first.CreatedAt))
		})

		It("returns an empty list as []", func() {
			rec := do(router, http.MethodGet, "/api/v1/scenarios", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(bytes.TrimSpace(rec.Body.Bytes())).To(Equal([]byte("[]")))
		})

		It("filters the list", func() {
			create("Vendor A")
			create("Vendor B")
			create("Other")

			rec := do(router, http.MethodGet, "/api/v1/scenarios?name=vendor&limit=1&offset=1", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var list []v1alpha1.ScenarioSummary
			Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(Succeed())
			Expect(list).To(HaveLen(1))
			Expect(list[0].ScenarioName).To(Equal("Vendor B"))
		})

		DescribeTable("rejects bad list queries",
			func(query string) {
				rec := do(router, http.MethodGet, "/api/v1/scenarios?"+query, nil)
				Expect(rec.Code).To(Equal(http.StatusBadRequest))
			},
			Entry("negative limit", "limit=-1"),
			Entry("text offset", "offset=abc"),
			Entry("bad profitable", "profitable=maybe"),
		)

		It("ignores forged metrics", func() {
			body := referenceBody()
			body["monthly_savings"] = 1e9
			rec := do(router, http.MethodPost, "/api/v1/scenarios", body)
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var scenario v1alpha1.Scenario
			Expect(json.Unmarshal(rec.Body.Bytes(), &scenario)).To(Succeed())
			Expect(scenario.MonthlySavings).To(Equal(11200.0))
		})

		It("returns 404 for an unknown id and 400 for a bad one", func() {
			Expect(do(router, http.MethodGet, "/api/v1/scenarios/"+uuid.NewString(), nil).Code).To(Equal(http.StatusNotFound))
			Expect(do(router, http.MethodGet, "/api/v1/scenarios/nonexistent-id", nil).Code).To(Equal(http.StatusBadRequest))
		})

		It("exports a workbook", func() {
			scenario := create("Export")

			rec := do(router, http.MethodGet, "/api/v1/scenarios/"+scenario.Id.String()+"/export", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring(".xlsx"))

			f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
			Expect(err).To(BeNil())
			defer f.Close()
			Expect(f.GetSheetList()).To(ContainElements("Inputs", "Results"))

			Expect(do(router, http.MethodGet, "/api/v1/scenarios/"+scenario.Id.String()+"/export?format=pdf", nil).Code).
				To(Equal(http.StatusBadRequest))
			Expect(do(router, http.MethodGet, "/api/v1/scenarios/"+uuid.NewString()+"/export", nil).Code).
				To(Equal(http.StatusNotFound))
		})
	})

	Context("report", func() {
		It("accepts a lead", func() {
			body := referenceBody()
			body["email"] = "cfo@example.com"
			rec := do(router, http.MethodPost, "/api/v1/report/generate", body)
			Expect(rec.Code).To(Equal(http.StatusAccepted))
			Expect(writer.Len()).To(Equal(1))

			rec = do(router, http.MethodGet, "/api/v1/scenarios", nil)
			Expect(bytes.TrimSpace(rec.Body.Bytes())).To(Equal([]byte("[]")))
		})

		It("requires an email", func() {
			rec := do(router, http.MethodPost, "/api/v1/report/generate", referenceBody())
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var reply v1alpha1.Error
			Expect(json.Unmarshal(rec.Body.Bytes(), &reply)).To(Succeed())
			Expect(reply.Fields).To(ConsistOf("email"))
			Expect(writer.Len()).To(Equal(0))
		})
	})

	Context("health", func() {
		It("is healthy with a reachable store", func() {
			Expect(do(router, http.MethodGet, "/api/v1/health", nil).Code).To(Equal(http.StatusOK))
		})

		It("is unavailable once the store is closed", func() {
			Expect(s.Close()).To(Succeed())
			Expect(do(router, http.MethodGet, "/api/v1/health", nil).Code).To(Equal(http.StatusServiceUnavailable))
			s = newTestStore()
		})
	})
})
