package service_test

import (
	"bytes"
	"context"
	"encoding/csv"

	"github.com/ap-automation/roi-planner/internal/service"
	"github.com/ap-automation/roi-planner/internal/simulation/calculators"
	"github.com/ap-automation/roi-planner/internal/store"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
)

var _ = Describe("export service", func() {
	var (
		s         store.Store
		scenarios *service.ScenarioService
		srv       *service.ExportService
	)

	BeforeEach(func() {
		s = newTestStore()
		scenarios = service.NewScenarioService(s, calculators.NewEngine())
		srv = service.NewExportService(scenarios)
	})

	AfterEach(func() {
		Expect(s.Close()).To(Succeed())
	})

	It("renders a workbook with inputs and results", func() {
		in := referenceInput()
		in.OneTimeImplementationCost = 0
		saved, err := scenarios.Save(context.TODO(), in, nil)
		Expect(err).To(BeNil())

		exported, err := srv.Export(context.TODO(), saved.ID, "")
		Expect(err).To(BeNil())
		Expect(exported.Filename).To(Equal("scenario-" + saved.ID.String() + ".xlsx"))
		Expect(exported.ContentType).To(ContainSubstring("spreadsheetml"))

		f, err := excelize.OpenReader(bytes.NewReader(exported.Content))
		Expect(err).To(BeNil())
		defer f.Close()

		Expect(f.GetSheetList()).To(Equal([]string{"Inputs", "Results"}))

		inputs, err := f.GetRows("Inputs")
		Expect(err).To(BeNil())
		Expect(inputs[0]).To(Equal([]string{"Input", "Value"}))
		Expect(inputs).To(ContainElement([]string{"Scenario Name", "Reference"}))
		Expect(inputs).To(ContainElement([]string{"Monthly Invoice Volume", "2000"}))

		results, err := f.GetRows("Results")
		Expect(err).To(BeNil())
		Expect(results).To(ContainElement([]string{"Monthly Savings", "11200"}))
		Expect(results).To(ContainElement([]string{"ROI (%)", "n/a"}))
		Expect(results).To(ContainElement([]string{"Payback (months)", "0"}))
	})

	It("renders csv", func() {
		saved, err := scenarios.Save(context.TODO(), referenceInput(), nil)
		Expect(err).To(BeNil())

		exported, err := srv.Export(context.TODO(), saved.ID, service.ExportFormatCSV)
		Expect(err).To(BeNil())
		Expect(exported.ContentType).To(Equal("text/csv"))

		rows, err := csv.NewReader(bytes.NewReader(exported.Content)).ReadAll()
		Expect(err).To(BeNil())
		Expect(rows[0]).To(Equal([]string{"Section", "Field", "Value"}))
		Expect(rows).To(ContainElement([]string{"result", "ROI (%)", "706.4"}))
	})

	It("rejects an unknown format", func() {
		_, err := srv.Export(context.TODO(), uuid.New(), "pdf")
		var unsupported *service.ErrUnsupportedFormat
		Expect(err).To(BeAssignableToTypeOf(unsupported))
	})

	It("fails with not found for an unknown scenario", func() {
		_, err := srv.Export(context.TODO(), uuid.New(), service.ExportFormatXLSX)
		var notFound *service.ErrResourceNotFound
		Expect(err).To(BeAssignableToTypeOf(notFound))
	})
})
