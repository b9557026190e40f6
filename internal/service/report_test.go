package service_test

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ap-automation/roi-planner/internal/events"
	"github.com/ap-automation/roi-planner/internal/service"
	"github.com/ap-automation/roi-planner/internal/simulation"
	"github.com/ap-automation/roi-planner/internal/simulation/calculators"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("report service", func() {
	var (
		writer *testwriter
		srv    *service.ReportService
	)

	BeforeEach(func() {
		writer = newTestWriter()
		srv = service.NewReportService(calculators.NewEngine(), writer)
	})

	It("emits a lead event with the computed result", func() {
		err := srv.RequestReport(context.TODO(), service.ReportRequest{
			Email: "cfo@example.com",
			Input: referenceInput(),
		})
		Expect(err).To(BeNil())

		kinds, messages := writer.Messages()
		Expect(kinds).To(ConsistOf(events.LeadMessageKind))

		var lead events.LeadEvent
		Expect(json.Unmarshal(messages[0], &lead)).To(Succeed())
		Expect(lead.Email).To(Equal("cfo@example.com"))
		Expect(lead.ScenarioName).To(Equal("Reference"))
		Expect(lead.Result.MonthlySavings).To(Equal(11200.0))
		Expect(*lead.Result.ROIPercentage).To(Equal(706.4))
		Expect(lead.RequestedAt.IsZero()).To(BeFalse())
	})

	DescribeTable("rejects a bad email",
		func(email string) {
			err := srv.RequestReport(context.TODO(), service.ReportRequest{Email: email, Input: referenceInput()})
			Expect(err).NotTo(BeNil())

			invalid, ok := err.(*simulation.ErrInvalidInput)
			Expect(ok).To(BeTrue())
			Expect(invalid.Fields).To(ConsistOf("email"))

			kinds, _ := writer.Messages()
			Expect(kinds).To(BeEmpty())
		},
		Entry("empty", ""),
		Entry("no domain", "cfo@"),
		Entry("plain text", "not an email"),
	)

	It("rejects invalid input", func() {
		in := referenceInput()
		in.MonthlyInvoiceVolume = -5

		err := srv.RequestReport(context.TODO(), service.ReportRequest{Email: "cfo@example.com", Input: in})
		invalid, ok := err.(*simulation.ErrInvalidInput)
		Expect(ok).To(BeTrue())
		Expect(invalid.Fields).To(ConsistOf("monthly_invoice_volume"))
	})

	It("returns the writer failure", func() {
		writer.err = errors.New("producer closed")
		err := srv.RequestReport(context.TODO(), service.ReportRequest{Email: "cfo@example.com", Input: referenceInput()})
		Expect(err).To(MatchError("producer closed"))
	})

	It("works with the events producer", func() {
		producer := events.NewEventProducer(&events.StdoutWriter{})
		srv := service.NewReportService(calculators.NewEngine(), producer)

		err := srv.RequestReport(context.TODO(), service.ReportRequest{Email: "cfo@example.com", Input: referenceInput()})
		Expect(err).To(BeNil())
		Expect(producer.Close()).To(Succeed())
	})
})
