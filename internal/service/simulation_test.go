package service_test

import (
	"context"

	"github.com/ap-automation/roi-planner/internal/service"
	"github.com/ap-automation/roi-planner/internal/simulation"
	"github.com/ap-automation/roi-planner/internal/simulation/calculators"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("simulation service", func() {
	It("computes without storing", func() {
		srv := service.NewSimulationService(calculators.NewEngine())
		res, err := srv.Simulate(context.TODO(), referenceInput())
		Expect(err).To(BeNil())
		Expect(res.MonthlySavings).To(Equal(11200.0))
		Expect(*res.PaybackMonths).To(Equal(4.5))
	})

	It("marks undefined metrics for zero volume", func() {
		in := referenceInput()
		in.MonthlyInvoiceVolume = 0

		res, err := service.NewSimulationService(calculators.NewEngine()).Simulate(context.TODO(), in)
		Expect(err).To(BeNil())
		Expect(res.PaybackMonths).To(BeNil())
		Expect(*res.ROIPercentage).To(Equal(-100.0))
		Expect(res.Undefined()).To(ConsistOf(simulation.MetricPaybackMonths))
	})

	It("returns invalid input", func() {
		in := referenceInput()
		in.TimeHorizonMonths = -1
		_, err := service.NewSimulationService(calculators.NewEngine()).Simulate(context.TODO(), in)
		_, ok := err.(*simulation.ErrInvalidInput)
		Expect(ok).To(BeTrue())
	})
})
