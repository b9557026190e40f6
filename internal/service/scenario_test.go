package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/ap-automation/roi-planner/internal/service"
	"github.com/ap-automation/roi-planner/internal/simulation"
	"github.com/ap-automation/roi-planner/internal/simulation/calculators"
	"github.com/ap-automation/roi-planner/internal/store"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("scenario service", func() {
	var (
		s   store.Store
		srv *service.ScenarioService
		now time.Time
	)

	BeforeEach(func() {
		s = newTestStore()
		now = time.Date(2026, 9, 1, 10, 30, 0, 123456789, time.FixedZone("CEST", 2*3600))
		srv = service.NewScenarioService(s, calculators.NewEngine(), service.WithClock(func() time.Time { return now }))
	})

	AfterEach(func() {
		Expect(s.Close()).To(Succeed())
	})

	Context("save", func() {
		It("stores the engine output with the injected clock", func() {
			scenario, err := srv.Save(context.TODO(), referenceInput(), nil)
			Expect(err).To(BeNil())
			Expect(scenario.ID).NotTo(Equal(uuid.Nil))
			Expect(scenario.CreatedAt).To(BeTemporally("==", now.UTC().Truncate(time.Microsecond)))
			Expect(scenario.ScenarioName).To(Equal("Reference"))
			Expect(scenario.MonthlySavings).To(Equal(11200.0))
			Expect(*scenario.PaybackMonths).To(Equal(4.5))
			Expect(*scenario.ROIPercentage).To(Equal(706.4))
			Expect(scenario.NetBenefit).To(Equal(353200.0))
		})

		It("uses the default name for a blank one", func() {
			in := referenceInput()
			in.ScenarioName = "   "
			scenario, err := srv.Save(context.TODO(), in, nil)
			Expect(err).To(BeNil())
			Expect(scenario.ScenarioName).To(Equal(simulation.DefaultScenarioName))
		})

		It("propagates invalid input and stores nothing", func() {
			in := referenceInput()
			in.TimeHorizonMonths = 0
			in.HourlyWage = -1

			_, err := srv.Save(context.TODO(), in, nil)
			Expect(err).NotTo(BeNil())

			var invalid *simulation.ErrInvalidInput
			Expect(err).To(BeAssignableToTypeOf(invalid))
			invalid = err.(*simulation.ErrInvalidInput)
			Expect(invalid.Fields).To(ConsistOf("time_horizon_months", "hourly_wage"))

			summaries, err := srv.List(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(summaries).To(BeEmpty())
		})

		It("ignores a precomputed result that disagrees with the engine", func() {
			forged := simulation.Result{Metrics: simulation.Metrics{MonthlySavings: 1e9}}
			scenario, err := srv.Save(context.TODO(), referenceInput(), &forged)
			Expect(err).To(BeNil())
			Expect(scenario.MonthlySavings).To(Equal(11200.0))
		})

		It("retries with a new id when the generator repeats itself", func() {
			first, second := uuid.New(), uuid.New()
			ids := []uuid.UUID{first, first, second}
			var mu sync.Mutex
			srv = service.NewScenarioService(s, calculators.NewEngine(), service.WithIDGenerator(func() uuid.UUID {
				mu.Lock()
				defer mu.Unlock()
				id := ids[0]
				ids = ids[1:]
				return id
			}))

			a, err := srv.Save(context.TODO(), referenceInput(), nil)
			Expect(err).To(BeNil())
			Expect(a.ID).To(Equal(first))

			b, err := srv.Save(context.TODO(), referenceInput(), nil)
			Expect(err).To(BeNil())
			Expect(b.ID).To(Equal(second))
		})

		It("never hands out the same id twice under concurrent saves", func() {
			const workers = 20
			var wg sync.WaitGroup
			ids := make(chan uuid.UUID, workers)

			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					scenario, err := srv.Save(context.TODO(), referenceInput(), nil)
					Expect(err).To(BeNil())
					ids <- scenario.ID
				}()
			}
			wg.Wait()
			close(ids)

			seen := map[uuid.UUID]struct{}{}
			for id := range ids {
				Expect(seen).NotTo(HaveKey(id))
				seen[id] = struct{}{}
			}
			Expect(seen).To(HaveLen(workers))

			summaries, err := srv.List(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(summaries).To(HaveLen(workers))
		})
	})

	Context("get", func() {
		It("returns what save returned", func() {
			saved, err := srv.Save(context.TODO(), referenceInput(), nil)
			Expect(err).To(BeNil())

			got, err := srv.Get(context.TODO(), saved.ID)
			Expect(err).To(BeNil())
			Expect(got.ID).To(Equal(saved.ID))
			Expect(got.CreatedAt).To(BeTemporally("==", saved.CreatedAt))
			Expect(got.Input()).To(Equal(saved.Input()))
			Expect(got.Result()).To(Equal(saved.Result()))
		})

		It("keeps stored metrics frozen", func() {
			saved, err := srv.Save(context.TODO(), referenceInput(), nil)
			Expect(err).To(BeNil())

			other := referenceInput()
			other.HourlyWage = 90
			other.OneTimeImplementationCost = 10000
			later, err := srv.Save(context.TODO(), other, nil)
			Expect(err).To(BeNil())
			Expect(later.MonthlySavings).NotTo(Equal(saved.MonthlySavings))

			got, err := srv.Get(context.TODO(), saved.ID)
			Expect(err).To(BeNil())
			Expect(got.Input()).To(Equal(saved.Input()))
			Expect(got.Result()).To(Equal(saved.Result()))
			Expect(got.MonthlySavings).To(Equal(11200.0))
			Expect(*got.PaybackMonths).To(Equal(4.5))
			Expect(*got.ROIPercentage).To(Equal(706.4))
		})

		It("fails with not found for an unknown id", func() {
			_, err := srv.Get(context.TODO(), uuid.New())
			Expect(err).NotTo(BeNil())
			var notFound *service.ErrResourceNotFound
			Expect(err).To(BeAssignableToTypeOf(notFound))
		})
	})

	Context("list", func() {
		It("lists two scenarios in insertion order with their own metrics", func() {
			first, err := srv.Save(context.TODO(), referenceInput(), nil)
			Expect(err).To(BeNil())

			in := referenceInput()
			in.ScenarioName = "Second"
			in.OneTimeImplementationCost = 0
			second, err := srv.Save(context.TODO(), in, nil)
			Expect(err).To(BeNil())

			summaries, err := srv.List(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(summaries).To(HaveLen(2))
			Expect(summaries[0].ID).To(Equal(first.ID))
			Expect(summaries[0].ScenarioName).To(Equal("Reference"))
			Expect(*summaries[0].ROIPercentage).To(Equal(706.4))
			Expect(summaries[1].ID).To(Equal(second.ID))
			Expect(summaries[1].ScenarioName).To(Equal("Second"))
			Expect(summaries[1].ROIPercentage).To(BeNil())

			got, err := srv.Get(context.TODO(), second.ID)
			Expect(err).To(BeNil())
			Expect(got.ROIPercentage).To(BeNil())
			Expect(*got.PaybackMonths).To(Equal(0.0))
		})

		It("returns an empty, non nil slice when nothing is stored", func() {
			summaries, err := srv.List(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(summaries).NotTo(BeNil())
			Expect(summaries).To(BeEmpty())
		})

		It("filters by name and pages", func() {
			for _, name := range []string{"Alpha", "Beta", "alphabet", "Gamma"} {
				in := referenceInput()
				in.ScenarioName = name
				_, err := srv.Save(context.TODO(), in, nil)
				Expect(err).To(BeNil())
			}

			summaries, err := srv.List(context.TODO(), &service.ScenarioFilter{Name: "ALPHA"})
			Expect(err).To(BeNil())
			Expect(summaries).To(HaveLen(2))

			summaries, err = srv.List(context.TODO(), &service.ScenarioFilter{Limit: 2, Offset: 1})
			Expect(err).To(BeNil())
			Expect(summaries).To(HaveLen(2))
			Expect(summaries[0].ScenarioName).To(Equal("Beta"))
		})
	})

	Context("statistics", func() {
		It("aggregates stored scenarios", func() {
			_, err := srv.Save(context.TODO(), referenceInput(), nil)
			Expect(err).To(BeNil())

			stats, err := srv.Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats.Total).To(Equal(int64(1)))
			Expect(stats.Profitable).To(Equal(int64(1)))
		})
	})

	Context("backend failure", func() {
		It("surfaces storage failures as backend unavailable", func() {
			srv := service.NewScenarioService(failingStore{}, calculators.NewEngine())
			var unavailable *service.ErrBackendUnavailable

			_, err := srv.Save(context.TODO(), referenceInput(), nil)
			Expect(err).To(BeAssignableToTypeOf(unavailable))
			Expect(err).To(MatchError(errBackend))

			_, err = srv.Get(context.TODO(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(unavailable))

			_, err = srv.List(context.TODO(), nil)
			Expect(err).To(BeAssignableToTypeOf(unavailable))

			Expect(srv.Ping(context.TODO())).To(BeAssignableToTypeOf(unavailable))
		})

		It("still rejects invalid input before touching storage", func() {
			srv := service.NewScenarioService(failingStore{}, calculators.NewEngine())
			in := referenceInput()
			in.ErrorRateManual = 101

			_, err := srv.Save(context.TODO(), in, nil)
			var invalid *simulation.ErrInvalidInput
			Expect(err).To(BeAssignableToTypeOf(invalid))
		})
	})
})
