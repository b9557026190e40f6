package store_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/ap-automation/roi-planner/internal/store"
	"github.com/ap-automation/roi-planner/internal/store/model"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("scenario store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		gormdb = newTestDB()
		s = store.NewStore(gormdb)
	})

	AfterAll(func() {
		s.Close()
	})

	Context("create", func() {
		It("successfully creates a scenario", func() {
			m := newScenario("Q3 plan", 11200, ptr(706.4))

			created, err := s.Scenario().Create(context.TODO(), m)
			Expect(err).To(BeNil())
			Expect(created.ID).To(Equal(m.ID))
			Expect(created.Seq).To(BeNumerically(">", 0))

			count := 0
			tx := gormdb.Raw("SELECT COUNT(*) FROM scenarios WHERE id = ?", m.ID.String()).Scan(&count)
			Expect(tx.Error).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("fails to create a scenario with an existing id", func() {
			m := newScenario("first", 11200, ptr(706.4))
			_, err := s.Scenario().Create(context.TODO(), m)
			Expect(err).To(BeNil())

			dup := newScenario("second", 100, nil)
			dup.ID = m.ID
			_, err = s.Scenario().Create(context.TODO(), dup)
			Expect(err).To(MatchError(store.ErrDuplicateKey))
		})

		It("stores undefined metrics as null", func() {
			m := newScenario("zero cost", 11200, nil)
			m.PaybackMonths = nil
			_, err := s.Scenario().Create(context.TODO(), m)
			Expect(err).To(BeNil())

			nulls := 0
			tx := gormdb.Raw("SELECT COUNT(*) FROM scenarios WHERE id = ? AND roi_percentage IS NULL AND payback_months IS NULL", m.ID.String()).Scan(&nulls)
			Expect(tx.Error).To(BeNil())
			Expect(nulls).To(Equal(1))
		})

		It("creates scenarios concurrently", func() {
			var wg sync.WaitGroup
			errs := make(chan error, 10)
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func(i int) {
					defer GinkgoRecover()
					defer wg.Done()
					_, err := s.Scenario().Create(context.TODO(), newScenario(fmt.Sprintf("c-%d", i), 1, nil))
					errs <- err
				}(i)
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				Expect(err).To(BeNil())
			}

			count := 0
			tx := gormdb.Raw("SELECT COUNT(DISTINCT id) FROM scenarios").Scan(&count)
			Expect(tx.Error).To(BeNil())
			Expect(count).To(Equal(10))
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM scenarios;")
		})
	})

	Context("get", func() {
		It("returns the stored scenario unchanged", func() {
			m := newScenario("Q3 plan", 11200, ptr(706.4))
			_, err := s.Scenario().Create(context.TODO(), m)
			Expect(err).To(BeNil())

			got, err := s.Scenario().Get(context.TODO(), m.ID)
			Expect(err).To(BeNil())
			Expect(got.CreatedAt).To(BeTemporally("==", m.CreatedAt))
			Expect(got.Input()).To(Equal(m.Input()))
			Expect(got.Result()).To(Equal(m.Result()))
			Expect(got.Breakdown.Data).To(HaveLen(2))
		})

		It("fails with not found", func() {
			_, err := s.Scenario().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM scenarios;")
		})
	})

	Context("list", func() {
		It("returns an empty list", func() {
			scenarios, err := s.Scenario().List(context.TODO(), store.NewScenarioQueryFilter())
			Expect(err).To(BeNil())
			Expect(scenarios).NotTo(BeNil())
			Expect(scenarios).To(BeEmpty())
		})

		It("lists scenarios in insertion order", func() {
			names := []string{"zeta", "alpha", "mid"}
			for _, n := range names {
				_, err := s.Scenario().Create(context.TODO(), newScenario(n, 1, nil))
				Expect(err).To(BeNil())
			}

			scenarios, err := s.Scenario().List(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(scenarios).To(HaveLen(3))
			for i, n := range names {
				Expect(scenarios[i].ScenarioName).To(Equal(n))
			}
		})

		It("filters by name, case insensitive", func() {
			for _, n := range []string{"Q3 plan", "q3 stretch", "Q4 plan", "100%_done"} {
				_, err := s.Scenario().Create(context.TODO(), newScenario(n, 1, nil))
				Expect(err).To(BeNil())
			}

			scenarios, err := s.Scenario().List(context.TODO(), store.NewScenarioQueryFilter().ByNameContains("Q3"))
			Expect(err).To(BeNil())
			Expect(scenarios).To(HaveLen(2))

			scenarios, err = s.Scenario().List(context.TODO(), store.NewScenarioQueryFilter().ByNameContains("%_"))
			Expect(err).To(BeNil())
			Expect(scenarios).To(HaveLen(1))
			Expect(scenarios[0].ScenarioName).To(Equal("100%_done"))
		})

		It("pages with limit and offset", func() {
			for i := 0; i < 5; i++ {
				_, err := s.Scenario().Create(context.TODO(), newScenario(fmt.Sprintf("s-%d", i), 1, nil))
				Expect(err).To(BeNil())
			}

			scenarios, err := s.Scenario().List(context.TODO(), store.NewScenarioQueryFilter().WithLimit(2).WithOffset(1))
			Expect(err).To(BeNil())
			Expect(scenarios).To(HaveLen(2))
			Expect(scenarios[0].ScenarioName).To(Equal("s-1"))
			Expect(scenarios[1].ScenarioName).To(Equal("s-2"))
		})

		It("filters profitable scenarios", func() {
			_, err := s.Scenario().Create(context.TODO(), newScenario("win", 10, nil))
			Expect(err).To(BeNil())
			_, err = s.Scenario().Create(context.TODO(), newScenario("loss", -10, nil))
			Expect(err).To(BeNil())

			scenarios, err := s.Scenario().List(context.TODO(), store.NewScenarioQueryFilter().Profitable())
			Expect(err).To(BeNil())
			Expect(scenarios).To(HaveLen(1))
			Expect(scenarios[0].ScenarioName).To(Equal("win"))
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM scenarios;")
		})
	})

	Context("statistics", func() {
		It("aggregates an empty table", func() {
			stats, err := s.Scenario().Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats).To(Equal(model.ScenarioStats{}))
		})

		It("aggregates the stored scenarios", func() {
			for _, sc := range []model.Scenario{
				newScenario("a", 10, ptr(100)),
				newScenario("b", 20, ptr(300)),
				newScenario("c", -5, nil),
			} {
				_, err := s.Scenario().Create(context.TODO(), sc)
				Expect(err).To(BeNil())
			}

			stats, err := s.Scenario().Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats.Total).To(Equal(int64(3)))
			Expect(stats.Profitable).To(Equal(int64(2)))
			Expect(stats.AverageROI).NotTo(BeNil())
			Expect(*stats.AverageROI).To(BeNumerically("~", 200))
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM scenarios;")
		})
	})
})
