package migrations_test

import (
	"path/filepath"

	"github.com/ap-automation/roi-planner/internal/config"
	"github.com/ap-automation/roi-planner/internal/store"
	"github.com/ap-automation/roi-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("migrations", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		cfg := config.NewDefault()
		cfg.Database.Name = filepath.Join(GinkgoT().TempDir(), "migrations.db")
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
	})

	AfterAll(func() {
		s.Close()
	})

	tableExists := func(name string) bool {
		count := 0
		tx := gormdb.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count)
		Expect(tx.Error).To(BeNil())
		return count == 1
	}

	Context("store migrations", Ordered, func() {
		It("fails to migrate the db -- migration folder does not exist", func() {
			err := migrations.MigrateStore(gormdb, "some folder")
			Expect(err).NotTo(BeNil())
			Expect(tableExists("scenarios")).To(BeFalse())
		})

		It("successfully migrates the db with the embedded migrations", func() {
			Expect(migrations.MigrateStore(gormdb, "")).To(BeNil())
			Expect(tableExists("scenarios")).To(BeTrue())
		})

		It("is idempotent", func() {
			Expect(migrations.MigrateStore(gormdb, "")).To(BeNil())

			version := 0
			tx := gormdb.Raw("SELECT MAX(version_id) FROM goose_db_version").Scan(&version)
			Expect(tx.Error).To(BeNil())
			Expect(version).To(Equal(20260901000001))
		})

		It("successfully migrates the db from a folder", func() {
			gormdb.Exec("DROP TABLE IF EXISTS scenarios;")
			gormdb.Exec("DROP TABLE IF EXISTS goose_db_version;")

			Expect(migrations.MigrateStore(gormdb, filepath.Join("sql", "sqlite"))).To(BeNil())
			Expect(tableExists("scenarios")).To(BeTrue())
		})
	})
})
