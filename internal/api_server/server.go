package apiserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	api "github.com/ap-automation/roi-planner/api/v1alpha1"
	"github.com/ap-automation/roi-planner/internal/config"
	handlers "github.com/ap-automation/roi-planner/internal/handlers/v1alpha1"
	"github.com/ap-automation/roi-planner/internal/service"
	"github.com/ap-automation/roi-planner/internal/simulation/calculators"
	"github.com/ap-automation/roi-planner/internal/store"
	"github.com/ap-automation/roi-planner/pkg/log"
	"github.com/ap-automation/roi-planner/pkg/metrics"
	"github.com/ap-automation/roi-planner/pkg/middleware"
	"github.com/ap-automation/roi-planner/pkg/requestid"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg         *config.Config
	listener    net.Listener
	router      http.Handler
	scenarioSrv *service.ScenarioService
}

// oapiErrorHandler renders requests rejected by the OpenAPI validator as an Error.
func oapiErrorHandler(w http.ResponseWriter, message string, statusCode int) {
	reply := api.Error{Message: message}
	if id := w.Header().Get(requestid.Header); id != "" {
		reply.RequestId = &id
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(reply)
}

// New returns a new instance of a roi-planner server. Request metrics are registered with reg.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
	writer service.EventWriter,
	reg prometheus.Registerer,
) (*Server, error) {
	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	// Skip server name validation
	swagger.Servers = nil

	// Bodies are decoded and validated by the handlers, which report the offending fields.
	oapiOpts := oapimiddleware.Options{
		Options: openapi3filter.Options{
			ExcludeRequestBody: true,
		},
		ErrorHandler: oapiErrorHandler,
	}

	var opts []calculators.AutomationOption
	if cfg.Service.AutomatedCostPerInvoice > 0 {
		opts = append(opts, calculators.WithDefaultAutomatedCostPerInvoice(cfg.Service.AutomatedCostPerInvoice))
	}
	engine := calculators.NewEngine(opts...)

	scenarioSrv := service.NewScenarioService(store, engine)
	h := handlers.NewServiceHandler(
		service.NewSimulationService(engine),
		scenarioSrv,
		service.NewReportService(engine, writer),
		service.NewExportService(scenarioSrv),
	)

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegister(reg)

	router := chi.NewRouter()
	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins: cfg.Service.CorsOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{"Content-Disposition", "X-Request-Id"},
			MaxAge:         300,
		}),
		middleware.RequestID,
		log.ConditionalLogger(cfg.Service.LogLevel, zap.L(), "api_server"),
		chiMiddleware.Recoverer,
		oapimiddleware.OapiRequestValidatorWithOptions(swagger, &oapiOpts),
	)
	router.Route("/api/v1", h.Routes)

	return &Server{
		cfg:         cfg,
		listener:    listener,
		router:      router,
		scenarioSrv: scenarioSrv,
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// StatsProvider feeds the stored scenarios collector of the metrics server.
func (s *Server) StatsProvider() metrics.ScenarioStatsProvider {
	return s.scenarioSrv
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
