package router

import (
	"net/http"

	"daily-diet/internal/adapters/storage/memory"
	"daily-diet/internal/domain/meals"
	"daily-diet/internal/middleware"
	"daily-diet/internal/platform/logger"
	"daily-diet/internal/ports/auth"

	_ "daily-diet/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev, header X-Debug-User-ID)

	// Opcional: si es nil, usa un repo en memoria.
	Repo meals.Repository

	// Opcionales: si son nil, Nop logger y registry nuevo.
	Logger   logger.Logger
	Registry *prometheus.Registry
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	repo := opts.Repo
	if repo == nil {
		repo = memory.NewMealRepo()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewHTTPMetrics(reg).Instrument)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	meals.RegisterRoutes(r, meals.NewService(repo))

	return r
}
