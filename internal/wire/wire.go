package wire

import (
	"net/http"

	"prebook/internal/adaptor"
	"prebook/internal/data/repository"
	"prebook/internal/usecase"
	"prebook/pkg/events"
	"prebook/pkg/middleware"
	"prebook/pkg/storage"
	"prebook/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// App holds the assembled HTTP stack
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and the router
func Wiring(
	repo *repository.Repository,
	store storage.ObjectStorage,
	publisher events.Publisher,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, store, publisher, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.App.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	wireReservation(r, handler.Reservation)
	wireAdmin(r, handler.Admin, handler.Auth, config, logger)
	wireTemplate(r, handler.Template, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
