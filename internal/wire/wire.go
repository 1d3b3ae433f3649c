// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"

	"mobile-booking/internal/adaptor"
	"mobile-booking/internal/data/repository"
	"mobile-booking/internal/usecase"
	"mobile-booking/pkg/middleware"
	"mobile-booking/pkg/tasks"
	"mobile-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and the background pieces main has to stop.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
	// Worker is nil unless the task worker runs in this process.
	Worker *tasks.Worker

	closers []func()
}

// Close releases broker and redis connections in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Wiring builds collaborators, services and routes.
func Wiring(ctx context.Context, repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	if err := utils.SetPostalCodePattern(config.Pricing.PostalCodePattern); err != nil {
		return nil, err
	}

	app := &App{}
	infra, err := buildInfra(ctx, config, logger, app)
	if err != nil {
		app.Close()
		return nil, err
	}

	service := usecase.NewService(repo, config, infra.deps, logger)
	infra.handlers.SetRecorder(service.Booking)

	switch {
	case config.Queue.Enabled && config.Queue.WorkerEnabled:
		app.Worker = tasks.NewWorker(infra.redisOpt, config.Queue.Concurrency, infra.handlers, logger)
	case config.Queue.Enabled:
		logger.Warn("Task worker disabled, queued notifications and refunds wait for an external worker")
	}

	handler := adaptor.NewHandler(service, logger)
	app.Router = setupRouter(handler, config, logger)
	app.Service = service

	return app, nil
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wirePricing(r, handler.Pricing)
	wireSlot(r, handler.Slot, config, logger)
	wireBooking(r, handler.Booking, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
