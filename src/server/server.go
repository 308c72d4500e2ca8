package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"posapi/src/apperrors"
	"posapi/src/handler"
	"posapi/src/logging"
	"posapi/src/repository"
)

// StartServer wires the routes and blocks until SIGINT or SIGTERM.
func StartServer(port string, mapper *apperrors.Mapper, hub *logging.Hub) {
	productRepo := repository.NewProductRepository()
	saleRepo := repository.NewSaleRepository()
	cashierRepo := repository.NewCashierRepository()
	errorLogRepo := repository.NewErrorLogRepository()

	// Router with middleware
	r := chi.NewRouter()
	r.Use(RecoverMiddleware(mapper))
	r.Use(CashierMiddleware(cashierRepo))

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("\"/healthcheck\" error")
		}
	})
	r.Post("/login", handler.LoginHandler(cashierRepo, mapper))

	r.Route("/products", func(r chi.Router) {
		r.Get("/", handler.SearchProductsHandler(productRepo, mapper))
		r.Get("/{id}", handler.GetProductHandler(productRepo, mapper))
		r.Post("/", handler.CreateProductHandler(productRepo, mapper))
	})

	r.Route("/sales", func(r chi.Router) {
		r.Post("/", handler.CreateSaleHandler(saleRepo, mapper))
		r.Get("/{id}", handler.GetSaleHandler(saleRepo, mapper))
	})

	// Admin surface: correlation lookup and the live redacted log tail.
	r.Route("/admin", func(r chi.Router) {
		r.Use(RequireManager(mapper))
		r.Get("/errors/{errorId}", handler.GetErrorRecordHandler(errorLogRepo, mapper))
		r.Get("/ws/logs", logging.ServeWS(hub))
	})

	// Graceful server
	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
