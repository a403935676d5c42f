package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meltemk/skyticket/api"
	"github.com/meltemk/skyticket/config"
	"github.com/meltemk/skyticket/internal/accounts"
	"github.com/meltemk/skyticket/internal/ledger"
	"github.com/meltemk/skyticket/internal/workflow"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, bookingSvc workflow.UseCase, ledgerSvc ledger.UseCase, accountsSvc accounts.UseCase) error {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), api.SessionMiddleware())

	api.NewBookingHandler(bookingSvc).Register(router.Group("/booking"))
	api.NewTicketsHandler(bookingSvc, ledgerSvc, accountsSvc).Register(router.Group("/tickets"))
	api.NewAuthHandler(accountsSvc).Register(router.Group("/membership"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}
