package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/zvrva/ticketbooking/config"
)

// Run serves the given handler and blocks until the context is cancelled or
// the server fails. Shutdown drains in-flight requests for up to five
// seconds.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
