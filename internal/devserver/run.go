package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ListenAndServe runs the development API on addr until ctx is cancelled,
// then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, logger zerolog.Logger, opt Options) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(NewStore(), logger, opt),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().Msgf("items dev API listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info().Msg("items dev API stopped")
	return nil
}
