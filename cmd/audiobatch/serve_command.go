package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/bnema/audiobatch/internal/adapter/http"
	"github.com/bnema/audiobatch/internal/infrastructure/logger"
	"github.com/bnema/audiobatch/internal/port"
)

const defaultServeAddr = "127.0.0.1:8089"

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Browse the batch history in a local web page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store port.HistoryStore) error {
				listener, err := net.Listen("tcp", addr)
				if err != nil {
					return fmt.Errorf("listen on %s: %w", addr, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Serving history on http://%s/\n", listener.Addr())
				return serveHistory(cmd.Context(), listener, httpadapter.NewServer(store, ctx.config.History.ListLimit, version))
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "Listen address")

	return cmd
}

// serveHistory runs until ctx is cancelled, then drains open requests.
func serveHistory(ctx context.Context, listener net.Listener, handler http.Handler) error {
	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info.Printf("shutting down history server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error.Printf("http shutdown error: %v", err)
	}
	<-errCh
	return nil
}
