package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lessonloop/internal/api"
	"github.com/abhisek/lessonloop/internal/auth"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the learning API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if err := cfg.RequireServer(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		svc, release, err := newService(ctx, st, log)
		if err != nil {
			return err
		}
		defer release()

		tokens, err := auth.New(cfg.Auth)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      api.New(svc, tokens, log).Routes(),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			log.Info("api listening", "addr", cfg.Server.Addr,
				"catalog", svc.Catalog().Version, "unlock_policy", string(svc.Policy()))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
