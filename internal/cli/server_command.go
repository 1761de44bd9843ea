package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/studentpro/internal/mockapi"
	"github.com/nhle/studentpro/internal/model"
)

const shutdownTimeout = 5 * time.Second

func (r *RootCommand) newMockServerCommand() *cobra.Command {
	var addr string
	var noDemo bool

	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve an in-memory StudentPro API for local development",
		Long: `Serve the StudentPro REST API from memory. Point the client at it with
STUDENTPRO_API_MODE=development (dev_url defaults to http://127.0.0.1:5000).
Accounts and tasks are lost when the server stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []mockapi.Option
			if !noDemo {
				opts = append(opts, mockapi.WithDemoFiles())
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mock API listening on http://%s\n", ln.Addr())
			return serve(cmd.Context(), ln, mockapi.New(opts...).Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:5000", "listen address")
	cmd.Flags().BoolVar(&noDemo, "no-demo", false, "do not seed demo files for new accounts")
	return cmd
}

// serve runs h on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Printf("mock-server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (r *RootCommand) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := r.env.ConfigPath
			if path == "" {
				path = model.DefaultConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}
			if err := model.SaveConfig(path, model.DefaultAppConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := r.env.Config
			if cfg == nil {
				cfg = model.DefaultAppConfig()
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "api.mode:         %s\n", cfg.API.Mode)
			fmt.Fprintf(out, "api.base_url:     %s\n", cfg.API.ResolveBaseURL())
			fmt.Fprintf(out, "identity.backend: %s\n", cfg.Identity.Backend)
			fmt.Fprintf(out, "log.file:         %s\n", cfg.Log.File)
			fmt.Fprintf(out, "log.debug:        %t\n", cfg.Log.Debug)
			return nil
		},
	}

	cmd.AddCommand(initCmd, show)
	return cmd
}
