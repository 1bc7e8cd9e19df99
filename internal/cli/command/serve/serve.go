package serve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/DorianABDS/spec-to-issues/internal/api"
	"github.com/DorianABDS/spec-to-issues/internal/cli/completion_helper"
	"github.com/DorianABDS/spec-to-issues/internal/config"
	domainErrors "github.com/DorianABDS/spec-to-issues/internal/errors"
	"github.com/DorianABDS/spec-to-issues/internal/i18n"
	"github.com/DorianABDS/spec-to-issues/internal/logger"
	"github.com/DorianABDS/spec-to-issues/internal/ui"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// DepsProvider assembles the API dependencies once the configuration is final.
type DepsProvider func(ctx context.Context) (api.Deps, error)

// ServeCommandFactory creates the 'serve' command.
type ServeCommandFactory struct {
	deps DepsProvider
	out  io.Writer
	// listen is swapped in tests to bind an ephemeral port.
	listen func(network, addr string) (net.Listener, error)
}

func NewServeCommandFactory(deps DepsProvider) *ServeCommandFactory {
	return &ServeCommandFactory{deps: deps, out: os.Stdout, listen: net.Listen}
}

func (f *ServeCommandFactory) WithOutput(w io.Writer) *ServeCommandFactory {
	f.out = w
	return f
}

func (f *ServeCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "serve",
		Aliases:       []string{"s"},
		Usage:         t.GetMessage("serve_usage", 0, nil),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   t.GetMessage("flag_addr", 0, nil),
			},
		},
		Action: f.createServeAction(t, cfg),
	}
}

func (f *ServeCommandFactory) createServeAction(t *i18n.Translations, cfg *config.Config) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		if cfg.Auth.JWTSecret == "" {
			return domainErrors.ErrJWTSecretMissing
		}
		addr := command.String("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		deps, err := f.deps(ctx)
		if err != nil {
			return err
		}
		if deps.Generator == nil {
			logger.Warn(ctx, "AI provider not configured, /api/generate will fail",
				"provider", string(cfg.AI.Provider))
		}

		ln, err := f.listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("error listening on %s: %w", addr, err)
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		return Run(ctx, ln, api.NewServer(deps).Router(), func() {
			ui.PrintSuccess(f.out, t.GetMessage("server_listening", 0, map[string]interface{}{"Addr": ln.Addr().String()}))
		}, func() {
			ui.PrintInfo(f.out, t.GetMessage("server_stopping", 0, nil))
		})
	}
}

// Run serves handler on ln until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, ln net.Listener, handler http.Handler, onReady, onStop func()) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info(ctx, "api server started", "addr", ln.Addr().String())
	if onReady != nil {
		onReady()
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	if onStop != nil {
		onStop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	logger.Info(ctx, "api server stopped")
	return nil
}
