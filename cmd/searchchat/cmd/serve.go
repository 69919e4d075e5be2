package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/habiliai/searchchat/config"
	"github.com/habiliai/searchchat/errors"
	"github.com/habiliai/searchchat/webui"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	params := &struct {
		Host string
		Port int
	}{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat page",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			app, err := newApp(flags)
			if err != nil {
				return err
			}
			logger := app.Logger()

			serverConfig, err := config.NewServerConfig()
			if err != nil {
				return errors.Wrapf(err, "failed to load server config")
			}
			if cmd.Flags().Changed("host") {
				serverConfig.Host = params.Host
			}
			if cmd.Flags().Changed("port") {
				serverConfig.Port = params.Port
			}

			handler, err := webui.NewHandler(app.Service(), logger, webui.Options{
				Greeting: app.Agent().Greeting,
				Adapters: app.Adapters(),
			})
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:              fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext: func(l net.Listener) context.Context {
					return ctx
				},
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					logger.Error("failed to shutdown server", "error", err)
				}
			}()

			logger.Info("server started", "addr", server.Addr)
			defer logger.Info("server stopped")

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.Wrapf(err, "failed to serve on %s", server.Addr)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&params.Host, "host", "0.0.0.0", "Host to listen on")
	cmd.Flags().IntVarP(&params.Port, "port", "p", 8501, "Port to listen on")

	return cmd
}
