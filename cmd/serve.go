package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/opclass/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the classifier over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			settings.Set("server.addr", addr)
		}
		env, err := openEnv(cmd, storeHistory)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		shutdown, err := httpapi.InitTracing(ctx, env.log, httpapi.TracingConfig{
			ServiceName: "opclass",
			Version:     version,
			Stdout:      env.cfg.Server.TraceStdout,
		})
		if err != nil {
			return err
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				env.log.Warn("tracer shutdown", "error", err)
			}
		}()

		srv := httpapi.New(httpapi.Config{
			Addr:        env.cfg.Server.Addr,
			CORSOrigins: env.cfg.Server.CORSOrigins,
		}, env.svc, env.newCoach(ctx), env.log)
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from server.addr, :8080)")
}
