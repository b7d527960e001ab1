package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/relex/api"
	"github.com/revelaction/relex/cache"
	"github.com/revelaction/relex/logger"
)

const shutdownTimeout = 5 * time.Second

func serveCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve POST " + api.ExtractPath + " over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen `PORT` (overrides RELEX_API_PORT)"},
		},
		Action: func(c *cli.Context) error {
			port := env.cfg.APIPort
			if c.IsSet("port") {
				port = c.String("port")
			}

			log := logger.New(env.ui.Err, "API", env.cfg.LogLevel)

			h := api.NewHandler(env.extractor(), env.cfg.SVO())
			h.Logger = log
			if env.cfg.CacheEnabled() {
				cc := cache.New(env.cfg.RedisAddr, env.cfg.RedisDB, env.cfg.CacheTTL)
				defer cc.Close()
				h.WithCache(cc, cache.Key)
				log.Info().Str("redis", env.cfg.RedisAddr).Dur("ttl", env.cfg.CacheTTL).Msg("Cache enabled")
			}

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%s", port),
				Handler:           api.NewMux(h),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("Listening")
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}

			if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}
