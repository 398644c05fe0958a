package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"

	"github.com/RDP08/agenda.capas/cli/api"
	"github.com/RDP08/agenda.capas/cli/contacts"
	"github.com/RDP08/agenda.capas/cli/logger"
	"github.com/RDP08/agenda.capas/router"
)

const title = "Contacts"

// Set at build time with -ldflags "-X main.version=...".
var (
	version  = "dev"
	revision = ""
	created  = ""
)

// Options for the CLI. Every flag can also be set with a SERVICE_ env var,
// e.g. SERVICE_PORT or SERVICE_DATAFILE.
type Options struct {
	api.ServerOptions
	api.RouterOptions
	api.StoreOptions
	logger.Options
}

func (o *Options) router(log *slog.Logger, opts ...router.Option) http.Handler {
	return api.NewRouter(&o.RouterOptions,
		api.BuildInfo{Title: title, Version: version, Revision: revision, Created: created},
		api.NewStore(&o.StoreOptions, log),
		log,
		opts...,
	)
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		log := logger.New(&options.Options)
		srv := api.NewServer(&options.ServerOptions, options.router(log), log)

		hooks.OnStart(func() {
			log.Info("listening", "addr", srv.Addr, "datafile", options.Datafile, "version", version)
			err := srv.ListenAndServe()
			if !errors.Is(err, http.ErrServerClosed) {
				log.Error("failed to listen and serve", "err", err)
			} else {
				log.Info("server closed")
			}
		})
		hooks.OnStop(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			err := srv.Shutdown(ctx)
			if err != nil {
				log.Warn("could not shutdown the server", "err", err)
			}
		})
	})

	cli.Root().Use = "agenda"
	cli.Root().Version = version
	cli.Root().AddCommand(
		&cobra.Command{
			Use:   "openapi",
			Short: "Print the OpenAPI document",
			Args:  cobra.NoArgs,
			Run: humacli.WithOptions(func(cmd *cobra.Command, _ []string, options *Options) {
				var doc huma.API
				options.router(slog.New(slog.DiscardHandler), router.OptFunc(func(a huma.API) { doc = a }))
				b, err := doc.OpenAPI().YAML()
				if err != nil {
					cobra.CheckErr(err)
				}
				fmt.Fprint(cmd.OutOrStdout(), string(b))
			}),
		},
		contacts.NewCommand(),
	)
	cli.Run()
}
