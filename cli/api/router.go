package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"

	"github.com/RDP08/agenda.capas/datastores"
	"github.com/RDP08/agenda.capas/handlers"
	"github.com/RDP08/agenda.capas/router"
)

type RouterOptions struct {
	EndpointsPrefix string `doc:"mount endpoints at a prefix" default:"/api"`
}

type BuildInfo struct {
	Title    string
	Version  string
	Revision string
	Created  string
}

// NewRouter wires the contacts endpoints on top of store, with request
// logging, metering and panic recovery. Extra opts are applied last.
func NewRouter(
	options *RouterOptions,
	build BuildInfo,
	store datastores.ContactsStore,
	logger *slog.Logger,
	opts ...router.Option,
) http.Handler {
	huma.NewError = handlers.NewError

	buildinfoMetric := joinQuote("build_info{goversion=", runtime.Version(),
		",title=", build.Title,
		",version=", build.Version,
		",revision=", build.Revision,
		",created=", build.Created,
		"} 1\n")
	set := metrics.NewSet()
	store = newMeteredStore(set, store)
	createdTotal := set.NewCounter("contacts_created_total")

	opts = append([]router.Option{
		router.OptFunc(func(api huma.API) {
			api.UseMiddleware(
				ctxlog{}.loggerMiddleware(logger),
				meterRequests(set),
				ctxlog{}.recoverMiddleware(api, logger),
			)
		}),
		router.OptGroup(options.EndpointsPrefix,
			router.OptAutoRegister(&handlers.Contacts{
				Store:        store,
				ErrorHandler: ctxlog{}.errorHandler(logger),
				OnCreated: func(ctx context.Context, c *datastores.Contact) {
					createdTotal.Inc()
					ctxlog{}.from(ctx, logger).LogAttrs(ctx, slog.LevelInfo, "contact created",
						slog.String("contact", c.ID.String()))
				},
			}),
		),
	}, opts...)

	return router.New(build.Title, build.Version,
		func(w http.ResponseWriter, r *http.Request) {
			if _, err := store.LoadAll(r.Context()); err != nil {
				logger.LogAttrs(r.Context(), slog.LevelWarn, "not ready", slog.Any("err", err))
				w.WriteHeader(http.StatusServiceUnavailable)
			}
		},
		func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, buildinfoMetric)
			set.WritePrometheus(w)
			metrics.WriteProcessMetrics(w)
		},
		opts...,
	)
}
