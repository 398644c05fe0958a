package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/RDP08/agenda.capas/datastores"
)

type ServerOptions struct {
	Host              string        `short:"H" doc:"host to listen on"                    default:""`
	Port              string        `short:"p" doc:"port to listen on"                    default:"8888"`
	ReadHeaderTimeout time.Duration `          doc:"time allowed to read request headers" default:"15s"`
}

func NewServer(options *ServerOptions, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              options.Host + ":" + options.Port,
		ReadHeaderTimeout: options.ReadHeaderTimeout,
		Handler:           handler,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

// InMemory is the [StoreOptions.Datafile] value selecting a volatile store.
const InMemory = ":memory:"

type StoreOptions struct {
	Datafile string `short:"d" doc:"contacts JSON document, :memory: keeps contacts in memory" default:"contacts.json"`
}

func NewStore(options *StoreOptions, logger *slog.Logger) datastores.ContactsStore {
	if options.Datafile == InMemory {
		return datastores.NewContactsInmem()
	}
	return datastores.NewContactsFile(options.Datafile, logger.With("component", "datastores"))
}
