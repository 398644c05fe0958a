package api

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"

	"github.com/RDP08/agenda.capas/datastores"
)

var durationBuckets = metrics.ExponentialBuckets(1e-3, 5, 6) //nolint: gochecknoglobals,mnd // arbitrary

// meterRequests counts and times requests per operation and status.
func meterRequests(set *metrics.Set) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op, start := ctx.Operation(), time.Now()
		next(ctx)

		labels := joinQuote("{method=", op.Method, ",path=", op.Path, ",status=", strconv.Itoa(ctx.Status()), "}")
		set.GetOrCreateCounter("http_requests_total" + labels).Inc()
		set.GetOrCreatePrometheusHistogramExt("http_request_duration_seconds"+labels, durationBuckets).UpdateDuration(start)
	}
}

// meteredStore is a [datastores.ContactsStore] that times calls and counts failures.
type meteredStore struct {
	datastores.ContactsStore

	loadErrors, saveErrors     *metrics.Counter
	loadDuration, saveDuration *metrics.PrometheusHistogram
}

func newMeteredStore(set *metrics.Set, store datastores.ContactsStore) *meteredStore {
	return &meteredStore{
		ContactsStore: store,
		loadErrors:    set.NewCounter(`contacts_store_errors_total{op="load"}`),
		saveErrors:    set.NewCounter(`contacts_store_errors_total{op="save"}`),
		loadDuration:  set.NewPrometheusHistogramExt(`contacts_store_duration_seconds{op="load"}`, durationBuckets),
		saveDuration:  set.NewPrometheusHistogramExt(`contacts_store_duration_seconds{op="save"}`, durationBuckets),
	}
}

func (s *meteredStore) LoadAll(ctx context.Context) ([]*datastores.Contact, error) {
	defer s.loadDuration.UpdateDuration(time.Now())
	cs, err := s.ContactsStore.LoadAll(ctx)
	if err != nil {
		s.loadErrors.Inc()
	}
	return cs, err
}

func (s *meteredStore) SaveAll(ctx context.Context, cs []*datastores.Contact) error {
	defer s.saveDuration.UpdateDuration(time.Now())
	err := s.ContactsStore.SaveAll(ctx, cs)
	if err != nil {
		s.saveErrors.Inc()
	}
	return err
}

// joinQuote is [strings.Join] with " as separator.
func joinQuote(elems ...string) string { return strings.Join(elems, `"`) }

// joinSpace is [strings.Join] with space as separator.
func joinSpace(elems ...string) string { return strings.Join(elems, ` `) }

