package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"

	"github.com/2beens/notesbox/internal/ratelimit"
	"github.com/2beens/notesbox/internal/telemetry/metrics"
	"github.com/2beens/notesbox/internal/telemetry/tracing"
	"github.com/2beens/notesbox/pkg"
	"github.com/2beens/notesbox/pkg/apierr"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=rate_limiting_mocks_test.go -package=middleware_test

type requestLimiter interface {
	Allow(ctx context.Context, client string) (*ratelimit.Result, error)
}

// RateLimit admits or rejects each request based on the client address.
// Rejected requests get a 429 envelope; a limiter failure yields a 500.
func RateLimit(limiter requestLimiter, metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.rateLimit")
			defer span.End()

			client, err := pkg.ReadUserIP(r)
			if err != nil {
				client = pkg.RemoteHost(r)
				log.Tracef("rate limit: cannot resolve client ip, using remote host [%s]: %s", client, err)
			}
			span.SetAttributes(attribute.String("client", client))

			res, err := limiter.Allow(ctx, client)
			if res != nil {
				setRateLimitHeaders(w, res)
			}

			if err != nil {
				if apierr.IsKind(err, apierr.KindTooManyRequests) {
					log.Debugf("rate limit: client [%s] over budget on [%s %s]", client, r.Method, r.URL.Path)
					if metricsManager != nil {
						metricsManager.CounterRateLimitedRequests.Inc()
					}
					span.SetStatus(codes.Error, "rate-limited")
					pkg.WriteError(w, err)
					return
				}

				span.SetStatus(codes.Error, "limiter-failed")
				span.RecordError(err)
				pkg.WriteError(w, apierr.NewInternalError(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func setRateLimitHeaders(w http.ResponseWriter, res *ratelimit.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	if !res.Allowed && res.RetryAfter > 0 {
		retryAfterSec := int(math.Ceil(res.RetryAfter.Seconds()))
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	}
}
