package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/pkg"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit limits requests per client IP within the named router.
// X-Real-Ip and X-Forwarded-For are only used for the IP when
// trustProxyHeaders is set, otherwise the connection address is.
func RateLimit(
	rateLimiter RequestRateLimiter,
	routerName string,
	allowedPerMin int,
	trustProxyHeaders bool,
	metricsManager *metrics.Manager,
) func(next http.Handler) http.Handler {
	readIP := pkg.ReadRemoteIP
	if trustProxyHeaders {
		readIP = pkg.ReadUserIP
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			key := routerName
			if ip, err := readIP(r); err == nil {
				key = routerName + "||" + ip
			} else {
				log.Debugf("rate limit [%s]: %s, falling back to router key", routerName, err)
			}

			res, err := rateLimiter.Allow(r.Context(), key, redis_rate.PerMinute(allowedPerMin))
			if err != nil {
				log.Errorf("rate limit [%s]: %s", routerName, err)
				pkg.WriteMessage(w, http.StatusInternalServerError, "Server error")
				return
			}

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.Inc()
			}

			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			pkg.WriteMessage(
				w,
				http.StatusTooManyRequests,
				fmt.Sprintf("Too many requests, retry after %.0f seconds", math.Ceil(res.RetryAfter.Seconds())),
			)
		})
	}
}
