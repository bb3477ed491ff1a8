package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// TooManyRequests is the message sent with every 429.
const TooManyRequests = "Too Many Attempts."

// NewRateLimiter limits requests per client IP. rate uses the limiter
// formatted notation, e.g. "100-M". An empty rate disables limiting.
func NewRateLimiter(rate string, logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	if rate == "" {
		return func(next http.Handler) http.Handler { return next }, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}

	instance := limiter.New(memory.NewStore(), parsed)
	mw := stdlib.NewMiddleware(instance,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, TooManyRequests, nil)
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("rate limiter failed", slog.String("error", err.Error()))
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"An unexpected error occurred.", err)
		}),
	)
	return mw.Handler, nil
}
