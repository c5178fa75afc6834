package magiclink

import (
	"io"
	"log/slog"
	"time"
)

// DefaultExpiresIn is the token lifetime used when no option overrides it.
const DefaultExpiresIn = 5 * time.Minute

// clockSkewTolerance is the fixed leeway applied to every temporal check
// during verification. It absorbs clock drift between the issuing and
// verifying hosts; it is not configurable.
const clockSkewTolerance = 10 * time.Second

// Config holds the recognized configuration for Authenticate, with env tags
// for loading via the config package.
type Config struct {
	ExpiresIn time.Duration `env:"MAGICLINK_EXPIRES_IN" envDefault:"5m"` // Token lifetime, also the maximum accepted token age at verification.
}

type settings struct {
	expiresIn time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// Option customizes a single Authenticate call.
type Option func(*settings)

// WithExpiresIn sets the token lifetime and the maximum token age accepted at
// verification. Values <= 0 are kept as-is and yield tokens that are already
// expired, so every verification of them fails; misconfiguration degrades to
// "nobody can log in" rather than to an open window.
func WithExpiresIn(d time.Duration) Option {
	return func(s *settings) {
		s.expiresIn = d
	}
}

// WithConfig applies a loaded Config.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.expiresIn = cfg.ExpiresIn
	}
}

// WithLogger sets the logger used for debug diagnostics. Verification
// failure detail is only ever logged, never returned to the caller.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// withNow overrides the clock. Test hook.
func withNow(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{
		expiresIn: DefaultExpiresIn,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
