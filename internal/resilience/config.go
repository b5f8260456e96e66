package resilience

import "time"

// Retry profiles. Scoring covers the per-frame VAD path, where waiting is
// worse than failing; Upload covers transcription uploads, where requests are
// large and the remote end may be loading a model.
const (
	DefaultMaxRetries   = 3
	DefaultBaseDelay    = 500 * time.Millisecond
	DefaultMaxDelay     = 10 * time.Second
	DefaultJitterFactor = 0.2

	ScoringMaxRetries = 1
	ScoringBaseDelay  = 50 * time.Millisecond
	ScoringMaxDelay   = 200 * time.Millisecond

	UploadMaxRetries = 4
	UploadBaseDelay  = 1 * time.Second
	UploadMaxDelay   = 20 * time.Second
)

// Circuit breaker profiles.
const (
	DefaultThreshold         = 5
	DefaultResetTimeout      = 30 * time.Second
	DefaultHalfOpenSuccesses = 3

	ScoringThreshold         = 3
	ScoringResetTimeout      = 5 * time.Second
	ScoringHalfOpenSuccesses = 2
)

// RetryConfig holds retry settings.
type RetryConfig struct {
	MaxRetries   int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	JitterFactor float64
	IsRetryable  func(error) bool
}

// DefaultRetryConfig returns standard retry settings.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   DefaultMaxRetries,
		BaseDelay:    DefaultBaseDelay,
		MaxDelay:     DefaultMaxDelay,
		JitterFactor: DefaultJitterFactor,
		IsRetryable:  IsRetryable,
	}
}

// ScoringRetryConfig returns settings for the real-time VAD scoring path.
func ScoringRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   ScoringMaxRetries,
		BaseDelay:    ScoringBaseDelay,
		MaxDelay:     ScoringMaxDelay,
		JitterFactor: DefaultJitterFactor,
		IsRetryable:  IsRetryable,
	}
}

// UploadRetryConfig returns settings for transcription uploads.
func UploadRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   UploadMaxRetries,
		BaseDelay:    UploadBaseDelay,
		MaxDelay:     UploadMaxDelay,
		JitterFactor: DefaultJitterFactor,
		IsRetryable:  IsRetryable,
	}
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = DefaultMaxDelay
	}
	if c.JitterFactor <= 0 {
		c.JitterFactor = DefaultJitterFactor
	}
	if c.IsRetryable == nil {
		c.IsRetryable = IsRetryable
	}
	return c
}

// BreakerConfig holds circuit breaker settings.
type BreakerConfig struct {
	Threshold         int           // failures before opening
	ResetTimeout      time.Duration // wait before half-open attempt
	HalfOpenSuccesses int           // successes needed to close
}

// DefaultBreakerConfig returns standard breaker settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Threshold:         DefaultThreshold,
		ResetTimeout:      DefaultResetTimeout,
		HalfOpenSuccesses: DefaultHalfOpenSuccesses,
	}
}

// ScoringBreakerConfig trips fast so a dead runner does not stall capture.
func ScoringBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Threshold:         ScoringThreshold,
		ResetTimeout:      ScoringResetTimeout,
		HalfOpenSuccesses: ScoringHalfOpenSuccesses,
	}
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.Threshold <= 0 {
		c.Threshold = DefaultThreshold
	}
	if c.ResetTimeout <= 0 {
		c.ResetTimeout = DefaultResetTimeout
	}
	if c.HalfOpenSuccesses <= 0 {
		c.HalfOpenSuccesses = DefaultHalfOpenSuccesses
	}
	return c
}
