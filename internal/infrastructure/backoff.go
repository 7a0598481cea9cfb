package infrastructure

import (
	"math"
	"math/rand"
	"time"
)

func backoffWithJitter(attempt int, factor float64, min, max time.Duration, rng *rand.Rand) time.Duration {
	backoff := float64(min) * math.Pow(factor, float64(attempt))
	if backoff > float64(max) {
		backoff = float64(max)
	}

	base := time.Duration(backoff)
	if max <= min {
		return base
	}

	jitterWindow := max - min
	jitter := time.Duration(rng.Int63n(int64(jitterWindow) + 1))
	result := base + jitter
	if result > max {
		return max
	}

	return result
}

type retryPolicy struct {
	factor    float64
	minJitter time.Duration
	maxJitter time.Duration
}

func newRetryPolicy(factor float64, minJitter, maxJitter, defaultMin, defaultMax time.Duration) retryPolicy {
	if factor < 1 {
		factor = defaultBackoffFactor
	}
	if minJitter <= 0 {
		minJitter = defaultMin
	}
	if maxJitter <= 0 {
		maxJitter = defaultMax
	}
	if maxJitter < minJitter {
		maxJitter = minJitter
	}

	return retryPolicy{factor: factor, minJitter: minJitter, maxJitter: maxJitter}
}

func (p retryPolicy) delay(attempt int, rng *rand.Rand) time.Duration {
	return backoffWithJitter(attempt, p.factor, p.minJitter, p.maxJitter, rng)
}
