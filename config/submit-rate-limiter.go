package config

import "time"

// Submit rate limit configuration
type SubmitRateLimitConfig struct {
	AttemptsThreshold1 int           // Number of wrong attempts before first cooldown
	CooldownDuration1  time.Duration // First cooldown duration
	AttemptsThreshold2 int           // Number of wrong attempts before second cooldown
	CooldownDuration2  time.Duration // Second cooldown duration
}

var DefaultSubmitRateLimitConfig = SubmitRateLimitConfig{
	AttemptsThreshold1: 3,
	CooldownDuration1:  3 * time.Minute,
	AttemptsThreshold2: 5,
	CooldownDuration2:  5 * time.Minute,
}
