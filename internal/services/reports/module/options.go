package module

import (
	"time"

	"tipline/internal/platform/config"
)

// Options controls triage quotas, host handling and the spam classifier
type Options struct {
	PrimaryHost      string
	AliasHosts       []string
	RequireKnownHost bool

	ResourceWindow  time.Duration
	EmailWindow     time.Duration
	MaxPerWork      int
	MaxPerUser      int
	MaxPerUnrelated int
	MaxPerEmail     int

	AkismetKey     string
	AkismetBlog    string
	AkismetRPS     float64
	AkismetBurst   int
	AkismetTimeout time.Duration
}

// FromConfig reads with REPORTS_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("REPORTS_")
	return Options{
		PrimaryHost:      c.MayString("PRIMARY_HOST", ""),
		AliasHosts:       c.MayCSV("ALIAS_HOSTS", nil),
		RequireKnownHost: c.MayBool("REQUIRE_KNOWN_HOST", true),

		ResourceWindow:  c.MayDuration("RESOURCE_WINDOW", 30*24*time.Hour),
		EmailWindow:     c.MayDuration("EMAIL_WINDOW", 24*time.Hour),
		MaxPerWork:      c.MayInt("MAX_PER_WORK", 5),
		MaxPerUser:      c.MayInt("MAX_PER_USER", 5),
		MaxPerUnrelated: c.MayInt("MAX_PER_UNRELATED", 0),
		MaxPerEmail:     c.MayInt("MAX_PER_EMAIL", 10),

		AkismetKey:     c.MayString("AKISMET_KEY", ""),
		AkismetBlog:    c.MayString("AKISMET_BLOG", ""),
		AkismetRPS:     c.MayFloat64("AKISMET_RPS", 5.0),
		AkismetBurst:   c.MayInt("AKISMET_BURST", 5),
		AkismetTimeout: c.MayDuration("AKISMET_TIMEOUT", 10*time.Second),
	}
}
