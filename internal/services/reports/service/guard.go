package service

import (
	"context"
	"time"

	"tipline/internal/core/canon"
	perr "tipline/internal/platform/errors"
	"tipline/internal/services/reports/domain"
)

// GuardConfig holds the quota thresholds and their rolling windows
// A threshold of zero disables that quota
type GuardConfig struct {
	ResourceWindow time.Duration
	EmailWindow    time.Duration

	MaxPerWork      int
	MaxPerUser      int
	MaxPerUnrelated int
	MaxPerEmail     int
}

// GuardDefaults returns the stock quota configuration
// Unrelated pages carry no resource quota unless configured otherwise
func GuardDefaults() GuardConfig {
	return GuardConfig{
		ResourceWindow:  30 * 24 * time.Hour,
		EmailWindow:     24 * time.Hour,
		MaxPerWork:      5,
		MaxPerUser:      5,
		MaxPerUnrelated: 0,
		MaxPerEmail:     10,
	}
}

// guard evaluates the duplicate and rate quotas against report history
// It only reads, the authoritative run happens inside the submit
// transaction so concurrent submissions cannot race past a quota
func guard(
	ctx context.Context,
	hist domain.HistoryPort,
	cfg GuardConfig,
	id canon.Identity,
	email string,
	now time.Time,
) (domain.Outcome, string, error) {
	limit := 0
	switch id.Kind {
	case canon.KindWork:
		limit = cfg.MaxPerWork
	case canon.KindUser:
		limit = cfg.MaxPerUser
	case canon.KindUnrelated:
		limit = cfg.MaxPerUnrelated
	}
	if limit > 0 {
		n, err := hist.CountByKey(ctx, id.ComparisonKey(), now.Add(-cfg.ResourceWindow))
		if err != nil {
			return "", "", perr.Wrap(err, perr.ErrorCodeUnavailable, "report history count failed")
		}
		if n >= limit {
			return domain.OutcomeDuplicateResource, domain.MsgDuplicateResource, nil
		}
	}

	if cfg.MaxPerEmail > 0 {
		n, err := hist.CountByEmail(ctx, email, now.Add(-cfg.EmailWindow))
		if err != nil {
			return "", "", perr.Wrap(err, perr.ErrorCodeUnavailable, "report history count failed")
		}
		if n >= cfg.MaxPerEmail {
			return domain.OutcomeEmailLimit, domain.MsgEmailLimit, nil
		}
	}

	return domain.OutcomeAccepted, "", nil
}
