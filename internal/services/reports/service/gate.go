package service

import (
	"context"
	"strings"

	"tipline/internal/adapters/akismet"
	perr "tipline/internal/platform/errors"
	"tipline/internal/services/reports/domain"
)

// trustedBypass reports whether the submitter is signed in with the same
// address they typed into the form. Those reports skip classification
func trustedBypass(sub domain.Submitter) bool {
	return sub.Account != nil && strings.EqualFold(sub.Account.Email, sub.Email)
}

func classifierAttributes(in domain.SubmitInput) akismet.Attributes {
	role := akismet.RoleGuest
	if in.Account != nil {
		role = akismet.RoleUserNonmatching
	}
	return akismet.Attributes{
		CommentType: akismet.CommentTypeContactForm,
		UserRole:    role,
		Author:      akismet.Sanitize(in.Username),
		AuthorEmail: in.Email,
		Content:     akismet.Sanitize(in.Comment),
		UserIP:      in.IP,
		UserAgent:   in.UserAgent,
	}
}

// gate runs the spam classifier unless the submitter earns a bypass
func gate(
	ctx context.Context,
	classifier domain.ClassifierPort,
	in domain.SubmitInput,
) (domain.Outcome, string, error) {
	if trustedBypass(in.Submitter()) {
		return domain.OutcomeAccepted, "", nil
	}
	spam, err := classifier.Spam(ctx, classifierAttributes(in))
	if err != nil {
		return "", "", perr.Wrap(err, perr.ErrorCodeUnavailable, "spam check failed")
	}
	if spam {
		return domain.OutcomeSpam, domain.MsgSpam, nil
	}
	return domain.OutcomeAccepted, "", nil
}
