package model

import (
	"fmt"
	"net/url"
	"strings"
)

// The URL builders below are scanned and reconciled by external clients, so
// parameter order is part of the contract. They concatenate by hand instead
// of using url.Values, which would sort keys.

func QRPayloadURL(base, activityID, token string) string {
	return fmt.Sprintf("%s/validate-activity?activityId=%s&token=%s",
		strings.TrimSuffix(base, "/"), url.QueryEscape(activityID), token)
}

func ValidationSuccessRedirect(dashboard string, totalXP int, activityTitle, activityID string, badgeIDs []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s?validation=success&xp=%d&activityTitle=%s&activityId=%s",
		strings.TrimSuffix(dashboard, "/"),
		totalXP,
		url.QueryEscape(activityTitle),
		url.QueryEscape(activityID),
	)

	for i, id := range badgeIDs {
		fmt.Fprintf(&b, "&badge%d=%s", i, url.QueryEscape(id))
	}

	return b.String()
}

func ValidationAlreadyValidatedRedirect(dashboard string) string {
	return strings.TrimSuffix(dashboard, "/") + "?validation=already-validated"
}

func ValidationErrorRedirect(dashboard, message string) string {
	return fmt.Sprintf("%s?validation=error&message=%s",
		strings.TrimSuffix(dashboard, "/"), url.QueryEscape(message))
}
