package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQRPayloadURL(t *testing.T) {
	url := QRPayloadURL("https://app.example.com/", "activity1", "tok_abc")
	require.Equal(t,
		"https://app.example.com/validate-activity?activityId=activity1&token=tok_abc", url)
}

func TestValidationSuccessRedirect(t *testing.T) {
	url := ValidationSuccessRedirect(
		"https://app.example.com/dashboard", 60, "Beach Cleanup", "activity1",
		[]string{"five-activities", "ocean-hero"})
	require.Equal(t,
		"https://app.example.com/dashboard?validation=success&xp=60&activityTitle=Beach+Cleanup&activityId=activity1&badge0=five-activities&badge1=ocean-hero",
		url)

	// No badge parameters without unlocks.
	url = ValidationSuccessRedirect(
		"https://app.example.com/dashboard", 20, "Beach Cleanup", "activity1", nil)
	require.Equal(t,
		"https://app.example.com/dashboard?validation=success&xp=20&activityTitle=Beach+Cleanup&activityId=activity1",
		url)
}

func TestValidationAlreadyValidatedRedirect(t *testing.T) {
	url := ValidationAlreadyValidatedRedirect("https://app.example.com/dashboard/")
	require.Equal(t, "https://app.example.com/dashboard?validation=already-validated", url)
}

func TestValidationErrorRedirect(t *testing.T) {
	url := ValidationErrorRedirect("https://app.example.com/dashboard", "Activity is not open")
	require.Equal(t,
		"https://app.example.com/dashboard?validation=error&message=Activity+is+not+open", url)
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 26, 535897932, time.UTC)
	cursor := EncodeCursor(at, "row42")

	gotAt, gotID, err := DecodeCursor(cursor)
	require.NoError(t, err)
	require.Equal(t, at.UnixNano(), gotAt.UnixNano())
	require.Equal(t, "row42", gotID)

	_, _, err = DecodeCursor("not a cursor")
	require.Error(t, err)
}
