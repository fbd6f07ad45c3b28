package client

import (
	"time"

	"github.com/pkg/errors"
)

const dateLayout = "2006-01-02"

// parseTimestamp accepts the backend's timestamp renderings: RFC 3339 with
// an offset, or a naive ISO timestamp which is UTC by contract.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized timestamp %q", s)
}

// parseOptionalDate maps null/"" to nil and a YYYY-MM-DD string to a UTC
// midnight time.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, errors.Wrapf(err, "unrecognized date %q", *s)
	}
	return &t, nil
}

// decodeError wraps a payload-shape failure as a transport failure so
// callers still see exactly one error family per cause.
func decodeError(err error, what string) error {
	return &TransportError{Err: errors.Wrap(err, what)}
}
