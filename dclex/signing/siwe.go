package signing

import (
	"fmt"
	"strings"
	"time"
)

// SIWEMessage is a Sign-In-With-Ethereum (EIP-4361) challenge. The backend
// verifies the exact byte sequence that was signed, so String must be
// deterministic: the same fields always render the same text.
type SIWEMessage struct {
	Domain    string
	Address   string
	Statement string
	URI       string
	Version   string
	ChainID   int
	Nonce     string
	IssuedAt  time.Time
}

// String renders the canonical EIP-4361 message text.
func (m SIWEMessage) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s wants you to sign in with your Ethereum account:\n", m.Domain)
	fmt.Fprintf(&b, "%s\n", m.Address)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n", m.Statement)
	b.WriteString("\n")
	fmt.Fprintf(&b, "URI: %s\n", m.URI)
	fmt.Fprintf(&b, "Version: %s\n", m.Version)
	fmt.Fprintf(&b, "Chain ID: %d\n", m.ChainID)
	fmt.Fprintf(&b, "Nonce: %s\n", m.Nonce)
	fmt.Fprintf(&b, "Issued At: %s", FormatIssuedAt(m.IssuedAt))
	return b.String()
}

// FormatIssuedAt renders an RFC 3339 UTC timestamp with microsecond
// precision and a literal Z suffix. A zero fractional part is omitted
// entirely rather than zero-padded.
func FormatIssuedAt(t time.Time) string {
	t = t.UTC().Truncate(time.Microsecond)
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05") + "Z"
	}
	return t.Format("2006-01-02T15:04:05.000000") + "Z"
}
