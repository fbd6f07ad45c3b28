package signing

import (
	"testing"
	"time"
)

func TestSIWEMessageString(t *testing.T) {
	issuedAt := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)
	message := SIWEMessage{
		Domain:    "app.stg.dclex.com",
		Address:   "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Statement: "Terms of service statement.",
		URI:       "http://app.stg.dclex.com",
		Version:   "1",
		ChainID:   11155111,
		Nonce:     "aBcDeF123456",
		IssuedAt:  issuedAt,
	}

	want := "app.stg.dclex.com wants you to sign in with your Ethereum account:\n" +
		"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266\n" +
		"\n" +
		"Terms of service statement.\n" +
		"\n" +
		"URI: http://app.stg.dclex.com\n" +
		"Version: 1\n" +
		"Chain ID: 11155111\n" +
		"Nonce: aBcDeF123456\n" +
		"Issued At: 2025-03-14T09:26:53.589793Z"

	if got := message.String(); got != want {
		t.Errorf("rendered message mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSIWEMessageStringIsDeterministic(t *testing.T) {
	message := SIWEMessage{
		Domain:   "app.stg.dclex.com",
		Address:  "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		URI:      "http://app.stg.dclex.com",
		Version:  "1",
		ChainID:  1,
		Nonce:    "nonce",
		IssuedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if message.String() != message.String() {
		t.Error("same fields must render the same bytes")
	}
}

func TestFormatIssuedAt(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "microsecond fraction",
			in:   time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC),
			want: "2025-03-14T09:26:53.589793Z",
		},
		{
			name: "zero fraction omitted",
			in:   time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
			want: "2025-03-14T09:26:53Z",
		},
		{
			name: "sub-microsecond truncated",
			in:   time.Date(2025, 3, 14, 9, 26, 53, 589793999, time.UTC),
			want: "2025-03-14T09:26:53.589793Z",
		},
		{
			name: "non-UTC input converted",
			in:   time.Date(2025, 3, 14, 10, 26, 53, 0, time.FixedZone("CET", 3600)),
			want: "2025-03-14T09:26:53Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatIssuedAt(tt.in); got != tt.want {
				t.Errorf("FormatIssuedAt(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
