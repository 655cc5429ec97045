package chatbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPriorityWireValues(t *testing.T) {
	cases := map[Priority]int{
		PriorityDefault: 0,
		PriorityLow:     -1,
		PriorityMin:     -2,
		PriorityHigh:    1,
		PriorityMax:     2,
	}
	for p, want := range cases {
		assert.Equal(t, want, p.wireValue(), "priority %s", p)
	}
	// out-of-range values degrade to the default
	assert.Equal(t, 0, Priority(42).wireValue())
}

func TestImportanceWireValues(t *testing.T) {
	cases := map[Importance]int{
		ImportanceUnspecified: -1000,
		ImportanceNone:        0,
		ImportanceMin:         1,
		ImportanceLow:         2,
		ImportanceDefault:     3,
		ImportanceHigh:        4,
		ImportanceMax:         5,
	}
	for i, want := range cases {
		assert.Equal(t, want, i.wireValue(), "importance %s", i)
	}
	assert.Equal(t, 3, Importance(42).wireValue())
}

func TestParseTokenStatus_KnownValues(t *testing.T) {
	cases := map[string]TokenStatus{
		"TOKEN_NOT_SET":       TokenNotSet,
		"TOKEN_NOT_PROCESSED": TokenNotProcessed,
		"TOKEN_VALID":         TokenValid,
		"TOKEN_INVALID":       TokenInvalid,
		"TOKEN_EXPIRED":       TokenExpired,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseTokenStatus(raw), "raw %s", raw)
	}
}

// Any string whatsoever maps into the enumeration, with unknowns landing on
// TokenNotSet.
func TestParseTokenStatus_Total(t *testing.T) {
	known := map[string]bool{
		"TOKEN_NOT_PROCESSED": true,
		"TOKEN_VALID":         true,
		"TOKEN_INVALID":       true,
		"TOKEN_EXPIRED":       true,
	}
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")
		got := ParseTokenStatus(raw)
		if !known[raw] && got != TokenNotSet {
			t.Fatalf("unknown reply %q mapped to %s, want not_set", raw, got)
		}
		switch got {
		case TokenNotSet, TokenNotProcessed, TokenValid, TokenInvalid, TokenExpired:
		default:
			t.Fatalf("ParseTokenStatus(%q) = %d, outside the enumeration", raw, got)
		}
	})
}
