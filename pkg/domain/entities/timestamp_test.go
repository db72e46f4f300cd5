package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"full timestamp", "2026-03-05 14:30:00", time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC), false},
		{"date only", "2026-03-05", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), false},
		{"slashes rejected", "2026/03/05", time.Time{}, true},
		{"empty", "", time.Time{}, true},
		{"garbage", "yesterday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var parseErr *ParseError
				assert.True(t, errors.As(err, &parseErr))
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
		})
	}
}

func TestFormatTimestampRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC)
	parsed, err := ParseTimestamp(FormatTimestamp(at))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(at))
}
