package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimeText(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{name: "zero", elapsed: 0, want: "just now"},
		{name: "thirty seconds", elapsed: 30 * time.Second, want: "just now"},
		{name: "just under a minute", elapsed: 59*time.Second + 999*time.Millisecond, want: "just now"},
		{name: "exactly a minute", elapsed: time.Minute, want: "1 minutes ago"},
		{name: "ninety seconds", elapsed: 90 * time.Second, want: "1 minutes ago"},
		{name: "just under an hour", elapsed: 59*time.Minute + 59*time.Second, want: "59 minutes ago"},
		{name: "exactly an hour", elapsed: time.Hour, want: "1 hours ago"},
		{name: "just under a day", elapsed: 23*time.Hour + 59*time.Minute, want: "23 hours ago"},
		{name: "exactly a day", elapsed: 24 * time.Hour, want: "1 days ago"},
		{name: "twenty five hours", elapsed: 25 * time.Hour, want: "1 days ago"},
		{name: "ten days", elapsed: 10*24*time.Hour + 5*time.Hour, want: "10 days ago"},
		{name: "future timestamp", elapsed: -5 * time.Minute, want: "just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimeText(now.Add(-tt.elapsed), now))
		})
	}
}
