package models

import (
	"testing"
	"time"

	"jobsy/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	t.Run("expired status wins over a future date", func(t *testing.T) {
		l := &Listing{Status: domain.StatusExpired, ExpiresAt: &future}
		assert.True(t, l.IsExpired(now))
	})

	t.Run("nil expiry never expires", func(t *testing.T) {
		l := &Listing{Status: domain.StatusApproved}
		assert.False(t, l.IsExpired(now))
	})

	t.Run("past date expires", func(t *testing.T) {
		l := &Listing{Status: domain.StatusApproved, ExpiresAt: &past}
		assert.True(t, l.IsExpired(now))
	})

	t.Run("exact boundary counts as expired", func(t *testing.T) {
		boundary := now
		l := &Listing{Status: domain.StatusApproved, ExpiresAt: &boundary}
		assert.True(t, l.IsExpired(now))
	})

	t.Run("future date is live", func(t *testing.T) {
		l := &Listing{Status: domain.StatusApproved, ExpiresAt: &future}
		assert.False(t, l.IsExpired(now))
	})
}

func TestDaysUntilExpiration(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("nil expiry has no countdown", func(t *testing.T) {
		l := &Listing{Status: domain.StatusApproved}
		assert.Nil(t, l.DaysUntilExpiration(now))
	})

	t.Run("expired listing reports zero", func(t *testing.T) {
		past := now.Add(-48 * time.Hour)
		l := &Listing{Status: domain.StatusApproved, ExpiresAt: &past}
		d := l.DaysUntilExpiration(now)
		if assert.NotNil(t, d) {
			assert.Equal(t, 0, *d)
		}
	})

	t.Run("partial days floor", func(t *testing.T) {
		at := now.Add(36 * time.Hour)
		l := &Listing{Status: domain.StatusApproved, ExpiresAt: &at}
		d := l.DaysUntilExpiration(now)
		if assert.NotNil(t, d) {
			assert.Equal(t, 1, *d)
		}
	})

	// The countdown defers to the expiry predicate: an expired listing always
	// reports zero, and the count is never negative.
	t.Run("consistent with IsExpired", func(t *testing.T) {
		for _, offset := range []time.Duration{-time.Hour, 0, time.Hour, 72 * time.Hour} {
			at := now.Add(offset)
			l := &Listing{Status: domain.StatusApproved, ExpiresAt: &at}
			d := l.DaysUntilExpiration(now)
			if assert.NotNil(t, d) {
				assert.GreaterOrEqual(t, *d, 0, "offset %v", offset)
				if l.IsExpired(now) {
					assert.Equal(t, 0, *d, "offset %v", offset)
				}
			}
		}
	})
}
