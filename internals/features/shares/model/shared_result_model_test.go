package model

import (
	"testing"
	"time"
)

func TestExpired(t *testing.T) {
	now := time.Now()
	m := &SharedResultModel{SharedResultExpiresAt: now.Add(time.Hour)}
	if m.Expired(now) {
		t.Error("future deadline reported expired")
	}
	if !m.Expired(now.Add(2 * time.Hour)) {
		t.Error("past deadline reported live")
	}
}

func TestAccessLifecycle(t *testing.T) {
	now := time.Now()
	live := &SharedResultModel{
		SharedResultIsActive:  true,
		SharedResultExpiresAt: now.Add(time.Hour),
	}
	if got := live.Access(now); got != ShareAccessible {
		t.Errorf("live link access = %v, want accessible", got)
	}

	// Past the deadline the same link must reject.
	if got := live.Access(now.Add(2 * time.Hour)); got != ShareExpired {
		t.Errorf("expired link access = %v, want expired", got)
	}

	revoked := &SharedResultModel{
		SharedResultIsActive:  false,
		SharedResultExpiresAt: now.Add(time.Hour),
	}
	if got := revoked.Access(now); got != ShareDeactivated {
		t.Errorf("revoked link access = %v, want deactivated", got)
	}

	// Revocation wins over expiry.
	revoked.SharedResultExpiresAt = now.Add(-time.Hour)
	if got := revoked.Access(now); got != ShareDeactivated {
		t.Errorf("revoked+expired link access = %v, want deactivated", got)
	}
}

func TestRecordView(t *testing.T) {
	now := time.Now()
	m := &SharedResultModel{}
	m.RecordView(now)
	if m.SharedResultViewCount != 1 {
		t.Errorf("view count = %d, want 1 after first resolve", m.SharedResultViewCount)
	}
	if m.SharedResultLastViewedAt == nil || !m.SharedResultLastViewedAt.Equal(now) {
		t.Errorf("last viewed = %v, want %v", m.SharedResultLastViewedAt, now)
	}
	m.RecordView(now.Add(time.Minute))
	if m.SharedResultViewCount != 2 {
		t.Errorf("view count = %d, want 2", m.SharedResultViewCount)
	}
}
