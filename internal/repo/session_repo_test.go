package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSession_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "ann", "ann@example.com")
	token := strings.Repeat("ab", 32)

	s, err := CreateSession(context.Background(), db, u.ID, token, time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.UserID != u.ID || s.Token != token {
		t.Fatalf("unexpected session: %+v", s)
	}

	got, err := GetSession(context.Background(), db, token, time.Now())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != u.ID {
		t.Fatalf("wrong user resolved: %q", got.UserID)
	}
}

func TestSession_ExpiredIsNotFound(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "ann", "ann@example.com")
	token := strings.Repeat("cd", 32)

	if _, err := CreateSession(context.Background(), db, u.ID, token, time.Hour); err != nil {
		t.Fatalf("create: %v", err)
	}

	// A lookup after expiry must see nothing.
	future := time.Now().Add(2 * time.Hour)
	if _, err := GetSession(context.Background(), db, token, future); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired session, got %v", err)
	}
}

func TestSession_UnknownTokenIsNotFound(t *testing.T) {
	db := newTestDB(t)
	if _, err := GetSession(context.Background(), db, "nope", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSession_Idempotent(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "ann", "ann@example.com")
	token := strings.Repeat("ef", 32)

	if _, err := CreateSession(context.Background(), db, u.ID, token, time.Hour); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := DeleteSession(context.Background(), db, token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// Second delete of the same token must still succeed.
	if err := DeleteSession(context.Background(), db, token); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
	if _, err := GetSession(context.Background(), db, token, time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("session should be gone, got %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "ann", "ann@example.com")

	if _, err := CreateSession(context.Background(), db, u.ID, strings.Repeat("01", 32), time.Hour); err != nil {
		t.Fatalf("create live: %v", err)
	}
	if _, err := CreateSession(context.Background(), db, u.ID, strings.Repeat("02", 32), -time.Minute); err != nil {
		t.Fatalf("create expired: %v", err)
	}

	n, err := DeleteExpiredSessions(context.Background(), db, time.Now())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 purged session, got %d", n)
	}

	// The live session survives the sweep.
	if _, err := GetSession(context.Background(), db, strings.Repeat("01", 32), time.Now()); err != nil {
		t.Fatalf("live session lost: %v", err)
	}
}

func TestDeleteExpiredSessions_ZonedNowKeepsLiveSessions(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "ann", "ann@example.com")
	token := strings.Repeat("03", 32)

	if _, err := CreateSession(context.Background(), db, u.ID, token, 3*time.Hour); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Expiries are stored in UTC; a now carrying an east-of-UTC offset must
	// not push live sessions past the cutoff.
	zoned := time.Now().In(time.FixedZone("ICT", 7*60*60))
	n, err := DeleteExpiredSessions(context.Background(), db, zoned)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 0 {
		t.Fatalf("sweep purged %d live sessions", n)
	}
	if _, err := GetSession(context.Background(), db, token, zoned); err != nil {
		t.Fatalf("live session lost after zoned sweep: %v", err)
	}
}
