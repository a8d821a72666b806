package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/model"
)

// Store reads and writes the booking intent of a session.  The intent
// record holds only the four step identifiers plus the resume target;
// seat-level and refreshment-level selections never enter it because they
// are scoped to an already-resolved showtime and are re-entered after the
// flow resumes.
type Store struct {
	kv  KV
	ttl time.Duration
}

// NewStore builds a Store over the given KV with the session TTL.  The
// TTL bounds how long an abandoned intent lingers; every write refreshes
// it so an active session never expires mid-flow.
func NewStore(kv KV, ttl time.Duration) *Store {
	if kv == nil {
		panic("nil kv passed to NewStore")
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{kv: kv, ttl: ttl}
}

func intentKey(sid string) string { return fmt.Sprintf("booking:intent:%s", sid) }

// Intent returns the current booking intent of the session.  A session
// without one gets the zero intent, not an error.
func (s *Store) Intent(ctx context.Context, sid string) (model.BookingIntent, error) {
	raw, err := s.kv.Get(ctx, intentKey(sid))
	if err == ErrNotFound {
		return model.BookingIntent{}, nil
	}
	if err != nil {
		return model.BookingIntent{}, err
	}
	var intent model.BookingIntent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return model.BookingIntent{}, err
	}
	return intent, nil
}

// SetIntent shallow-merges the set fields of partial into the stored
// intent, so a single step can be written without clobbering fields not
// yet chosen.
func (s *Store) SetIntent(ctx context.Context, sid string, partial model.BookingIntent) error {
	current, err := s.Intent(ctx, sid)
	if err != nil {
		return err
	}
	merged := current.Merge(partial)
	raw, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, intentKey(sid), string(raw), s.ttl)
}

// ClearIntent removes the intent, used on completion or explicit cancel.
func (s *Store) ClearIntent(ctx context.Context, sid string) error {
	return s.kv.Del(ctx, intentKey(sid))
}

// RedirectTarget reads the stored resume URL without clearing anything;
// the caller decides when to clear after navigation completes.
func (s *Store) RedirectTarget(ctx context.Context, sid string) (string, error) {
	intent, err := s.Intent(ctx, sid)
	if err != nil {
		return "", err
	}
	return intent.RedirectURL, nil
}

// ConsumeIntent hands the intent to the checkout entry point exactly
// once: the read and the delete are atomic, so a second consume finds
// nothing.  ErrNotFound is returned when no intent is stored.
func (s *Store) ConsumeIntent(ctx context.Context, sid string) (model.BookingIntent, error) {
	raw, err := s.kv.GetDel(ctx, intentKey(sid))
	if err != nil {
		return model.BookingIntent{}, err
	}
	var intent model.BookingIntent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return model.BookingIntent{}, err
	}
	return intent, nil
}
