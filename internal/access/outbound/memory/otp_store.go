package memory

import (
	"sync"

	"github.com/Rishu9835/DOORWISE/internal/access/entity"
	"github.com/Rishu9835/DOORWISE/internal/pkg/clock"
	"github.com/Rishu9835/DOORWISE/internal/pkg/hash"
)

// OTPStore keeps at most one record per purpose. Codes are stored as digests.
type OTPStore struct {
	mu     sync.Mutex
	slots  map[entity.Purpose]entity.OTPRecord
	digest hash.Hash
	clock  clock.Clocker
}

func NewOTPStore(digest hash.Hash, clk clock.Clocker) *OTPStore {
	return &OTPStore{
		slots:  make(map[entity.Purpose]entity.OTPRecord, len(entity.Purposes)),
		digest: digest,
		clock:  clk,
	}
}

// Save replaces the slot for rec.Purpose with rec, digesting rec.Code first.
// The replaced record is returned when there was one.
func (s *OTPStore) Save(rec entity.OTPRecord) (*entity.OTPRecord, error) {
	sum, err := s.digest.Hash(rec.Code)
	if err != nil {
		return nil, err
	}
	rec.Code = string(sum)

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.slots[rec.Purpose]
	s.slots[rec.Purpose] = rec
	if !ok {
		return nil, nil
	}

	return &prev, nil
}

// Verify checks code against the live record for purpose. A match consumes
// the record; an expired record is cleared; a mismatch leaves it in place.
func (s *OTPStore) Verify(code string, purpose entity.Purpose) (entity.OTPRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.slots[purpose]
	if !ok {
		return entity.OTPRecord{}, entity.NewOTPError(entity.ReasonNotFound)
	}

	if rec.Expired(s.clock.Now()) {
		delete(s.slots, purpose)
		return entity.OTPRecord{}, entity.NewOTPError(entity.ReasonExpired)
	}

	if !s.digest.Verify(rec.Code, code) {
		return entity.OTPRecord{}, entity.NewOTPError(entity.ReasonMismatch)
	}

	delete(s.slots, purpose)

	return rec, nil
}

// Discard removes rec if it still holds its purpose slot. A newer record for
// the same purpose is left alone.
func (s *OTPStore) Discard(rec entity.OTPRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.slots[rec.Purpose]
	if !ok || cur.ID != rec.ID {
		return false
	}
	delete(s.slots, rec.Purpose)

	return true
}

// Sweep drops every expired record and returns how many were removed.
func (s *OTPStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for p, rec := range s.slots {
		if rec.Expired(now) {
			delete(s.slots, p)
			removed++
		}
	}

	return removed
}

// Len returns the number of live slots, expired or not.
func (s *OTPStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.slots)
}
