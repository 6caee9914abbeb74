package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Santosestevialima/telemarketing/internal/chart"
	"github.com/Santosestevialima/telemarketing/internal/dataset"
	"github.com/Santosestevialima/telemarketing/internal/stats"
)

// FormState is one submitted filter form. Filters apply only when a form is
// submitted; partial widget state never reaches the pipeline.
type FormState struct {
	AgeMin   int
	AgeMax   int
	Selected map[string][]string
	Chart    chart.Kind
}

// Session holds everything derived from one uploaded file: the cached raw
// table, its form options, and the most recently applied filter result.
type Session struct {
	ID       string
	FileName string
	Raw      *dataset.Table
	RawDist  stats.Distribution

	// Form bounds derived from the dataset itself.
	AgeLo   int
	AgeHi   int
	Options map[string][]string

	mu           sync.Mutex
	applied      bool
	form         FormState
	filtered     *dataset.Table
	filteredDist stats.Distribution
	blobs        map[string][]byte
	lastSeen     time.Time
}

// NewSession derives the form options and raw distribution for an upload.
func NewSession(fileName string, raw *dataset.Table) (*Session, error) {
	lo, hi, err := raw.IntBounds(dataset.AgeColumn)
	if err != nil {
		return nil, err
	}
	opts := make(map[string][]string, len(dataset.FilterColumns))
	for _, col := range dataset.FilterColumns {
		values, err := raw.DistinctSorted(col)
		if err != nil {
			return nil, err
		}
		opts[col] = values
	}
	rawDist, err := stats.Summarize(raw, dataset.OutcomeColumn)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:       uuid.NewString(),
		FileName: fileName,
		Raw:      raw,
		RawDist:  rawDist,
		AgeLo:    lo,
		AgeHi:    hi,
		Options:  opts,
		blobs:    make(map[string][]byte),
	}, nil
}

// SetResult installs a newly applied filter result and drops stale export
// blobs.
func (s *Session) SetResult(form FormState, filtered *dataset.Table, dist stats.Distribution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = true
	s.form = form
	s.filtered = filtered
	s.filteredDist = dist
	s.blobs = make(map[string][]byte)
}

// Result returns the last applied filter result, if any.
func (s *Session) Result() (FormState, *dataset.Table, stats.Distribution, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form, s.filtered, s.filteredDist, s.applied
}

// Blob memoizes an export artifact by name until the next filter apply.
func (s *Session) Blob(name string, build func() ([]byte, error)) ([]byte, error) {
	s.mu.Lock()
	b, ok := s.blobs[name]
	s.mu.Unlock()
	if ok {
		return b, nil
	}
	b, err := build()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.blobs[name] = b
	s.mu.Unlock()
	return b, nil
}

// Store keeps sessions in memory and evicts them after a TTL of inactivity.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
	now      func() time.Time
}

// NewStore returns a store evicting sessions idle longer than ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Put registers a session.
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.purgeLocked()
	s.lastSeen = st.now()
	st.sessions[s.ID] = s
}

// Get fetches a live session and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.purgeLocked()
	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = st.now()
	return s, true
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.purgeLocked()
	return len(st.sessions)
}

func (st *Store) purgeLocked() {
	cutoff := st.now().Add(-st.ttl)
	for id, s := range st.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
		}
	}
}
