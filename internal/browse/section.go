package browse

import "animehub/internal/anilist"

// State is a section's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
)

// SectionName identifies one named slice of the catalog view.
type SectionName string

const (
	SectionTrending SectionName = "trending"
	SectionPopular  SectionName = "popular"
	SectionUpcoming SectionName = "upcoming"
	SectionSearch   SectionName = "search"
	SectionFiltered SectionName = "filtered"
)

// Section holds the accumulated results of one catalog slice: an ordered
// sequence with each anime id at most once, a 1-based page cursor, and the
// upstream hasNext flag. Every in-flight fetch carries the generation
// captured at issue time; Apply discards responses from a superseded
// generation so a stale page can never overwrite newer state.
//
// Section is not self-locking; the owning Feed serializes access.
type Section struct {
	name    SectionName
	state   State
	items   []anilist.Media
	seen    map[int]struct{}
	page    int
	hasNext bool
	gen     uint64
}

func newSection(name SectionName) *Section {
	return &Section{
		name: name,
		seen: make(map[int]struct{}),
	}
}

// Reset empties the section and invalidates in-flight fetches.
func (s *Section) Reset() {
	s.state = StateIdle
	s.items = nil
	s.seen = make(map[int]struct{})
	s.page = 0
	s.hasNext = false
	s.gen++
}

// BeginLoad advances the page cursor and enters Loading, returning the
// generation and 1-based page to fetch. It is a no-op (ok=false) while a
// load is already in flight.
func (s *Section) BeginLoad() (gen uint64, page int, ok bool) {
	if s.state == StateLoading {
		return 0, 0, false
	}
	s.page++
	s.state = StateLoading
	return s.gen, s.page, true
}

// Apply merges a fetched page into the accumulated sequence: arrivals with
// an already-seen id are dropped (first-seen wins) and hasNext is
// overwritten with the fresh flag. A response whose generation no longer
// matches is discarded and Apply reports false.
func (s *Section) Apply(gen uint64, media []anilist.Media, hasNext bool) bool {
	if gen != s.gen {
		return false
	}
	for _, m := range media {
		if _, dup := s.seen[m.ID]; dup {
			continue
		}
		s.seen[m.ID] = struct{}{}
		s.items = append(s.items, m)
	}
	s.hasNext = hasNext
	s.state = StateLoaded
	return true
}

// Fail records a failed fetch: the cursor steps back so the next trigger
// retries the same page, and prior results stay visible. Stale failures
// are ignored.
func (s *Section) Fail(gen uint64) {
	if gen != s.gen {
		return
	}
	s.page--
	if len(s.items) > 0 {
		s.state = StateLoaded
	} else {
		s.state = StateIdle
	}
}

// Items returns a copy of the accumulated sequence in first-arrival order.
func (s *Section) Items() []anilist.Media {
	out := make([]anilist.Media, len(s.items))
	copy(out, s.items)
	return out
}

// Name returns the section's name.
func (s *Section) Name() SectionName { return s.name }

// State returns the section's lifecycle state.
func (s *Section) State() State { return s.state }

// Page returns the last fetched (or in-flight) 1-based page, 0 before any load.
func (s *Section) Page() int { return s.page }

// HasNext reports the upstream's most recent hasNext flag.
func (s *Section) HasNext() bool { return s.hasNext }

// Len returns the number of accumulated items.
func (s *Section) Len() int { return len(s.items) }
