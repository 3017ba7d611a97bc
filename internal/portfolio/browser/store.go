// Package browser holds the interactive state of the portfolio browser and
// derives everything it shows from the loaded company snapshot.
package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/gartstein/efportfolio/internal/portfolio/client"
	"github.com/gartstein/efportfolio/internal/portfolio/engine"
	e "github.com/gartstein/efportfolio/internal/portfolio/errors"
	"github.com/gartstein/efportfolio/internal/portfolio/models"
	"go.uber.org/zap"
)

// State is the UI state. Companies is the snapshot and is never modified
// after Load.
type State struct {
	Query     engine.Query
	Companies []models.Company
	Loaded    bool
	LoadErr   error

	// Selected is meaningful only while HasSelection is set; zero is a
	// valid company id.
	HasSelection    bool
	Selected        int64
	Founders        []models.Founder
	FoundersLoading bool
}

// Store owns State. Every mutation notifies the subscribers after the lock
// is released.
type Store struct {
	mu     sync.Mutex
	state  State
	source client.Source
	logger *zap.Logger

	// generation changes on every Select and CloseDetail; founder results
	// from an older generation are dropped.
	generation  uint64
	subscribers []func()
	inflight    sync.WaitGroup
}

func NewStore(source client.Source, logger *zap.Logger) *Store {
	return &Store{
		source: source,
		logger: logger.Named("browser_store"),
	}
}

// Subscribe registers fn to be called after each state change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Store) update(fn func(st *State)) {
	s.mu.Lock()
	fn(&s.state)
	subs := append([]func(){}, s.subscribers...)
	s.mu.Unlock()
	for _, sub := range subs {
		sub()
	}
}

// Load fetches the company snapshot once. A failure leaves an empty table
// and a visible error; it is not retried.
func (s *Store) Load(ctx context.Context) error {
	companies, err := s.source.LoadCompanies(ctx)
	if err != nil {
		s.logger.Error("Failed to load companies", zap.Error(err))
	}
	s.update(func(st *State) {
		st.Loaded = true
		st.LoadErr = err
		if err != nil {
			st.Companies = nil
			return
		}
		st.Companies = companies
	})
	return err
}

func (s *Store) SetSearch(text string) {
	s.update(func(st *State) { st.Query.Text = text })
}

// SetStatus filters by status; the empty status clears the filter.
func (s *Store) SetStatus(status models.Status) {
	s.update(func(st *State) { st.Query.Status = status })
}

// SetIndustry filters by tag; the empty tag clears the filter.
func (s *Store) SetIndustry(tag string) {
	s.update(func(st *State) { st.Query.Industry = tag })
}

// SortBy toggles the direction when column is already the sort column.
func (s *Store) SortBy(column engine.Column) {
	s.update(func(st *State) { st.Query.Sort = st.Query.Sort.Toggle(column) })
}

// Select opens the detail view of a loaded company and starts its founder
// fetch in the background.
func (s *Store) Select(ctx context.Context, id int64) error {
	s.mu.Lock()
	if !s.hasCompany(id) {
		s.mu.Unlock()
		return fmt.Errorf("%w: company %d", e.ErrNotFound, id)
	}
	s.mu.Unlock()

	var gen uint64
	s.update(func(st *State) {
		s.generation++
		gen = s.generation
		st.HasSelection = true
		st.Selected = id
		st.Founders = nil
		st.FoundersLoading = true
	})

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		founders, err := s.source.LoadFounders(ctx, id)
		s.applyFounders(gen, id, founders, err)
	}()
	return nil
}

func (s *Store) applyFounders(gen uint64, id int64, founders []models.Founder, err error) {
	s.mu.Lock()
	stale := gen != s.generation || !s.state.HasSelection || s.state.Selected != id
	s.mu.Unlock()
	if stale {
		s.logger.Debug("Discarding stale founder result", zap.Int64("company_id", id))
		return
	}
	if err != nil {
		s.logger.Debug("Founder lookup failed, showing none", zap.Int64("company_id", id), zap.Error(err))
		founders = []models.Founder{}
	}
	s.update(func(st *State) {
		if gen != s.generation {
			return
		}
		st.Founders = founders
		st.FoundersLoading = false
	})
}

// CloseDetail clears the selection. A founder fetch still in flight is
// ignored when it completes.
func (s *Store) CloseDetail() {
	s.update(func(st *State) {
		s.generation++
		st.HasSelection = false
		st.Selected = 0
		st.Founders = nil
		st.FoundersLoading = false
	})
}

// Wait blocks until every started founder fetch has returned.
func (s *Store) Wait() {
	s.inflight.Wait()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View derives what is displayed from the current state.
func (s *Store) View() View {
	return Derive(s.Snapshot())
}

func (s *Store) hasCompany(id int64) bool {
	for i := range s.state.Companies {
		if s.state.Companies[i].ID == id {
			return true
		}
	}
	return false
}
