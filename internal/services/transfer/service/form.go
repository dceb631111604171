package service

import (
	"context"
	"sync"

	"xferlock/internal/core/verdict"
	perr "xferlock/internal/platform/errors"
	acdom "xferlock/internal/services/authcheck/domain"
	dom "xferlock/internal/services/transfer/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type formEntry struct {
	id    string
	entry dom.Entry
	dup   bool
	s     *Session
}

// Form is an ordered list of entries for a bulk transfer, each with its own session.
// Duplicate flags are recomputed across the whole list on every change
type Form struct {
	checker  acdom.CheckerPort
	composer *verdict.Composer
	cfg      Config

	mu      sync.Mutex
	entries []*formEntry
	closed  bool
}

// NewForm returns an empty form whose sessions share checker, composer and cfg
func NewForm(checker acdom.CheckerPort, composer *verdict.Composer, cfg Config) *Form {
	return &Form{checker: checker, composer: composer, cfg: cfg}
}

// Add appends an entry and returns its id
func (f *Form) Add(e dom.Entry) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", perr.Unavailablef("form closed")
	}
	fe := &formEntry{
		id:    uuid.NewString(),
		entry: e,
		s:     NewSession(f.checker, f.composer, f.cfg),
	}
	f.entries = append(f.entries, fe)
	f.syncLocked(fe)
	return fe.id, nil
}

// Set replaces the entry with the given id
func (f *Form) Set(id string, e dom.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	fe, _ := f.findLocked(id)
	if fe == nil {
		return perr.WithField(perr.NotFoundf("entry %s not found", id), "id")
	}
	fe.entry = e
	f.syncLocked(fe)
	return nil
}

// Remove drops the entry with the given id and closes its session
func (f *Form) Remove(id string) error {
	f.mu.Lock()
	fe, i := f.findLocked(id)
	if fe == nil {
		f.mu.Unlock()
		return perr.WithField(perr.NotFoundf("entry %s not found", id), "id")
	}
	f.entries = append(f.entries[:i], f.entries[i+1:]...)
	f.syncLocked(nil)
	f.mu.Unlock()

	fe.s.Close()
	return nil
}

// Len returns the number of entries
func (f *Form) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// Verdicts returns the current verdict of every entry in order
func (f *Form) Verdicts() []dom.EntryVerdict {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]dom.EntryVerdict, len(f.entries))
	for i, fe := range f.entries {
		out[i] = dom.EntryVerdict{ID: fe.id, Entry: fe.entry, Verdict: fe.s.Verdict()}
	}
	return out
}

// Summary aggregates the current verdicts
func (f *Form) Summary() dom.Summary {
	return Summarize(f.Verdicts())
}

// Summarize aggregates a verdict list
func Summarize(vs []dom.EntryVerdict) dom.Summary {
	sum := dom.Summary{Total: len(vs)}
	for _, ev := range vs {
		switch {
		case ev.Verdict.Valid:
			sum.Valid++
		case ev.Verdict.Loading:
			sum.Loading++
		default:
			sum.Invalid++
		}
	}
	sum.AllValid = sum.Total > 0 && sum.Valid == sum.Total
	sum.AnyLoading = sum.Loading > 0
	return sum
}

// Settle flushes every entry and waits until none is loading
func (f *Form) Settle(ctx context.Context) error {
	f.mu.Lock()
	sessions := make([]*Session, len(f.entries))
	for i, fe := range f.entries {
		sessions[i] = fe.s
	}
	f.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range sessions {
		s := s
		g.Go(func() error {
			_, err := s.Settle(gctx)
			return err
		})
	}
	return g.Wait()
}

// Close closes every session; the form rejects further entries
func (f *Form) Close() {
	f.mu.Lock()
	f.closed = true
	entries := f.entries
	f.entries = nil
	f.mu.Unlock()

	for _, fe := range entries {
		fe.s.Close()
	}
}

func (f *Form) findLocked(id string) (*formEntry, int) {
	for i, fe := range f.entries {
		if fe.id == id {
			return fe, i
		}
	}
	return nil, -1
}

// syncLocked recomputes duplicate flags and pushes changed entries into their sessions
func (f *Form) syncLocked(changed *formEntry) {
	list := make([]dom.Entry, len(f.entries))
	for i, fe := range f.entries {
		list[i] = fe.entry
	}
	dups := Duplicates(list)
	for i, fe := range f.entries {
		if fe != changed && fe.dup == dups[i] {
			continue
		}
		fe.dup = dups[i]
		fe.s.Update(dom.Input{Domain: fe.entry.Domain, AuthCode: fe.entry.AuthCode, HasDuplicates: fe.dup})
	}
}
