package service

import (
	"context"
	"sync"

	"xferlock/internal/core/availability"
	perr "xferlock/internal/platform/errors"
	acdom "xferlock/internal/services/authcheck/domain"
)

// fakeChecker answers from a table; gated keys block until released
type fakeChecker struct {
	mu        sync.Mutex
	calls     []acdom.Key
	refreshes int
	gates     map[acdom.Key]chan struct{}
	answers   map[acdom.Key]acdom.Result
	fail      map[acdom.Key]error
}

func newFakeChecker() *fakeChecker {
	return &fakeChecker{
		gates:   map[acdom.Key]chan struct{}{},
		answers: map[acdom.Key]acdom.Result{},
		fail:    map[acdom.Key]error{},
	}
}

func (f *fakeChecker) gate(k acdom.Key) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[k] = ch
	return ch
}

func (f *fakeChecker) answer(k acdom.Key, r acdom.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers[k] = r
}

func (f *fakeChecker) failWith(k acdom.Key, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, k)
		return
	}
	f.fail[k] = err
}

func (f *fakeChecker) Check(_ context.Context, k acdom.Key) (acdom.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, k)
	g := f.gates[k]
	f.mu.Unlock()

	// ignores ctx on purpose so stale answers really arrive
	if g != nil {
		<-g
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[k]; err != nil {
		return acdom.Result{}, err
	}
	if r, ok := f.answers[k]; ok {
		return r, nil
	}
	return acdom.Result{Status: availability.StatusLocked}, nil
}

func (f *fakeChecker) Refresh(ctx context.Context, k acdom.Key) (acdom.Result, error) {
	f.mu.Lock()
	f.refreshes++
	f.mu.Unlock()
	return f.Check(ctx, k)
}

func (f *fakeChecker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeChecker) refreshCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshes
}

var errRegistryDown = perr.Unavailablef("registrar down")
