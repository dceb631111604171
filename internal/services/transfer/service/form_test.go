package service

import (
	"context"
	"testing"
	"time"

	"xferlock/internal/core/availability"
	"xferlock/internal/core/verdict"
	perr "xferlock/internal/platform/errors"
	kit "xferlock/internal/platform/testkit"
	acdom "xferlock/internal/services/authcheck/domain"
	dom "xferlock/internal/services/transfer/domain"

	"go.uber.org/goleak"
)

func TestDuplicates(t *testing.T) {
	got := Duplicates([]dom.Entry{
		{Domain: "Example.com"},
		{Domain: ""},
		{Domain: "example.com."},
		{Domain: "  "},
		{Domain: "other.org"},
		{Domain: "https://EXAMPLE.com/path"},
	})
	want := []bool{false, false, true, false, false, true}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Duplicates()[%d] = %v, want %v (all %v)", i, got[i], want[i], got)
		}
	}
}

func TestForm_DuplicatesFlagLaterEntry(t *testing.T) {
	defer goleak.VerifyNone(t)
	ck := newFakeChecker()
	clock := kit.NewManualClock()
	f := NewForm(ck, verdict.New(nil), Config{Delay: delay, AfterFunc: clock.AfterFunc})

	a, err := f.Add(dom.Entry{Domain: "example.com", AuthCode: "one"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	b, _ := f.Add(dom.Entry{Domain: "EXAMPLE.com", AuthCode: "two"})
	clock.Advance(delay)

	vs := f.Verdicts()
	if vs[0].ID != a || vs[1].ID != b {
		t.Fatalf("order not kept: %+v", vs)
	}
	if vs[0].Verdict.Reason == verdict.ReasonDuplicate {
		t.Fatalf("first entry must not be flagged")
	}
	if vs[1].Verdict.Reason != verdict.ReasonDuplicate {
		t.Fatalf("second entry reason = %s, want duplicate", vs[1].Verdict.Reason)
	}

	// fixing the first entry frees the second
	if err := f.Set(a, dom.Entry{Domain: "other.com", AuthCode: "one"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	clock.Advance(delay)
	if got := f.Verdicts()[1].Verdict.Reason; got == verdict.ReasonDuplicate {
		t.Fatalf("second entry still flagged after edit")
	}

	f.Close()
}

func TestForm_SettleAndSummary(t *testing.T) {
	ck := newFakeChecker()
	ck.answer(acdom.Key{Domain: "good.com", AuthCode: "abc"}, acdom.Result{AuthCodeValid: true})
	ck.answer(acdom.Key{Domain: "locked.com", AuthCode: "abc"}, acdom.Result{Status: availability.StatusLocked})
	f := NewForm(ck, verdict.New(nil), Config{Delay: time.Hour})
	defer f.Close()

	_, _ = f.Add(dom.Entry{Domain: "good.com", AuthCode: "abc"})
	_, _ = f.Add(dom.Entry{Domain: "locked.com", AuthCode: "abc"})
	_, _ = f.Add(dom.Entry{Domain: "good.com", AuthCode: "abc"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := f.Settle(ctx); err != nil {
		t.Fatalf("Settle: %v", err)
	}

	sum := f.Summary()
	if sum.Total != 3 || sum.Valid != 1 || sum.Invalid != 2 || sum.AllValid || sum.AnyLoading {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestForm_RemoveAndUnknownIDs(t *testing.T) {
	f := NewForm(newFakeChecker(), nil, Config{Delay: time.Hour})
	id, _ := f.Add(dom.Entry{Domain: "example.com"})

	if err := f.Set("nope", dom.Entry{}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Set unknown id err = %v", err)
	}
	if err := f.Remove("nope"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Remove unknown id err = %v", err)
	}
	if err := f.Remove(id); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if f.Len() != 0 {
		t.Fatalf("Len = %d", f.Len())
	}

	f.Close()
	if _, err := f.Add(dom.Entry{}); err == nil {
		t.Fatalf("Add after Close should fail")
	}
	if sum := f.Summary(); sum.Total != 0 || sum.AllValid {
		t.Fatalf("empty summary = %+v", sum)
	}
}
