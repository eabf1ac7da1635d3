package memo

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

type owner struct {
	memo  Cache
	calls int
}

func (o *owner) answer() (int, error) {
	return Get(&o.memo, "answer", func() (int, error) {
		o.calls++
		return 42, nil
	})
}

func TestGetComputesOnce(t *testing.T) {
	o := &owner{}

	if o.memo.Computed("answer") {
		t.Fatal("answer should start uncomputed")
	}

	first, err := o.answer()
	if err != nil {
		t.Fatalf("answer() error = %v", err)
	}
	second, err := o.answer()
	if err != nil {
		t.Fatalf("answer() error = %v", err)
	}

	if first != 42 || second != 42 {
		t.Fatalf("answer() = %d, %d, want 42, 42", first, second)
	}
	if o.calls != 1 {
		t.Fatalf("calls = %d, want 1", o.calls)
	}
	if !o.memo.Computed("answer") {
		t.Fatal("answer should be computed after first read")
	}
}

func TestGetIsPerInstance(t *testing.T) {
	a := &owner{}
	b := &owner{}

	if _, err := a.answer(); err != nil {
		t.Fatalf("a.answer() error = %v", err)
	}
	if _, err := a.answer(); err != nil {
		t.Fatalf("a.answer() error = %v", err)
	}
	if b.memo.Computed("answer") {
		t.Fatal("b should not see a's value")
	}
	if _, err := b.answer(); err != nil {
		t.Fatalf("b.answer() error = %v", err)
	}

	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("calls = (%d, %d), want (1, 1)", a.calls, b.calls)
	}
}

func TestGetKeepsNamesApart(t *testing.T) {
	var c Cache

	x, _ := Get(&c, "x", func() (string, error) { return "x", nil })
	y, _ := Get(&c, "y", func() (string, error) { return "y", nil })

	if x != "x" || y != "y" {
		t.Fatalf("Get() = (%q, %q), want (x, y)", x, y)
	}
}

func TestGetDoesNotStoreErrors(t *testing.T) {
	var c Cache
	boom := errors.New("boom")
	calls := 0

	compute := func() (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 7, nil
	}

	if _, err := Get(&c, "n", compute); !errors.Is(err, boom) {
		t.Fatalf("Get() error = %v, want boom", err)
	}
	if c.Computed("n") {
		t.Fatal("failed computation should not be stored")
	}

	got, err := Get(&c, "n", compute)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != 7 || calls != 2 {
		t.Fatalf("Get() = %d after %d calls, want 7 after 2", got, calls)
	}
}

func TestGetTypeMismatch(t *testing.T) {
	var c Cache
	if _, err := Get(&c, "v", func() (int, error) { return 1, nil }); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	_, err := Get(&c, "v", func() (string, error) { return "", nil })
	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Get() error = %v, want *TypeMismatchError", err)
	}
	if mismatch.Name != "v" {
		t.Fatalf("TypeMismatchError.Name = %q, want v", mismatch.Name)
	}
}

func TestGetConcurrentReadsComputeOnce(t *testing.T) {
	var c Cache
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]int, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Get(&c, "slow", func() (int, error) {
				calls.Add(1)
				<-release
				return 9, nil
			})
			if err != nil {
				t.Errorf("Get() error = %v", err)
			}
			results[i] = v
		}(i)
	}

	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Fatalf("calls = %d, want 1", n)
	}
	for i, v := range results {
		if v != 9 {
			t.Fatalf("results[%d] = %d, want 9", i, v)
		}
	}
}
