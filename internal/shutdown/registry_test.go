package shutdown

import "testing"

func TestCloseRunsInReverseOrder(t *testing.T) {
	r := New()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		r.Push(func() error {
			order = append(order, i)
			return nil
		})
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	want := []int{2, 1, 0}
	for i, v := range want {
		if order[i] != v {
			t.Errorf("order = %v, want %v", order, want)
		}
	}
}

func TestCloseContinuesPastErrors(t *testing.T) {
	r := New()
	ran := 0
	r.Push(func() error { ran++; return nil })
	r.Push(func() error { ran++; return errBoom })
	r.Push(func() error { ran++; return nil })

	err := r.Close()
	if ran != 3 {
		t.Errorf("ran = %d, want 3 (all closers should run despite an error)", ran)
	}
	if err != errBoom {
		t.Errorf("Close() error = %v, want errBoom", err)
	}
}

func TestCloseEmptiesRegistry(t *testing.T) {
	r := New()
	r.Push(func() error { return nil })
	r.Close()
	if r.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", r.Len())
	}
}

var errBoom = testErr("boom")

type testErr string

func (e testErr) Error() string { return string(e) }
