package orders

import (
	"sync"
	"testing"
)

func TestStoreAddAssignsIDs(t *testing.T) {
	s := NewStore()
	first := s.Add(Order{Date: "2026-08-01", Client: "Acme"})
	second := s.Add(Order{Date: "2026-08-02", Client: "Globex"})

	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("ids = %d, %d", first.ID, second.ID)
	}
	if first.Status != StatusPending {
		t.Fatalf("status = %q", first.Status)
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("created at not set")
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d", s.Len())
	}
}

func TestStoreByDate(t *testing.T) {
	s := NewStore()
	s.Add(Order{Date: "2026-08-01", Client: "Acme"})
	s.Add(Order{Date: "2026-08-02", Client: "Globex"})
	s.Add(Order{Date: "2026-08-01", Client: "Initech"})

	got := s.ByDate("2026-08-01")
	if len(got) != 2 {
		t.Fatalf("orders = %d", len(got))
	}
	if got[0].Client != "Acme" || got[1].Client != "Initech" {
		t.Fatalf("order = %q, %q", got[0].Client, got[1].Client)
	}
	if len(s.ByDate("2026-09-01")) != 0 {
		t.Fatal("no orders expected")
	}
}

func TestStoreConcurrentAdds(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(Order{Date: "2026-08-01"})
		}()
	}
	wg.Wait()

	seen := make(map[int64]struct{})
	for _, o := range s.List() {
		if _, dup := seen[o.ID]; dup {
			t.Fatalf("duplicate id %d", o.ID)
		}
		seen[o.ID] = struct{}{}
	}
	if len(seen) != 32 {
		t.Fatalf("orders = %d", len(seen))
	}
}
