package binlog

import (
	"path/filepath"
	"sync"
	"testing"
)

func TestSiteRegistersOnce(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "site"))
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	var site Site
	for i := 0; i < 5; i++ {
		if err := Log(l, &site, "hit {}", U32(uint32(i))); err != nil {
			t.Fatal(err)
		}
	}
	if l.nextID != 1 {
		t.Fatalf("expected exactly one registered call site, got nextID=%d", l.nextID)
	}
}

func TestDistinctSitesGetDistinctIDs(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "site"))
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	var a, b Site
	if err := Log(l, &a, "same literal"); err != nil {
		t.Fatal(err)
	}
	if err := Log(l, &b, "same literal"); err != nil {
		t.Fatal(err)
	}
	if l.nextID != 2 {
		t.Fatalf("two distinct Sites with the same literal must register twice, got nextID=%d", l.nextID)
	}
}

func TestSiteConcurrentFirstHitIsSafe(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "site"))
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	var site Site
	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := Log(l, &site, "concurrent"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}
}
