package storage

import (
	"sync"
	"testing"

	"github.com/mushishi06/nhentai-archivist/internal/comicinfo"
)

func TestComicInfoStore(t *testing.T) {
	s := New()

	if _, ok := s.Get(1); ok {
		t.Error("Expected empty store")
	}

	s.Set(2, comicinfo.ComicInfo{Title: "[2] b"})
	s.Set(1, comicinfo.ComicInfo{Title: "[1] a"})

	ci, ok := s.Get(2)
	if !ok || ci.Title != "[2] b" {
		t.Errorf("Expected stored record for 2, got %+v (found %v)", ci, ok)
	}

	ids := s.IDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("Expected ids [1 2], got %v", ids)
	}

	if !s.Delete(1) {
		t.Error("Expected Delete to report an existing record")
	}
	if s.Delete(1) {
		t.Error("Expected second Delete to report a missing record")
	}
}

func TestComicInfoStoreConcurrent(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.Set(id, comicinfo.ComicInfo{})
			s.Get(id)
		}(i)
	}
	wg.Wait()

	if n := len(s.IDs()); n != 50 {
		t.Errorf("Expected 50 records, got %d", n)
	}
}
