package storage

import (
	"sort"
	"sync"

	"github.com/mushishi06/nhentai-archivist/internal/comicinfo"
)

// ComicInfoStore keeps the last ComicInfo produced for each gallery id
type ComicInfoStore struct {
	records map[int64]comicinfo.ComicInfo
	mu      sync.RWMutex
}

func New() *ComicInfoStore {
	return &ComicInfoStore{
		records: make(map[int64]comicinfo.ComicInfo),
	}
}

func (s *ComicInfoStore) Get(id int64) (comicinfo.ComicInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ci, exists := s.records[id]
	return ci, exists
}

func (s *ComicInfoStore) Set(id int64, ci comicinfo.ComicInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = ci
}

// IDs returns the stored gallery ids in ascending order
func (s *ComicInfoStore) IDs() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *ComicInfoStore) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.records[id]
	delete(s.records, id)
	return exists
}
