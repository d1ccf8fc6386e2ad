package memstore

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type rec struct {
	ID   string
	Tags []string
}

func recID(r rec) string { return r.ID }

func cloneRec(r rec) rec {
	r.Tags = append([]string(nil), r.Tags...)
	return r
}

func newStore() *Store[rec] {
	return New([]rec{{ID: "a", Tags: []string{"x"}}, {ID: "b"}}, recID, cloneRec)
}

func TestStore_ListIsSnapshot(t *testing.T) {
	s := newStore()
	list := s.List()
	require.Len(t, list, 2)

	list[0].Tags[0] = "mutated"
	list[0] = rec{ID: "z"}

	got, err := s.Get("a")
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, got.Tags)
}

func TestStore_CRUD(t *testing.T) {
	s := newStore()

	require.NoError(t, s.Create(rec{ID: "c"}))
	require.ErrorIs(t, s.Create(rec{ID: "c"}), ErrDuplicate)
	require.Equal(t, 3, s.Len())

	updated, err := s.Update("b", func(r *rec) error {
		r.Tags = []string{"new"}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"new"}, updated.Tags)

	_, err = s.Update("missing", func(*rec) error { return nil })
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete("a"))
	require.ErrorIs(t, s.Delete("a"), ErrNotFound)
	_, err = s.Get("a")
	require.ErrorIs(t, err, ErrNotFound)

	ids := []string{}
	for _, r := range s.List() {
		ids = append(ids, r.ID)
	}
	require.Equal(t, []string{"b", "c"}, ids)
}

func TestStore_UpdateErrorLeavesRecord(t *testing.T) {
	s := newStore()
	boom := errors.New("boom")

	_, err := s.Update("a", func(r *rec) error {
		r.Tags[0] = "half"
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, _ := s.Get("a")
	require.Equal(t, []string{"x"}, got.Tags)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New[rec](nil, recID, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = s.Create(rec{ID: strconv.Itoa(i)})
		}(i)
		go func() {
			defer wg.Done()
			_ = s.List()
		}()
	}
	wg.Wait()
	require.Equal(t, 50, s.Len())
}

func TestStore_DeleteReleasesTail(t *testing.T) {
	s := New([]rec{{ID: "a"}, {ID: "b", Tags: []string{"y"}}, {ID: "c", Tags: []string{"z"}}}, recID, cloneRec)

	require.NoError(t, s.Delete("a"))

	tail := s.records[:cap(s.records)][len(s.records)]
	require.Equal(t, rec{}, tail)

	list := s.List()
	require.Len(t, list, 2)
	require.Equal(t, "b", list[0].ID)
	require.Equal(t, "c", list[1].ID)
}
