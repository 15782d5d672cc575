package pagination

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prophesy-fun/prophesy_api/shared"
)

type item struct {
	id        string
	createdAt time.Time
}

func (i item) PageID() string { return i.id }

// memorySource keeps items sorted in page order.
type memorySource struct {
	items   []item
	fetches int
	err     error
}

func newMemorySource(items ...item) *memorySource {
	s := &memorySource{items: append([]item(nil), items...)}
	s.sort()
	return s
}

func (s *memorySource) sort() {
	sort.Slice(s.items, func(a, b int) bool {
		return s.pos(s.items[a]).Before(s.pos(s.items[b]))
	})
}

func (s *memorySource) pos(i item) Position {
	return Position{CreatedAt: i.createdAt, ID: i.id}
}

func (s *memorySource) insert(i item) {
	s.items = append(s.items, i)
	s.sort()
}

func (s *memorySource) remove(id string) {
	for idx, i := range s.items {
		if i.id == id {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			return
		}
	}
}

func (s *memorySource) Position(_ context.Context, id string) (Position, bool, error) {
	if s.err != nil {
		return Position{}, false, s.err
	}
	for _, i := range s.items {
		if i.id == id {
			return s.pos(i), true, nil
		}
	}
	return Position{}, false, nil
}

func (s *memorySource) Fetch(_ context.Context, from *Position, n int) ([]item, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	var out []item
	for _, i := range s.items {
		if p := s.pos(i); from != nil && p != *from && !from.Before(p) {
			continue
		}
		if len(out) == n {
			break
		}
		out = append(out, i)
	}
	return out, nil
}

func makeItems(n int, sameTime bool) []item {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	items := make([]item, n)
	for i := range items {
		at := base.Add(time.Duration(i) * time.Second)
		if sameTime {
			at = base.Add(time.Duration(i/3) * time.Second)
		}
		items[i] = item{id: fmt.Sprintf("id-%03d", i), createdAt: at}
	}
	return items
}

func collect(t *testing.T, src Source[item], limit int) []string {
	t.Helper()
	ctx := context.Background()

	var ids []string
	req := PageRequest{Limit: limit}
	for pages := 0; pages < 1000; pages++ {
		page, err := Paginate[item](ctx, src, req)
		require.NoError(t, err)
		for _, it := range page.Items {
			ids = append(ids, it.id)
		}
		if page.NextCursor == nil {
			return ids
		}
		require.Len(t, page.Items, limit)
		req.Cursor = *page.NextCursor
	}
	t.Fatal("pagination did not terminate")
	return nil
}

func TestPaginate_VisitsEveryRecordOnceInOrder(t *testing.T) {
	for _, tc := range []struct {
		m, limit int
		sameTime bool
	}{
		{10, 3, false},
		{10, 1, false},
		{9, 3, false},
		{25, 7, true},
		{101, 100, true},
	} {
		t.Run(fmt.Sprintf("m=%d/limit=%d/ties=%v", tc.m, tc.limit, tc.sameTime), func(t *testing.T) {
			src := newMemorySource(makeItems(tc.m, tc.sameTime)...)

			got := collect(t, src, tc.limit)

			var want []string
			for _, i := range src.items {
				want = append(want, i.id)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestPaginate_FirstPage(t *testing.T) {
	src := newMemorySource(makeItems(10, false)...)

	page, err := Paginate[item](context.Background(), src, PageRequest{Limit: 4})
	require.NoError(t, err)
	require.Len(t, page.Items, 4)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "id-009", page.Items[0].id)
	assert.Equal(t, "id-005", *page.NextCursor)
}

func TestPaginate_LimitCoversCollection(t *testing.T) {
	for _, limit := range []int{10, 11, 100} {
		src := newMemorySource(makeItems(10, false)...)

		page, err := Paginate[item](context.Background(), src, PageRequest{Limit: limit})
		require.NoError(t, err)
		assert.Len(t, page.Items, 10)
		assert.Nil(t, page.NextCursor)
	}
}

func TestPaginate_DefaultLimit(t *testing.T) {
	src := newMemorySource(makeItems(30, false)...)

	page, err := Paginate[item](context.Background(), src, PageRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Items, shared.DefaultPageLimit)
	assert.NotNil(t, page.NextCursor)
}

func TestPaginate_StaleCursor(t *testing.T) {
	src := newMemorySource(makeItems(10, false)...)
	ctx := context.Background()

	page, err := Paginate[item](ctx, src, PageRequest{Limit: 3})
	require.NoError(t, err)
	src.remove(*page.NextCursor)

	page, err = Paginate[item](ctx, src, PageRequest{Limit: 3, Cursor: *page.NextCursor})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Nil(t, page.NextCursor)

	page, err = Paginate[item](ctx, src, PageRequest{Limit: 3, Cursor: "never-existed"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Nil(t, page.NextCursor)
}

func TestPaginate_StableUnderConcurrentWrites(t *testing.T) {
	src := newMemorySource(makeItems(10, false)...)
	ctx := context.Background()
	original := append([]item(nil), src.items...)

	page, err := Paginate[item](ctx, src, PageRequest{Limit: 4})
	require.NoError(t, err)
	seen := []string{}
	for _, it := range page.Items {
		seen = append(seen, it.id)
	}

	// newer records land before the cursor; an already served one goes away
	src.insert(item{id: "new-1", createdAt: original[0].createdAt.Add(time.Hour)})
	src.remove(original[0].id)

	cursor := page.NextCursor
	for cursor != nil {
		page, err = Paginate[item](ctx, src, PageRequest{Limit: 4, Cursor: *cursor})
		require.NoError(t, err)
		for _, it := range page.Items {
			seen = append(seen, it.id)
		}
		cursor = page.NextCursor
	}

	var want []string
	for _, it := range original {
		want = append(want, it.id)
	}
	assert.Equal(t, want, seen)
}

func TestPaginate_InvalidLimitRejectedBeforeStoreAccess(t *testing.T) {
	for _, limit := range []int{-1, 101, 1000} {
		src := newMemorySource(makeItems(3, false)...)

		_, err := Paginate[item](context.Background(), src, PageRequest{Limit: limit})
		appErr, ok := shared.GetAppError(err)
		require.True(t, ok, "limit %d", limit)
		assert.Equal(t, shared.KindValidation, appErr.Kind)
		assert.Zero(t, src.fetches)
	}
}

func TestPaginate_SourceErrorPropagates(t *testing.T) {
	src := newMemorySource(makeItems(3, false)...)
	src.err = shared.NewInternalError(errors.New("db down"), "Failed to fetch page")

	_, err := Paginate[item](context.Background(), src, PageRequest{Limit: 2})
	assert.True(t, shared.IsKind(err, shared.KindInternal))

	_, err = Paginate[item](context.Background(), src, PageRequest{Limit: 2, Cursor: "id-001"})
	assert.True(t, shared.IsKind(err, shared.KindInternal))
}

func TestPosition_Before(t *testing.T) {
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	newer := Position{CreatedAt: at.Add(time.Second), ID: "a"}
	older := Position{CreatedAt: at, ID: "z"}
	assert.True(t, newer.Before(older))
	assert.False(t, older.Before(newer))

	tieHigh := Position{CreatedAt: at, ID: "b"}
	tieLow := Position{CreatedAt: at, ID: "a"}
	assert.True(t, tieHigh.Before(tieLow))
	assert.False(t, tieLow.Before(tieLow))
}
