// Package pagination implements keyset (cursor) pagination over collections
// ordered by creation time descending, ties broken by id descending.
package pagination

import (
	"context"
	"fmt"
	"time"

	"github.com/prophesy-fun/prophesy_api/shared"
)

// Record is anything that can be paged; PageID is the value handed out as
// a cursor.
type Record interface {
	PageID() string
}

// Position is a record's place in the total order.
type Position struct {
	CreatedAt time.Time
	ID        string
}

// Before reports whether p sorts before other (newer first).
func (p Position) Before(other Position) bool {
	if !p.CreatedAt.Equal(other.CreatedAt) {
		return p.CreatedAt.After(other.CreatedAt)
	}
	return p.ID > other.ID
}

// Source is the backing store of a single filtered collection.
type Source[T Record] interface {
	// Position resolves a cursor. found is false when the record is gone.
	Position(ctx context.Context, id string) (pos Position, found bool, err error)
	// Fetch returns at most n records in order, starting at from
	// (inclusive) or at the head of the collection when from is nil.
	Fetch(ctx context.Context, from *Position, n int) ([]T, error)
}

type PageRequest struct {
	Limit  int    `json:"limit" query:"limit"`
	Cursor string `json:"cursor,omitempty" query:"cursor"`
}

type PageResult[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor,omitempty"`
}

// EffectiveLimit applies the default to an unset limit and rejects anything
// outside [1, MaxPageLimit]. Callers parsing user input must reject an
// explicit zero themselves, see LimitOutOfRange.
func (r PageRequest) EffectiveLimit() (int, error) {
	if r.Limit == 0 {
		return shared.DefaultPageLimit, nil
	}
	if r.Limit < 1 || r.Limit > shared.MaxPageLimit {
		return 0, LimitOutOfRange(r.Limit)
	}
	return r.Limit, nil
}

func LimitOutOfRange(limit int) error {
	return shared.NewBadRequestError(
		fmt.Errorf("limit %d out of range", limit),
		fmt.Sprintf("limit must be between 1 and %d", shared.MaxPageLimit),
	)
}

// Paginate returns one page of src. One record beyond the limit is fetched
// to detect whether a next page exists; that record's id becomes the next
// cursor and the next page starts with it.
func Paginate[T Record](ctx context.Context, src Source[T], req PageRequest) (PageResult[T], error) {
	limit, err := req.EffectiveLimit()
	if err != nil {
		return PageResult[T]{}, err
	}

	var from *Position
	if req.Cursor != "" {
		pos, found, err := src.Position(ctx, req.Cursor)
		if err != nil {
			return PageResult[T]{}, err
		}
		if !found {
			return PageResult[T]{Items: []T{}}, nil
		}
		from = &pos
	}

	items, err := src.Fetch(ctx, from, limit+1)
	if err != nil {
		return PageResult[T]{}, err
	}
	if items == nil {
		items = []T{}
	}

	result := PageResult[T]{Items: items}
	if len(items) > limit {
		next := items[limit].PageID()
		result.Items = items[:limit]
		result.NextCursor = &next
	}
	return result, nil
}
