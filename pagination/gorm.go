package pagination

import (
	"context"
	"errors"
	"time"

	"github.com/prophesy-fun/prophesy_api/shared"
	"gorm.io/gorm"
)

// GormSource pages a gorm model. The filter scope narrows the collection
// and applies to cursor resolution as well, so a cursor from another
// collection behaves like a deleted record.
type GormSource[T Record] struct {
	db       *gorm.DB
	filter   func(*gorm.DB) *gorm.DB
	preloads []string
}

func NewGormSource[T Record](db *gorm.DB, filter func(*gorm.DB) *gorm.DB, preloads ...string) *GormSource[T] {
	if filter == nil {
		filter = func(tx *gorm.DB) *gorm.DB { return tx }
	}
	return &GormSource[T]{
		db:       db,
		filter:   filter,
		preloads: preloads,
	}
}

type positionRow struct {
	ID        string
	CreatedAt time.Time
}

func (s *GormSource[T]) Position(ctx context.Context, id string) (Position, bool, error) {
	var row positionRow

	err := s.db.WithContext(ctx).
		Model(new(T)).
		Scopes(s.filter).
		Select("id", "created_at").
		Where("id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, shared.NewInternalError(err, "Failed to resolve cursor")
	}
	return Position{CreatedAt: row.CreatedAt, ID: row.ID}, true, nil
}

func (s *GormSource[T]) Fetch(ctx context.Context, from *Position, n int) ([]T, error) {
	query := s.db.WithContext(ctx).Model(new(T)).Scopes(s.filter)
	for _, preload := range s.preloads {
		query = query.Preload(preload)
	}

	if from != nil {
		query = query.Where("(created_at < ? OR (created_at = ? AND id <= ?))",
			from.CreatedAt, from.CreatedAt, from.ID)
	}

	var items []T
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(n).
		Find(&items).Error
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to fetch page")
	}
	return items, nil
}
