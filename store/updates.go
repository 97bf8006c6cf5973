package store

import (
	"context"
	"time"

	"github.com/Nizam1989/Nizam-CP-sub001/model"
)

// AppendUpdate appends one immutable record to the update feed. Rows in this
// table are never updated or deleted.
func (s *Store) AppendUpdate(ctx context.Context, rec *model.UpdateRecord) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

// ListUpdatesSince returns feed records strictly after the given timestamp,
// newest first, ties broken by id so pagination is stable.
func (s *Store) ListUpdatesSince(ctx context.Context, since time.Time, limit int) ([]model.UpdateRecord, error) {
	var recs []model.UpdateRecord
	err := s.db.WithContext(ctx).
		Where("created_at > ?", since).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
