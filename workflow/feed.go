package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Nizam1989/Nizam-CP-sub001/model"
	"github.com/Nizam1989/Nizam-CP-sub001/pkg/logger"
)

// DefaultUpdateLimit caps a feed read when the caller gives no limit
const DefaultUpdateLimit = 100

// Update is one feed record with its payload decoded for API consumers. Data
// holds the decoded snapshot, or the raw stored text when decoding fails.
type Update struct {
	ID         string    `json:"id"`
	UpdateType string    `json:"update_type"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Data       any       `json:"data,omitempty"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListUpdatesSince returns feed records strictly after since, newest first.
// One undecodable payload does not abort the batch; that record carries its
// raw text instead.
func (e *Engine) ListUpdatesSince(ctx context.Context, since time.Time, limit int) ([]Update, error) {
	if limit <= 0 {
		limit = DefaultUpdateLimit
	}
	recs, err := e.store.ListUpdatesSince(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list updates: %v", ErrStoreUnavailable, err)
	}

	out := make([]Update, 0, len(recs))
	for _, r := range recs {
		u := Update{
			ID:         r.ID,
			UpdateType: r.UpdateType,
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
			CreatedBy:  r.CreatedBy,
			CreatedAt:  r.CreatedAt,
		}
		var decoded any
		if err := json.Unmarshal([]byte(r.Data), &decoded); err != nil {
			logger.Warn(ctx, "undecodable update payload",
				"update_id", r.ID,
				"entity_type", r.EntityType,
				"error", err,
			)
			u.Data = r.Data
		} else {
			u.Data = decoded
		}
		out = append(out, u)
	}
	return out, nil
}

// appendUpdate appends one feed record for a completed mutation and notifies
// the relay. The mutation is already authoritative at this point, so append
// and publish failures are logged and swallowed, never surfaced to the caller.
func (e *Engine) appendUpdate(ctx context.Context, updateType, entityType, entityID string, snapshot any, actor string) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error(ctx, "failed to serialize update snapshot",
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err,
		)
		return
	}

	rec := model.UpdateRecord{
		ID:         uuid.New().String(),
		UpdateType: updateType,
		EntityType: entityType,
		EntityID:   entityID,
		Data:       string(payload),
		CreatedBy:  actor,
		CreatedAt:  time.Now(),
	}
	if err := e.store.AppendUpdate(ctx, &rec); err != nil {
		logger.Error(ctx, "update feed append failed",
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err,
		)
		return
	}

	if e.notifier == nil {
		return
	}
	if err := e.notifier.Notify(ctx, rec); err != nil {
		logger.Warn(ctx, "update relay publish failed",
			"update_id", rec.ID,
			"error", err,
		)
	}
}
