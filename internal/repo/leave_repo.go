// Repository functions for the Leave model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// usable within transactions or connection-scoped operations. They follow
// the thin-repository approach: no business logic, only persistence and
// query composition. Raw gorm errors are propagated to the service layer,
// which decides what is safe to show in a chat room.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-holiday-bot/internal/domain"
)

// InsertLeave appends one leave row and returns it with the store-assigned
// ID and CreatedAt populated. There is no deduplication and no overlap check
// against existing rows: repeated identical adds all succeed independently.
func InsertLeave(ctx context.Context, db *gorm.DB, userID int64, userName string, start, end time.Time, reason string) (*domain.Leave, error) {
	l := &domain.Leave{
		UserID:    userID,
		UserName:  userName,
		StartDate: start,
		EndDate:   end,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

// ListLeavesOverlapping returns every leave whose [start_date, end_date]
// interval intersects [windowStart, windowEnd], both ends inclusive, using
// the standard not-disjoint test. Results are ordered by start date, ties
// broken by user name. No pagination: a week's worth of leave fits in a
// chat message.
func ListLeavesOverlapping(ctx context.Context, db *gorm.DB, windowStart, windowEnd time.Time) ([]domain.Leave, error) {
	var out []domain.Leave
	err := db.WithContext(ctx).
		Where("NOT (end_date < ? OR start_date > ?)", windowStart, windowEnd).
		Order("start_date ASC, user_name ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
