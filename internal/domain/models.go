// Package domain defines the persistence model for leave records. The type
// here is mapped with GORM and forms the entire data layer of the bot: leaves
// are created once through the "add leave" command and never updated or
// deleted afterwards.
package domain

import "time"

// Leave represents one person's leave period.
//
// Fields:
//   - ID: autoincrement primary key assigned by the store on insert.
//   - UserID: numeric sender id as supplied by the chat platform; not
//     validated against any user directory.
//   - UserName: display name snapshot taken at creation time. Historical
//     records keep the old name if the person is later renamed upstream.
//   - StartDate / EndDate: inclusive calendar dates (UTC midnight, no
//     time-of-day component). EndDate >= StartDate is enforced before
//     persistence, not by the schema.
//   - Reason: optional free text; empty means "no reason given".
//   - CreatedAt: insertion timestamp managed by GORM.
//
// The composite index on (start_date, end_date) backs the interval-overlap
// query used by "show leave".
type Leave struct {
	ID        uint64    `json:"id"         gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id"    gorm:"not null"`
	UserName  string    `json:"user_name"  gorm:"type:text;not null"`
	StartDate time.Time `json:"start_date" gorm:"type:date;not null;index:idx_leaves_dates,priority:1"`
	EndDate   time.Time `json:"end_date"   gorm:"type:date;not null;index:idx_leaves_dates,priority:2"`
	Reason    string    `json:"reason"     gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Leave.
func (Leave) TableName() string { return "leaves" }

// Days returns the inclusive length of the leave period in days.
func (l Leave) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}
