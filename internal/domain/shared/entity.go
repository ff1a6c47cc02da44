package shared

import "time"

// Record is implemented by every persisted entity. Internal ids are
// database-assigned surrogates; a zero InternalID means the record has
// not been persisted yet.
type Record interface {
	GetInternalID() int64
	GetCreatedAt() time.Time
}

// BaseRecord provides the surrogate key and bookkeeping timestamps
// shared by all stored records. CreatedAt is set exactly once on
// insert; LastUpdated is refreshed on every successful write.
type BaseRecord struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	LastUpdated time.Time `json:"last_updated" gorm:"not null"`
}

// GetInternalID returns the surrogate primary key
func (r *BaseRecord) GetInternalID() int64 {
	return r.ID
}

// GetCreatedAt returns the insertion timestamp
func (r *BaseRecord) GetCreatedAt() time.Time {
	return r.CreatedAt
}

// Touch stamps both timestamps for a record about to be inserted.
// CreatedAt survives subsequent upserts unchanged.
func (r *BaseRecord) Touch(now time.Time) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.LastUpdated = now
}
