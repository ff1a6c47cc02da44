package market

import "time"

// CollectionRun is an audit record for one leg of a data collection
// cycle. CompletedAt is only set once the run reaches a terminal
// status.
type CollectionRun struct {
	ID               int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Platform         Platform       `json:"platform" gorm:"size:32;not null;index"`
	CollectionType   CollectionType `json:"collection_type" gorm:"size:32;not null"`
	Status           RunStatus      `json:"status" gorm:"size:32;not null;index"`
	RecordsCollected int            `json:"records_collected" gorm:"not null;default:0"`
	ErrorMessage     string         `json:"error_message" gorm:"type:text"`
	StartedAt        time.Time      `json:"started_at" gorm:"not null"`
	CompletedAt      *time.Time     `json:"completed_at"`
}

// TableName specifies the table name for GORM
func (CollectionRun) TableName() string {
	return "collection_runs"
}

// NewCollectionRun starts an in-progress audit record
func NewCollectionRun(platform Platform, collectionType CollectionType, now time.Time) *CollectionRun {
	return &CollectionRun{
		Platform:       platform,
		CollectionType: collectionType,
		Status:         RunInProgress,
		StartedAt:      now,
	}
}

// Complete marks the run successful with the number of records gathered
func (r *CollectionRun) Complete(records int, now time.Time) {
	r.Status = RunCompleted
	r.RecordsCollected = records
	r.CompletedAt = &now
}

// Fail marks the run failed, keeping whatever records were gathered
// before the failure
func (r *CollectionRun) Fail(records int, errMsg string, now time.Time) {
	r.Status = RunFailed
	r.RecordsCollected = records
	r.ErrorMessage = errMsg
	r.CompletedAt = &now
}
