// Package insight holds AI-authored analysis records and the opaque
// text-generation port they are produced through.
package insight

import (
	"context"
	"time"
)

// Type classifies what kind of analysis an insight contains
type Type string

const (
	TypeTrendAnalysis       Type = "trend_analysis"
	TypeNicheRecommendation Type = "niche_recommendation"
	TypeSeasonality         Type = "seasonality"
	TypeCompetitor          Type = "competitor"
)

// Insight is one stored piece of generated analysis. Confidence is a
// fixed per-type score, not a model output.
type Insight struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	InsightType Type      `json:"insight_type" gorm:"size:32;not null;index"`
	Title       string    `json:"title" gorm:"size:500;not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Confidence  int       `json:"confidence" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
}

// TableName specifies the table name for GORM
func (Insight) TableName() string {
	return "insights"
}

// Repository persists generated insights
type Repository interface {
	Create(ctx context.Context, ins *Insight) error
	Latest(ctx context.Context, limit int, insightType *Type) ([]Insight, error)
}

// Message is one chat turn sent to the text generator
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TextGenerator produces prose from a prompt. The implementation is an
// opaque collaborator; this service only composes prompts and stores
// the returned text.
type TextGenerator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}
