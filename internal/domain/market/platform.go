// Package market holds the monitored-commerce domain: sellers and
// products scraped from social platforms, the append-only metric
// ledger, and the collection audit trail.
package market

// Platform identifies a monitored social-commerce platform
type Platform string

const (
	PlatformTikTokShop Platform = "tiktok_shop"
	PlatformInstagram  Platform = "instagram"
)

// AllPlatforms is the fixed sync order: TikTok Shop first, then Instagram
func AllPlatforms() []Platform {
	return []Platform{PlatformTikTokShop, PlatformInstagram}
}

// IsValid checks whether the platform is a known value
func (p Platform) IsValid() bool {
	return p == PlatformTikTokShop || p == PlatformInstagram
}

func (p Platform) String() string {
	return string(p)
}

// CollectionType identifies what kind of records a collection run gathered
type CollectionType string

const (
	CollectionProducts CollectionType = "products"
	CollectionSellers  CollectionType = "sellers"
	CollectionMetrics  CollectionType = "metrics"
)

// RunStatus is the lifecycle state of a collection run
type RunStatus string

const (
	RunPending    RunStatus = "pending"
	RunInProgress RunStatus = "in_progress"
	RunCompleted  RunStatus = "completed"
	RunFailed     RunStatus = "failed"
)

// IsTerminal reports whether the run has finished, successfully or not
func (s RunStatus) IsTerminal() bool {
	return s == RunCompleted || s == RunFailed
}
