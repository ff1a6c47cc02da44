package socialmedia

import (
	"math"

	"github.com/trendlens/backend/internal/domain/social"
)

// topPostLimit is how many posts a performance summary surfaces
const topPostLimit = 5

// summarizePerformance aggregates a creator's recent posts into an
// engagement summary. Averages are rounded to whole interactions; the
// engagement rate stays zero for accounts with no followers.
func summarizePerformance(profile *social.CreatorProfile, posts []social.Post) *social.PerformanceSummary {
	var totalEngagement, totalViews int64
	for _, post := range posts {
		totalEngagement += post.Engagement()
		totalViews += post.ViewCount
	}

	var avgEngagement, avgViews float64
	if len(posts) > 0 {
		avgEngagement = math.Round(float64(totalEngagement) / float64(len(posts)))
		avgViews = math.Round(float64(totalViews) / float64(len(posts)))
	}

	var engagementRate float64
	if profile.FollowerCount > 0 {
		engagementRate = avgEngagement / float64(profile.FollowerCount) * 100
	}

	topPosts := posts
	if len(topPosts) > topPostLimit {
		topPosts = topPosts[:topPostLimit]
	}

	return &social.PerformanceSummary{
		Profile:         profile,
		AvgEngagement:   avgEngagement,
		AvgViews:        avgViews,
		EngagementRate:  engagementRate,
		TotalEngagement: totalEngagement,
		TopPosts:        topPosts,
	}
}
