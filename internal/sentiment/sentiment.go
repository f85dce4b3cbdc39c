// Package sentiment defines the sentiment inputs consumed by the
// scoring engine. Snapshots are computed values injected by callers;
// the scorer never fetches sentiment itself.
package sentiment

// NewsSnapshot is an aggregated news sentiment reading for one symbol
type NewsSnapshot struct {
	// WeightedSentiment is the article-weighted sentiment in [-1,1].
	WeightedSentiment float64 `json:"weighted_sentiment"`
	// TotalArticles is the number of articles behind the reading.
	TotalArticles int `json:"total_articles"`
	// Confidence is the provider's confidence in [0,1].
	Confidence float64 `json:"confidence"`
}

// SocialSnapshot is an aggregated social sentiment reading
type SocialSnapshot struct {
	// AverageScore is the normalized mention score in [0,100].
	AverageScore float64 `json:"average_score"`
	// TotalMentions is the number of mentions behind the reading.
	TotalMentions int `json:"total_mentions"`
}

// NewsProvider aggregates news sentiment over a trailing window of days
type NewsProvider interface {
	AggregateNewsSentiment(symbol string, days int) (*NewsSnapshot, error)
}

// SocialProvider aggregates social mention sentiment
type SocialProvider interface {
	AggregateSocialSentiment(symbol string) (*SocialSnapshot, error)
}
