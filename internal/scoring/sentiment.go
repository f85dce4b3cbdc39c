package scoring

import (
	"math"

	"github.com/quantkit/alphabench/internal/core"
	"github.com/quantkit/alphabench/internal/sentiment"
)

// scoreSentiment blends optional news and social sentiment into the
// base score. Each input pulls the score toward its own reading with
// a weight that grows with sample size; absent inputs leave the base
// untouched.
func scoreSentiment(news *sentiment.NewsSnapshot, social *sentiment.SocialSnapshot) core.Component {
	score := 50.0
	details := make(map[string]float64)

	if news != nil && news.TotalArticles > 0 {
		// Map [-1,1] onto [0,100]
		mapped := (news.WeightedSentiment + 1) * 50
		weight := 0.3 + 0.3*math.Min(float64(news.TotalArticles), 30)/30
		score = score*(1-weight) + mapped*weight
		details["news_sentiment"] = news.WeightedSentiment
		details["news_articles"] = float64(news.TotalArticles)
		details["news_weight"] = weight
	}

	if social != nil && social.TotalMentions > 0 {
		normalized := clamp(social.AverageScore, 0, 100)
		weight := 0.2 + 0.2*math.Min(float64(social.TotalMentions), 50)/50
		score = score*(1-weight) + normalized*weight
		details["social_score"] = social.AverageScore
		details["social_mentions"] = float64(social.TotalMentions)
		details["social_weight"] = weight
	}

	score = clamp(score, 0, 100)
	return core.Component{Score: score, Status: statusLabel(score), Details: details}
}
