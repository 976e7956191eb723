package smoke

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/okian/scout/pkg/logger"
)

// Constants for random request shaping.
const (
	maxTagsPerRequest   = 3
	categoryChanceDenom = 3
	platformChanceDenom = 2
	articleCountDivisor = 4
)

// Pools the generator draws from. These match the catalog source so a
// default deployment returns non-empty results.
var (
	tagPool = []string{
		"ai", "golang", "automation", "design", "marketing",
		"photography", "observability", "cli", "sre", "remote-work",
	}
	categoryPool = []string{
		"technology", "ai", "design", "marketing", "business", "tools",
	}
	platformPool = []string{"twitter", "linkedin", "instagram", "facebook"}
	articleCaps  = []int{3, 5, 10, 20}
)

// randomIndex returns a random index below n using crypto/rand.
func randomIndex(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateRequests creates varied discovery requests.
func generateRequests(ctx context.Context, config *Config, stats *Stats) ([]Request, error) {
	logger.Get().Info(ctx, "generating discovery requests", logger.Int("numRequests", config.NumRequests))

	requests := make([]Request, config.NumRequests)
	for i := range requests {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		requests[i] = generateSingleRequest()
	}

	stats.RequestsGenerated = len(requests)
	logger.Get().Info(ctx, "generated requests successfully", logger.Int("count", len(requests)))

	return requests, nil
}

// generateSingleRequest creates one request with a varied shape.
func generateSingleRequest() Request {
	req := Request{
		MaxArticles: articleCaps[randomIndex(articleCountDivisor)],
	}

	numTags := 1 + randomIndex(maxTagsPerRequest)
	seen := map[string]bool{}
	for len(req.Tags) < numTags {
		tag := tagPool[randomIndex(len(tagPool))]
		if seen[tag] {
			continue
		}
		seen[tag] = true
		req.Tags = append(req.Tags, tag)
	}

	// Roughly a third of requests filter by category
	if randomIndex(categoryChanceDenom) == 0 {
		req.Categories = []string{categoryPool[randomIndex(len(categoryPool))]}
	}

	// Half of the requests ask for social repackaging
	if randomIndex(platformChanceDenom) == 0 {
		req.Platforms = []string{platformPool[randomIndex(len(platformPool))]}
	}

	return req
}
