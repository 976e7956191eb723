package smoke

import "fmt"

// verifyResult checks the structural invariants of a discovery response:
// counts are consistent, truncation honors the requested cap, and articles
// come back sorted by descending score.
func verifyResult(req Request, result Result) error {
	if result.FinalCount != len(result.Articles) {
		return fmt.Errorf("final_count %d does not match %d articles", result.FinalCount, len(result.Articles))
	}
	if result.UniqueFound > result.TotalFound {
		return fmt.Errorf("unique_found %d exceeds total_found %d", result.UniqueFound, result.TotalFound)
	}
	if result.FinalCount > result.UniqueFound {
		return fmt.Errorf("final_count %d exceeds unique_found %d", result.FinalCount, result.UniqueFound)
	}
	if req.MaxArticles > 0 && result.FinalCount > req.MaxArticles {
		return fmt.Errorf("final_count %d exceeds requested cap %d", result.FinalCount, req.MaxArticles)
	}
	for i := 1; i < len(result.Articles); i++ {
		if result.Articles[i-1].Score < result.Articles[i].Score {
			return fmt.Errorf("articles not sorted by score at index %d", i)
		}
	}
	return nil
}
