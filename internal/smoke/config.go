package smoke

import "time"

// Config holds configuration for the discovery smoke test
type Config struct {
	BaseURL     string        // Base URL of the service
	NumRequests int           // Number of sync discovery requests to issue
	NumSessions int           // Number of async sessions to run
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	LogFile     string        // Log file for test output
	Verbose     bool          // Enable verbose logging
}

// Request mirrors the JSON body accepted by the discovery endpoints
type Request struct {
	Tags        []string `json:"tags"`
	Categories  []string `json:"categories,omitempty"`
	MaxArticles int      `json:"max_articles,omitempty"`
	Platforms   []string `json:"platforms,omitempty"`
}

// Article is the scored item shape returned by the service
type Article struct {
	Score float64 `json:"score"`
}

// Result mirrors the discovery response body
type Result struct {
	Articles    []Article `json:"articles"`
	TotalFound  int       `json:"total_found"`
	UniqueFound int       `json:"unique_found"`
	FinalCount  int       `json:"final_count"`
}

// Session mirrors the async session response body
type Session struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Error  string  `json:"error,omitempty"`
	Result *Result `json:"result,omitempty"`
}

// Stats holds test statistics
type Stats struct {
	RequestsGenerated  int
	RequestsSubmitted  int
	RequestsSuccessful int
	RequestsRejected   int
	RequestsFailed     int
	VerifyFailures     int
	SessionsSubmitted  int
	SessionsCompleted  int
	SessionsFailed     int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
