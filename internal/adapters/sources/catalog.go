package sources

import (
	"time"

	"github.com/okian/scout/internal/domain/model"
)

// Catalog returns the built-in editorial source. It backs the default
// deployment so the pipeline has material before external feeds are
// configured, and doubles as a deterministic source for demos.
func Catalog(now time.Time) Adapter {
	at := func(hoursAgo int) *time.Time {
		t := now.Add(-time.Duration(hoursAgo) * time.Hour)
		return &t
	}
	score := func(v float64) *float64 { return &v }

	items := []model.CandidateItem{
		{
			ID:               "catalog-ai-agents",
			Title:            "AI agents move from demos to production workflows",
			Description:      "Teams report measurable gains after wiring agent pipelines into review and triage queues.",
			URL:              "https://news.example.com/ai-agents-production",
			Source:           "catalog",
			PublishedAt:      at(3),
			Category:         model.CategoryAI,
			Tags:             []string{"ai", "automation", "agents"},
			CredibilityScore: score(85),
			EngagementScore:  score(70),
		},
		{
			ID:               "catalog-go-profiling",
			Title:            "Profiling Go services with continuous pprof in production",
			Description:      "A walkthrough of low-overhead CPU and allocation profiling on live traffic.",
			URL:              "https://news.example.com/go-continuous-profiling",
			Source:           "catalog",
			PublishedAt:      at(8),
			Category:         model.CategoryTechnology,
			Tags:             []string{"golang", "profiling", "observability"},
			CredibilityScore: score(80),
			EngagementScore:  score(55),
		},
		{
			ID:          "catalog-design-tokens",
			Title:       "Design tokens finally get a cross-tool interchange format",
			Description: "The draft spec promises portable color, spacing, and typography definitions.",
			URL:         "https://news.example.com/design-tokens-spec",
			Source:      "catalog",
			PublishedAt: at(20),
			Category:    model.CategoryDesign,
			Tags:        []string{"design", "tooling"},
		},
		{
			ID:               "catalog-marketing-llm",
			Title:            "Marketing teams lean on language models for campaign copy",
			Description:      "Early adopters describe review workflows that keep brand voice intact.",
			URL:              "https://news.example.com/marketing-llm-copy",
			Source:           "catalog",
			PublishedAt:      at(30),
			Category:         model.CategoryMarketing,
			Tags:             []string{"marketing", "ai", "content"},
			CredibilityScore: score(65),
			EngagementScore:  score(75),
		},
		{
			ID:          "catalog-photo-raw",
			Title:       "Computational RAW processing closes the gap with desktop editors",
			Description: "On-device pipelines now handle noise reduction and tone mapping in real time.",
			URL:         "https://news.example.com/computational-raw",
			Source:      "catalog",
			PublishedAt: at(50),
			Category:    model.CategoryPhotography,
			Tags:        []string{"photography", "mobile"},
		},
		{
			ID:               "catalog-business-remote",
			Title:            "Hybrid work settles into a four-day office rhythm",
			Description:      "Surveyed companies converge on anchor days over mandated full weeks.",
			URL:              "https://news.example.com/hybrid-anchor-days",
			Source:           "catalog",
			PublishedAt:      at(70),
			Category:         model.CategoryBusiness,
			Tags:             []string{"business", "remote-work"},
			CredibilityScore: score(70),
		},
		{
			ID:          "catalog-tools-terminal",
			Title:       "A new wave of terminal tools rethinks the developer inner loop",
			Description: "Multiplexers, fuzzy finders, and structured pipelines get modern successors.",
			URL:         "https://news.example.com/terminal-renaissance",
			Source:      "catalog",
			PublishedAt: at(100),
			Category:    model.CategoryTools,
			Tags:        []string{"tools", "productivity", "cli"},
		},
		{
			ID:          "catalog-resources-sre",
			Title:       "Free course catalog for site reliability fundamentals",
			Description: "A curated syllabus covering SLOs, incident response, and capacity planning.",
			URL:         "https://news.example.com/sre-course-catalog",
			Source:      "catalog",
			PublishedAt: at(160),
			Category:    model.CategoryResources,
			Tags:        []string{"resources", "sre", "learning"},
		},
	}

	return NewStatic("catalog", items)
}
