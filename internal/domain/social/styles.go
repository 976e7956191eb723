package social

import (
	"fmt"
	"strings"

	"github.com/okian/scout/internal/domain/model"
)

// Body generation constants.
const (
	shortLeadLength   = 150
	hotTrendThreshold = 70
	maxTakeaways      = 3
)

// generateContent dispatches to the style-specific body generator. All
// generators are deterministic string templates over item fields.
func (r *Repackager) generateContent(item *model.CandidateItem, style Style) string {
	switch style {
	case StyleConciseEngaging:
		return conciseBody(item)
	case StyleProfessional:
		return professionalBody(item)
	case StyleVisualEngaging:
		return visualBody(item)
	case StyleConversational:
		return conversationalBody(item)
	default:
		return genericBody(item)
	}
}

// truncateRunes cuts s to at most n runes without splitting a character.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// conciseBody renders the short, punchy style used for twitter.
func conciseBody(item *model.CandidateItem) string {
	var base string
	switch {
	case item.Summary != "":
		base = truncateRunes(item.Summary, shortLeadLength)
	case item.Description != "":
		base = truncateRunes(item.Description, shortLeadLength)
	default:
		base = item.Title
	}

	if item.TrendingPotential != nil && *item.TrendingPotential > hotTrendThreshold {
		base = "🚀 " + base
	}
	return base + "\n\nRead more:"
}

// professionalBody renders the linkedin style: hook, body, takeaways,
// discussion prompt.
func professionalBody(item *model.CandidateItem) string {
	var b strings.Builder

	if len(item.KeyPoints) > 0 {
		b.WriteString("💡 Key insight: " + item.KeyPoints[0])
	} else {
		b.WriteString("💡 " + item.Title)
	}

	if item.Summary != "" {
		b.WriteString("\n" + item.Summary)
	} else if item.Description != "" {
		b.WriteString("\n" + item.Description)
	}

	if len(item.KeyPoints) > 1 {
		b.WriteString("\n\nKey takeaways:")
		for i, point := range item.KeyPoints {
			if i >= maxTakeaways {
				break
			}
			b.WriteString(fmt.Sprintf("\n%d. %s", i+1, point))
		}
	}

	b.WriteString("\n\nWhat are your thoughts on this development?")
	b.WriteString("\nRead the full article:")
	return b.String()
}

// visualBody renders the instagram style.
func visualBody(item *model.CandidateItem) string {
	var b strings.Builder
	b.WriteString("📸 " + item.Title)

	if item.Summary != "" {
		b.WriteString("\n\n" + item.Summary)
	}
	if len(item.KeyPoints) > 0 {
		b.WriteString("\n\n✨ What makes this interesting:")
		b.WriteString("\n• " + item.KeyPoints[0])
	}

	b.WriteString("\n\n👆 Swipe up to read more!")
	b.WriteString("\nWhat do you think? Comment below! 👇")
	return b.String()
}

// conversationalBody renders the facebook style.
func conversationalBody(item *model.CandidateItem) string {
	var b strings.Builder
	b.WriteString("Interesting read: " + item.Title)

	if item.Summary != "" {
		b.WriteString("\n\n" + item.Summary)
	}
	if len(item.KeyPoints) > 0 {
		b.WriteString("\n\nOne key point that caught my attention: " + item.KeyPoints[0])
	}

	b.WriteString("\n\nWhat's your take on this? Would love to hear your thoughts in the comments!")
	return b.String()
}

// genericBody is the fallback for unrecognized styles.
func genericBody(item *model.CandidateItem) string {
	content := item.Title
	if item.Summary != "" {
		content += "\n\n" + item.Summary
	} else if item.Description != "" {
		content += "\n\n" + item.Description
	}
	return content + "\n\nRead more:"
}
