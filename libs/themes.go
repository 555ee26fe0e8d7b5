package libs

import (
	"strings"

	"github.com/aurahealth/aura-backend/model"
)

// MaxThemes caps how many themes a single extraction returns.
const MaxThemes = 8

// Fixed therapeutic taxonomy, scanned in order so extraction is
// deterministic.
var themeTaxonomy = []struct {
	category string
	keywords []string
}{
	{"emotional", []string{"anxiety", "depression", "anger", "fear", "sadness", "happiness", "joy", "frustration", "overwhelm", "calm"}},
	{"relational", []string{"relationships", "family", "friends", "loneliness", "isolation", "connection", "conflict", "communication"}},
	{"life", []string{"work", "career", "purpose", "goals", "transition", "change", "identity", "self-esteem", "confidence"}},
	{"clinical", []string{"trauma", "grief", "loss", "stress", "sleep", "health", "coping", "triggers", "healing"}},
	{"practical", []string{"money", "finance", "daily routine", "habits", "self-care", "boundaries", "decision making"}},
}

// ExtractThemes scans message contents against the taxonomy and merges any
// themes already tagged in message metadata. A keyword matches when the
// lowercased content contains it (which also covers the -s/-ing/-ed forms).
// Results are lowercase, deduplicated, in first-seen order, at most
// MaxThemes.
func ExtractThemes(messages []model.ChatMessage) []string {
	seen := make(map[string]bool)
	var themes []string

	add := func(theme string) {
		theme = strings.ToLower(strings.TrimSpace(theme))
		if theme == "" || seen[theme] {
			return
		}
		seen[theme] = true
		themes = append(themes, theme)
	}

	for _, msg := range messages {
		if msg.Metadata != nil {
			for _, t := range msg.Metadata.Themes {
				add(t)
			}
		}
		if msg.Content == "" {
			continue
		}
		content := strings.ToLower(msg.Content)
		for _, cat := range themeTaxonomy {
			for _, kw := range cat.keywords {
				if strings.Contains(content, kw) {
					add(kw)
				}
			}
		}
	}

	if len(themes) > MaxThemes {
		themes = themes[:MaxThemes]
	}
	return themes
}

// InTaxonomy reports whether a theme is one of the fixed taxonomy keywords.
func InTaxonomy(theme string) bool {
	for _, cat := range themeTaxonomy {
		for _, kw := range cat.keywords {
			if kw == theme {
				return true
			}
		}
	}
	return false
}
