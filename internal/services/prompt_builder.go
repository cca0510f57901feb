package services

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
	"rihla/internal/models/request_models"
)

const (
	// MaxHistoryTurns is how many previous turns are replayed to the generator.
	MaxHistoryTurns = 5
	maxTurnRunes    = 300
	itemCategories  = "culture, food, transport, shopping"
)

//go:embed prompts/travel_prompts.yaml
var travelPromptsYAML []byte

type LanguageStrings struct {
	Name           string   `yaml:"name"`
	Apology        string   `yaml:"apology"`
	ItineraryReady string   `yaml:"itinerary_ready"`
	Suggestions    []string `yaml:"suggestions"`
}

// PromptTemplates holds the instruction template and the localized reply strings.
type PromptTemplates struct {
	Instructions string                     `yaml:"instructions"`
	Languages    map[string]LanguageStrings `yaml:"languages"`
}

// LoadPromptTemplates decodes the embedded prompt file.
func LoadPromptTemplates() (*PromptTemplates, error) {
	var t PromptTemplates
	if err := yaml.Unmarshal(travelPromptsYAML, &t); err != nil {
		return nil, fmt.Errorf("decode prompt templates: %w", err)
	}
	if strings.TrimSpace(t.Instructions) == "" {
		return nil, fmt.Errorf("prompt templates: empty instructions")
	}
	if _, ok := t.Languages[string(request_models.LanguageEnglish)]; !ok {
		return nil, fmt.Errorf("prompt templates: missing %q strings", request_models.LanguageEnglish)
	}
	return &t, nil
}

// For returns the strings of lang, falling back to English.
func (t *PromptTemplates) For(lang request_models.Language) LanguageStrings {
	if s, ok := t.Languages[string(lang)]; ok {
		return s
	}
	return t.Languages[string(request_models.LanguageEnglish)]
}

// BuildPrompt renders template with the interpreted request, then appends the
// recent history and the current message with the extracted constraints.
func BuildPrompt(req request_models.TravelRequest, rawMessage string, history []request_models.ConversationTurn, template string) string {
	var prompt strings.Builder

	prompt.WriteString(strings.NewReplacer(
		"{days}", strconv.Itoa(req.Days),
		"{categories}", itemCategories,
		"{language}", languageName(req.Language),
	).Replace(template))
	prompt.WriteString("\n")

	recent := RecentTurns(history, MaxHistoryTurns)
	if len(recent) > 0 {
		prompt.WriteString("\nConversation so far:\n")
		for _, turn := range recent {
			prompt.WriteString(fmt.Sprintf("%s: %s\n", roleLabel(turn.Role), condense(turn.Content, maxTurnRunes)))
		}
	}

	prompt.WriteString(fmt.Sprintf("\nCurrent request: %s\n", strings.TrimSpace(rawMessage)))

	prompt.WriteString("\nConstraints:\n")
	if req.HasDestination() {
		prompt.WriteString(fmt.Sprintf("- Destination: %s, %s\n", req.Destination, req.Country))
	} else {
		prompt.WriteString("- Destination: not specified, propose one that fits the request and name it in \"city\" and \"country\"\n")
	}
	prompt.WriteString(fmt.Sprintf("- Days: exactly %d\n", req.Days))
	if len(req.Interests) > 0 {
		prompt.WriteString(fmt.Sprintf("- Interests: %s\n", strings.Join(req.InterestNames(), ", ")))
	} else {
		prompt.WriteString("- Interests: not stated, offer a balanced mix\n")
	}
	prompt.WriteString(fmt.Sprintf("- Trip type: %s\n", req.TripType))
	prompt.WriteString(fmt.Sprintf("- Budget: %s\n", req.BudgetTier))
	prompt.WriteString(fmt.Sprintf("- Group size: %d\n", req.GroupSize))

	if len(recent) > 0 {
		switch req.FollowUp {
		case request_models.FollowUpModify:
			prompt.WriteString("\nThe user wants to change the existing itinerary. Keep what they did not ask to change.\n")
		case request_models.FollowUpBudget:
			prompt.WriteString("\nThe user is asking about costs. Give realistic per-person costs and mention the total.\n")
		}
	}

	return prompt.String()
}

// RecentTurns returns at most n of the latest turns, oldest first.
func RecentTurns(history []request_models.ConversationTurn, n int) []request_models.ConversationTurn {
	if n <= 0 || len(history) == 0 {
		return nil
	}
	if len(history) > n {
		return history[len(history)-n:]
	}
	return history
}

func languageName(lang request_models.Language) string {
	if lang == request_models.LanguageArabic {
		return "Arabic"
	}
	return "English"
}

func roleLabel(role string) string {
	if role == request_models.RoleAssistant {
		return "Assistant"
	}
	return "User"
}

func condense(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
