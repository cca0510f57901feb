package services

import (
	"strconv"
	"unicode"

	"rihla/internal/models/request_models"
)

// Interpret extracts a TravelRequest from a raw user message. It never fails:
// every field falls back to a documented default when nothing matches.
func Interpret(message string) request_models.TravelRequest {
	normalized := normalizeText(message)

	req := request_models.TravelRequest{
		Days:       extractDays(normalized),
		Interests:  extractInterests(normalized),
		TripType:   extractTripType(normalized),
		BudgetTier: extractBudgetTier(normalized),
		GroupSize:  extractGroupSize(normalized),
		Language:   DetectLanguage(message),
		FollowUp:   ClassifyFollowUp(message),
	}

	if place, ok := LookupPlace(message); ok {
		req.Destination = place.City
		req.Country = place.Country
	}

	return req
}

// DetectLanguage returns Arabic when the text contains any Arabic-script rune.
func DetectLanguage(text string) request_models.Language {
	for _, r := range text {
		if unicode.Is(unicode.Arabic, r) {
			return request_models.LanguageArabic
		}
	}
	return request_models.LanguageEnglish
}

// ClassifyFollowUp tells whether a message asks to modify the plan or talks about its budget.
func ClassifyFollowUp(message string) request_models.FollowUp {
	normalized := normalizeText(message)
	for _, rule := range followUpRules {
		if rule.words.matches(normalized) {
			return rule.kind
		}
	}
	return request_models.FollowUpNone
}

// StatedDays reports the trip length the message names, if any.
func StatedDays(message string) (int, bool) {
	return findDays(normalizeText(message))
}

func extractDays(normalized string) int {
	if days, ok := findDays(normalized); ok {
		return days
	}
	return request_models.DefaultDays
}

func findDays(normalized string) (int, bool) {
	for _, rule := range dayRules {
		for _, m := range rule.pattern.FindAllStringSubmatch(normalized, -1) {
			if rule.veto != nil && rule.veto.MatchString(m[0]) {
				continue
			}
			if n, ok := positiveInt(m[1]); ok {
				return scaleDays(n, rule.multiplier), true
			}
		}
	}

	for _, rule := range spelledDayRules {
		if m := rule.pattern.FindStringSubmatch(normalized); m != nil {
			return scaleDays(numberWords[m[1]], rule.multiplier), true
		}
	}
	for _, rule := range wordDayRules {
		if rule.pattern.MatchString(normalized) {
			return rule.days, true
		}
	}

	return 0, false
}

func extractInterests(normalized string) []request_models.Interest {
	interests := []request_models.Interest{}
	for _, rule := range interestRules {
		if rule.words.matches(normalized) {
			interests = append(interests, rule.interest)
		}
	}
	return interests
}

func extractTripType(normalized string) request_models.TripType {
	for _, rule := range tripTypeRules {
		if rule.words.matches(normalized) {
			return rule.tripType
		}
	}
	return request_models.TripGeneral
}

func extractBudgetTier(normalized string) request_models.BudgetTier {
	for _, rule := range budgetRules {
		if rule.words.matches(normalized) {
			return rule.tier
		}
	}
	return request_models.BudgetMedium
}

func extractGroupSize(normalized string) int {
	for _, pattern := range groupSizePatterns {
		for _, m := range pattern.FindAllStringSubmatch(normalized, -1) {
			if n, ok := positiveInt(m[1]); ok {
				return n
			}
		}
	}
	if soloWords.matches(normalized) {
		return 1
	}
	return request_models.DefaultGroupSize
}

// scaleDays converts a count of units to days, capped at MaxDays.
func scaleDays(n, multiplier int) int {
	if n > request_models.MaxDays/multiplier {
		return request_models.MaxDays
	}
	return n * multiplier
}

func positiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
