package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	"rihla/internal/models/itinerary_models"
	"rihla/internal/models/response_models"
)

const (
	fence              = "```"
	minProseRunes      = 50
	maxBraceCandidates = 8
)

var (
	errEmptyBlock   = errors.New("empty block")
	errNoReplyField = errors.New("none of itinerary, city, country present")
)

var (
	fencedJSONBlock   = regexp.MustCompile("(?is)```[ \\t]*json[ \\t]*\\r?\\n?(.*?)```")
	fencedBlock       = regexp.MustCompile("(?s)```(.*?)```")
	excessNewlines    = regexp.MustCompile(`\n{3,}`)
	trailingSpaceLine = regexp.MustCompile(`[ \t]+\n`)
)

// replyEnvelope is the shape the generator is asked to emit. Itinerary stays
// raw so a present-but-empty array can be told apart from a missing field.
type replyEnvelope struct {
	City      itinerary_models.TextValue `json:"city"`
	Country   itinerary_models.TextValue `json:"country"`
	Itinerary json.RawMessage            `json:"itinerary"`
}

type decodedBlock struct {
	raw       string
	city      string
	country   string
	itinerary []itinerary_models.ItineraryDay
}

// extractionStage yields candidate blocks from the reply text, best first.
type extractionStage struct {
	name    string
	extract func(text string) []string
}

var extractionStages = []extractionStage{
	{name: "fenced-json", extract: fencedJSONCandidates},
	{name: "fenced", extract: fencedCandidates},
	{name: "brace", extract: braceCandidates},
}

// ParseReply splits a generator reply into prose and an optional itinerary.
// It always returns a usable value; nothing in the reply can make it fail.
func ParseReply(raw string) response_models.ParsedAIReply {
	block, stage := decodeFirstBlock(raw)

	reply := response_models.ParsedAIReply{
		Content: proseOf(raw, block),
		Source:  response_models.SourceProse,
	}

	if block != nil {
		log.Printf("reply parser: decoded structured block via %s stage", stage)
		reply.Source = response_models.SourceStructured
		reply.Itinerary = block.itinerary
		reply.City = block.city
		reply.Country = block.country
	}

	if reply.City == "" {
		if place, ok := LookupPlace(reply.Content); ok {
			reply.City = place.City
			reply.Country = place.Country
		}
	} else if reply.Country == "" {
		if place, ok := PlaceByCity(reply.City); ok {
			reply.Country = place.Country
		}
	}

	return reply
}

func decodeFirstBlock(raw string) (*decodedBlock, string) {
	for _, stage := range extractionStages {
		for _, candidate := range stage.extract(raw) {
			block, err := decodeBlock(candidate)
			if err != nil {
				log.Printf("reply parser: %s candidate rejected: %v", stage.name, err)
				continue
			}
			return block, stage.name
		}
	}
	return nil, ""
}

func decodeBlock(candidate string) (*decodedBlock, error) {
	body := stripFences(candidate)
	if body == "" {
		return nil, errEmptyBlock
	}

	var env replyEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return nil, err
	}

	block := &decodedBlock{
		raw:     candidate,
		city:    strings.TrimSpace(string(env.City)),
		country: strings.TrimSpace(string(env.Country)),
	}

	trimmed := bytes.TrimSpace(env.Itinerary)
	hasItinerary := len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
	if !hasItinerary && block.city == "" && block.country == "" {
		return nil, errNoReplyField
	}
	if hasItinerary {
		days := []itinerary_models.ItineraryDay{}
		if err := json.Unmarshal(trimmed, &days); err != nil {
			return nil, err
		}
		block.itinerary = itinerary_models.NormalizeDays(days)
	}

	return block, nil
}

func fencedJSONCandidates(text string) []string {
	var out []string
	for _, m := range fencedJSONBlock.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

func fencedCandidates(text string) []string {
	var out []string
	for _, m := range fencedBlock.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

// braceCandidates returns top-level {...} substrings, matched while skipping string literals.
func braceCandidates(text string) []string {
	ends, _ := matchBraces(text)
	var out []string
	for i := 0; i < len(text) && len(out) < maxBraceCandidates; i++ {
		end, ok := ends[i]
		if !ok {
			continue
		}
		out = append(out, text[i:end+1])
		i = end
	}
	return out
}

// matchBraces pairs braces in one pass. ends maps each matched '{' to its
// '}'; unclosed lists the opening braces that are never closed, in order.
// Quotes only delimit strings inside braces.
func matchBraces(s string) (ends map[int]int, unclosed []int) {
	ends = make(map[int]int)
	var open []int
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		char := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case char == '\\':
				escaped = true
			case char == '"':
				inString = false
			}
			continue
		}

		switch char {
		case '"':
			inString = len(open) > 0
		case '{':
			open = append(open, i)
		case '}':
			if len(open) > 0 {
				ends[open[len(open)-1]] = i
				open = open[:len(open)-1]
			}
		}
	}

	return ends, open
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	for _, marker := range []string{"```json", "```JSON", "```"} {
		s = strings.TrimPrefix(s, marker)
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), "json") {
		s = strings.TrimSpace(s[len("json"):])
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// proseOf derives the user-facing text. The full cleanup removes everything
// from the first fence on and every brace fragment; when that leaves too
// little, a lighter pass that keeps text between complete blocks is preferred.
func proseOf(raw string, block *decodedBlock) string {
	prose := raw
	if idx := strings.Index(prose, fence); idx != -1 {
		prose = prose[:idx]
	}
	prose = tidy(stripBraceFragments(prose))

	if utf8.RuneCountInString(prose) >= minProseRunes {
		return prose
	}

	decoded := ""
	if block != nil {
		decoded = block.raw
	}
	if light := lightClean(raw, decoded); utf8.RuneCountInString(light) > utf8.RuneCountInString(prose) {
		return light
	}
	return prose
}

// lightClean removes complete fenced blocks, the decoded block and brace
// fragments, keeping prose that follows a block. A fence left open is a
// truncated block, so the text is cut there.
func lightClean(raw, decoded string) string {
	text := fencedBlock.ReplaceAllString(raw, "")
	if decoded != "" {
		text = strings.Replace(text, decoded, "", 1)
	}
	if idx := strings.Index(text, fence); idx != -1 {
		text = text[:idx]
	}
	return tidy(stripBraceFragments(text))
}

// stripBraceFragments removes every balanced {...} span and everything from
// the first '{' that is never closed.
func stripBraceFragments(s string) string {
	ends, unclosed := matchBraces(s)
	if len(unclosed) > 0 {
		s = s[:unclosed[0]]
	}

	var b strings.Builder
	last := 0
	for i := 0; i < len(s); i++ {
		end, ok := ends[i]
		if !ok {
			continue
		}
		b.WriteString(s[last:i])
		i = end
		last = end + 1
	}
	b.WriteString(s[last:])
	return b.String()
}

func tidy(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = trailingSpaceLine.ReplaceAllString(s, "\n")
	s = excessNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
