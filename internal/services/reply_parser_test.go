package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rihla/internal/models/itinerary_models"
	"rihla/internal/models/response_models"
)

func TestParseReply_FencedBlock(t *testing.T) {
	t.Parallel()

	raw := "Here is your plan.\n```json\n{\"itinerary\":[],\"city\":\"Rome\"}\n```"
	reply := ParseReply(raw)

	assert.Equal(t, "Here is your plan.", reply.Content)
	assert.Equal(t, "Rome", reply.City)
	assert.Equal(t, "Italy", reply.Country)
	require.NotNil(t, reply.Itinerary)
	assert.Empty(t, reply.Itinerary)
	assert.Equal(t, response_models.SourceStructured, reply.Source)
}

func TestParseReply_ProseOnly(t *testing.T) {
	t.Parallel()

	reply := ParseReply("Tokyo is wonderful in spring, with cherry blossoms along the rivers.")

	assert.Nil(t, reply.Itinerary)
	assert.False(t, reply.HasItinerary())
	assert.Equal(t, "Tokyo", reply.City)
	assert.Equal(t, "Japan", reply.Country)
	assert.Equal(t, response_models.SourceProse, reply.Source)
}

func TestParseReply_CostCoercion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cost string
		want itinerary_models.Cost
	}{
		{"numeric string", `"15"`, 15},
		{"number", `42.5`, 42.5},
		{"padded string", `" 7 "`, 7},
		{"garbage", `"abc"`, 0},
		{"null", `null`, 0},
		{"negative", `-3`, 0},
		{"currency", `"$20"`, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw := "Plan below.\n```json\n{\"city\":\"Paris\",\"itinerary\":[{\"day\":1,\"items\":[{\"activity\":\"Louvre\",\"cost\":" + tt.cost + "}]}]}\n```"
			reply := ParseReply(raw)

			require.Len(t, reply.Itinerary, 1)
			require.Len(t, reply.Itinerary[0].Items, 1)
			assert.Equal(t, tt.want, reply.Itinerary[0].Items[0].Cost)
		})
	}
}

func TestParseReply_NeverPanics(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   ",
		"{",
		"}}}{{{",
		"{\"itinerary\": [",
		"```",
		"``````",
		"```json\n```",
		"```json\n{\"itinerary\": [{\"day\": 1,",
		"text ```json {``` more ```json }``` end",
		"```\n```json\n{\"city\":\"Dubai\"}\n```\n```",
		"{\"itinerary\": \"not a list\"}",
		"{\"itinerary\": [{\"day\": \"x\", \"items\": {\"a\": 1}}]}",
		"\"{\\\"unterminated",
		strings.Repeat("{", 500) + strings.Repeat("}", 499),
	}

	for _, in := range inputs {
		in := in
		assert.NotPanics(t, func() {
			reply := ParseReply(in)
			assert.NotEmpty(t, reply.Source)
		}, "input %q", in)
	}
}

func TestParseReply_Stages(t *testing.T) {
	t.Parallel()

	t.Run("untagged fence", func(t *testing.T) {
		t.Parallel()
		raw := "Enjoy Cairo!\n```\n{\"city\":\"Cairo\",\"itinerary\":[{\"day\":1,\"theme\":\"Pyramids\",\"items\":[]}]}\n```"
		reply := ParseReply(raw)

		require.Len(t, reply.Itinerary, 1)
		assert.Equal(t, "Pyramids", string(reply.Itinerary[0].Theme))
		assert.Equal(t, "Cairo", reply.City)
		assert.Equal(t, "Egypt", reply.Country)
		assert.Equal(t, "Enjoy Cairo!", reply.Content)
	})

	t.Run("bare json after prose", func(t *testing.T) {
		t.Parallel()
		raw := "A short plan for you. {\"city\":\"Doha\",\"country\":\"Qatar\",\"itinerary\":[{\"day\":1,\"items\":[{\"activity\":\"Souq {Waqif}\",\"cost\":10}]}]}"
		reply := ParseReply(raw)

		require.Len(t, reply.Itinerary, 1)
		assert.Equal(t, "Souq {Waqif}", string(reply.Itinerary[0].Items[0].Activity))
		assert.Equal(t, "Doha", reply.City)
		assert.Equal(t, "A short plan for you.", reply.Content)
		assert.NotContains(t, reply.Content, "{")
	})

	t.Run("invalid tagged block falls through to a later one", func(t *testing.T) {
		t.Parallel()
		raw := "Two tries.\n```json\n{broken\n```\n```json\n{\"city\":\"Madrid\",\"itinerary\":[]}\n```"
		reply := ParseReply(raw)

		assert.Equal(t, "Madrid", reply.City)
		assert.Equal(t, "Spain", reply.Country)
		assert.Equal(t, response_models.SourceStructured, reply.Source)
	})

	t.Run("missing day numbers are filled", func(t *testing.T) {
		t.Parallel()
		raw := "```json\n{\"itinerary\":[{\"items\":null},{\"day\":\"2\"}]}\n```"
		reply := ParseReply(raw)

		require.Len(t, reply.Itinerary, 2)
		assert.Equal(t, itinerary_models.DayNumber(1), reply.Itinerary[0].Day)
		assert.Equal(t, itinerary_models.DayNumber(2), reply.Itinerary[1].Day)
		assert.NotNil(t, reply.Itinerary[0].Items)
		assert.NotNil(t, reply.Itinerary[1].Items)
	})

	t.Run("block without reply fields does not hide a later plan", func(t *testing.T) {
		t.Parallel()
		raw := "Format sample:\n```json\n{\"note\":\"x\"}\n```\nYour plan:\n```json\n{\"city\":\"Rome\",\"itinerary\":[{\"day\":1,\"items\":[{\"activity\":\"Colosseum\",\"cost\":18}]}]}\n```"
		reply := ParseReply(raw)

		require.Len(t, reply.Itinerary, 1)
		assert.Equal(t, "Rome", reply.City)
		assert.Equal(t, "Italy", reply.Country)
		assert.Equal(t, response_models.SourceStructured, reply.Source)
	})

	t.Run("object without reply fields is not structured", func(t *testing.T) {
		t.Parallel()
		reply := ParseReply("Nothing to plan yet. {\"note\":\"x\"}")

		assert.Nil(t, reply.Itinerary)
		assert.Equal(t, response_models.SourceProse, reply.Source)
		assert.Equal(t, "Nothing to plan yet.", reply.Content)
	})

	t.Run("missing itinerary field is absent", func(t *testing.T) {
		t.Parallel()
		reply := ParseReply("Let me know more.\n```json\n{\"city\":\"Beirut\"}\n```")

		assert.Nil(t, reply.Itinerary)
		assert.Equal(t, "Beirut", reply.City)
		assert.Equal(t, response_models.SourceStructured, reply.Source)
	})
}

func TestParseReply_Prose(t *testing.T) {
	t.Parallel()

	t.Run("long prose keeps the full cleanup", func(t *testing.T) {
		t.Parallel()
		intro := "Here is a relaxed three day plan for London with museums and markets."
		reply := ParseReply(intro + "\n\n\n\n```json\n{\"city\":\"London\",\"itinerary\":[]}\n```\nHave fun!")

		assert.Equal(t, intro, reply.Content)
	})

	t.Run("short prose prefers the light cleanup", func(t *testing.T) {
		t.Parallel()
		raw := "Short intro.\n```json\n{\"city\":\"Rome\",\"itinerary\":[]}\n```\nAfterwards, remember to book the Vatican tickets well in advance."
		reply := ParseReply(raw)

		assert.Equal(t, "Short intro.\n\nAfterwards, remember to book the Vatican tickets well in advance.", reply.Content)
		assert.NotContains(t, reply.Content, "```")
	})

	t.Run("truncated block never reaches the prose", func(t *testing.T) {
		t.Parallel()
		raw := "Here is your plan.\n```json\n{\"city\":\"Paris\",\"itinerary\":[{\"day\":1,\"items\":[{\"cost\":25"
		reply := ParseReply(raw)

		assert.Equal(t, "Here is your plan.", reply.Content)
		assert.Nil(t, reply.Itinerary)
		assert.Equal(t, response_models.SourceProse, reply.Source)
	})

	t.Run("truncated bare object is cut", func(t *testing.T) {
		t.Parallel()
		reply := ParseReply("Enjoy!\n{\"city\":\"Paris\",\"itinerary\":[{\"day\":1")

		assert.Equal(t, "Enjoy!", reply.Content)
	})

	t.Run("deep nesting", func(t *testing.T) {
		t.Parallel()
		open := ParseReply("Intro. " + strings.Repeat("{", 40000))
		assert.Equal(t, "Intro.", open.Content)
		assert.Nil(t, open.Itinerary)

		nested := ParseReply("Intro. " + strings.Repeat(`{"a":`, 20000) + "1" + strings.Repeat("}", 20000) + " Bye.")
		assert.Equal(t, "Intro.  Bye.", nested.Content)
		assert.Equal(t, response_models.SourceProse, nested.Source)
	})

	t.Run("unclosed fence leaves no markers", func(t *testing.T) {
		t.Parallel()
		raw := "Intro.\n```json\n{\"city\":\"Paris\",\"itinerary\":[]}"
		reply := ParseReply(raw)

		assert.Equal(t, "Paris", reply.City)
		assert.Equal(t, "Intro.", reply.Content)
	})
}
