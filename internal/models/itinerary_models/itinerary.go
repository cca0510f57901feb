package itinerary_models

import (
	"bytes"
	"encoding/json"
	"log"
	"math"
	"strconv"
	"strings"
)

const (
	CategoryCulture   = "culture"
	CategoryFood      = "food"
	CategoryTransport = "transport"
	CategoryShopping  = "shopping"
)

type ItineraryItem struct {
	Time     TextValue `json:"time"`
	Activity TextValue `json:"activity"`
	Location TextValue `json:"location"`
	Cost     Cost      `json:"cost"`
	Type     TextValue `json:"type"`
}

type ItineraryDay struct {
	Day   DayNumber       `json:"day"`
	Label TextValue       `json:"date"`
	Theme TextValue       `json:"theme"`
	Items []ItineraryItem `json:"items"`
}

// KnownCategory reports whether the item type is one the client has a style for.
// Anything else is still kept and rendered with a fallback style.
func (i ItineraryItem) KnownCategory() bool {
	switch string(i.Type) {
	case CategoryCulture, CategoryFood, CategoryTransport, CategoryShopping:
		return true
	}
	return false
}

// TotalCost sums every item cost of the itinerary.
func TotalCost(days []ItineraryDay) float64 {
	var total float64
	for _, d := range days {
		for _, item := range d.Items {
			total += float64(item.Cost)
		}
	}
	return total
}

// NormalizeDays fills missing day numbers from the position and replaces nil item lists.
func NormalizeDays(days []ItineraryDay) []ItineraryDay {
	for i := range days {
		if days[i].Day < 1 {
			days[i].Day = DayNumber(i + 1)
		}
		if days[i].Items == nil {
			days[i].Items = []ItineraryItem{}
		}
	}
	return days
}

// Cost is a non-negative amount in currency-agnostic units. Decoding never
// fails: values that are not finite non-negative numbers become 0.
type Cost float64

func (c *Cost) UnmarshalJSON(data []byte) error {
	v, ok := CoerceCost(data)
	if !ok {
		log.Printf("itinerary: cost %s is not a valid amount, using 0", truncateRaw(data))
	}
	*c = Cost(v)
	return nil
}

// CoerceCost converts a raw JSON value to a cost. It accepts numbers and
// numeric strings; ok is false when the value had to be defaulted to 0.
func CoerceCost(data []byte) (float64, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return 0, false
	}

	var v float64
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		v = parsed
	} else if err := json.Unmarshal(data, &v); err != nil {
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// DayNumber decodes numbers and numeric strings; anything else decodes as 0.
type DayNumber int

func (d *DayNumber) UnmarshalJSON(data []byte) error {
	v, ok := CoerceCost(data)
	if !ok || v < 1 {
		*d = 0
		return nil
	}
	*d = DayNumber(int(v))
	return nil
}

// TextValue is a free-text field that also accepts numbers and booleans from
// loosely formatted generator output. null decodes as "".
type TextValue string

func (t *TextValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TextValue(s)
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		*t = ""
		return nil
	}
	*t = TextValue(data)
	return nil
}

func truncateRaw(data []byte) string {
	const max = 40
	if len(data) > max {
		return string(data[:max]) + "..."
	}
	return string(data)
}
