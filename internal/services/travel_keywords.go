package services

import (
	"regexp"
	"strings"

	"rihla/internal/models/request_models"
)

// Every table in this file is built once at package init and never mutated.

// Place is a normalized gazetteer entry.
type Place struct {
	City    string
	Country string
}

type gazetteerEntry struct {
	names []string
	place Place
}

// Arabic names are scanned before English ones; within a script the order below is the priority.
var gazetteerEntries = []gazetteerEntry{
	{names: []string{"باريس"}, place: Place{City: "Paris", Country: "France"}},
	{names: []string{"دبي"}, place: Place{City: "Dubai", Country: "UAE"}},
	{names: []string{"لندن"}, place: Place{City: "London", Country: "UK"}},
	{names: []string{"القاهرة"}, place: Place{City: "Cairo", Country: "Egypt"}},
	{names: []string{"الرياض"}, place: Place{City: "Riyadh", Country: "Saudi Arabia"}},
	{names: []string{"اسطنبول", "إسطنبول"}, place: Place{City: "Istanbul", Country: "Turkey"}},
	{names: []string{"روما"}, place: Place{City: "Rome", Country: "Italy"}},
	{names: []string{"نيويورك", "نيو يورك"}, place: Place{City: "New York", Country: "USA"}},
	{names: []string{"طوكيو"}, place: Place{City: "Tokyo", Country: "Japan"}},
	{names: []string{"برشلونة"}, place: Place{City: "Barcelona", Country: "Spain"}},
	{names: []string{"مراكش"}, place: Place{City: "Marrakech", Country: "Morocco"}},
	{names: []string{"بيروت"}, place: Place{City: "Beirut", Country: "Lebanon"}},
	{names: []string{"الدوحة"}, place: Place{City: "Doha", Country: "Qatar"}},
	{names: []string{"مدريد"}, place: Place{City: "Madrid", Country: "Spain"}},
	{names: []string{"أمستردام", "امستردام"}, place: Place{City: "Amsterdam", Country: "Netherlands"}},
	{names: []string{"كوالالمبور", "كوالا لمبور"}, place: Place{City: "Kuala Lumpur", Country: "Malaysia"}},
	{names: []string{"paris"}, place: Place{City: "Paris", Country: "France"}},
	{names: []string{"dubai"}, place: Place{City: "Dubai", Country: "UAE"}},
	{names: []string{"london"}, place: Place{City: "London", Country: "UK"}},
	{names: []string{"cairo"}, place: Place{City: "Cairo", Country: "Egypt"}},
	{names: []string{"riyadh"}, place: Place{City: "Riyadh", Country: "Saudi Arabia"}},
	{names: []string{"istanbul"}, place: Place{City: "Istanbul", Country: "Turkey"}},
	{names: []string{"rome"}, place: Place{City: "Rome", Country: "Italy"}},
	{names: []string{"new york", "newyork", "nyc"}, place: Place{City: "New York", Country: "USA"}},
	{names: []string{"tokyo"}, place: Place{City: "Tokyo", Country: "Japan"}},
	{names: []string{"barcelona"}, place: Place{City: "Barcelona", Country: "Spain"}},
	{names: []string{"marrakech", "marrakesh"}, place: Place{City: "Marrakech", Country: "Morocco"}},
	{names: []string{"beirut"}, place: Place{City: "Beirut", Country: "Lebanon"}},
	{names: []string{"doha"}, place: Place{City: "Doha", Country: "Qatar"}},
	{names: []string{"madrid"}, place: Place{City: "Madrid", Country: "Spain"}},
	{names: []string{"amsterdam"}, place: Place{City: "Amsterdam", Country: "Netherlands"}},
	{names: []string{"kuala lumpur"}, place: Place{City: "Kuala Lumpur", Country: "Malaysia"}},
}

type placeRule struct {
	term  term
	place Place
}

var gazetteer = buildGazetteer(gazetteerEntries)

func buildGazetteer(entries []gazetteerEntry) []placeRule {
	var rules []placeRule
	for _, e := range entries {
		for _, n := range e.names {
			rules = append(rules, placeRule{term: nameTerm(n), place: e.place})
		}
	}
	return rules
}

// LookupPlace returns the first gazetteer city mentioned in text.
func LookupPlace(text string) (Place, bool) {
	normalized := normalizeText(text)
	for _, rule := range gazetteer {
		if rule.term.matches(normalized) {
			return rule.place, true
		}
	}
	return Place{}, false
}

// PlaceByCity resolves an exact city name, in either script, to its gazetteer entry.
func PlaceByCity(city string) (Place, bool) {
	normalized := strings.TrimSpace(normalizeText(city))
	if normalized == "" {
		return Place{}, false
	}
	for _, e := range gazetteerEntries {
		if strings.EqualFold(e.place.City, normalized) {
			return e.place, true
		}
		for _, n := range e.names {
			if normalizeText(n) == normalized {
				return e.place, true
			}
		}
	}
	return Place{}, false
}

// term matches a keyword at a word start. Latin terms use \b on both sides and
// keywords tolerate a plural suffix. Arabic terms tolerate the attached
// prefixes و ف ب ل ك ال; Arabic keywords may also carry any suffix.
type term struct {
	re *regexp.Regexp
}

func (t term) matches(normalized string) bool {
	return t.re.MatchString(normalized)
}

const arabicPrefix = `(?:^|[^\p{L}])(?:[وف])?(?:[بلك])?(?:ال)?`

func keywordTerm(s string) term {
	return newTerm(s, true)
}

func nameTerm(s string) term {
	return newTerm(s, false)
}

func newTerm(s string, plural bool) term {
	s = normalizeText(s)
	quoted := regexp.QuoteMeta(s)
	if isLatin(s) {
		suffix := `\b`
		if plural {
			suffix = `(?:s|es)?\b`
		}
		return term{re: regexp.MustCompile(`\b` + quoted + suffix)}
	}
	if plural {
		return term{re: regexp.MustCompile(arabicPrefix + quoted)}
	}
	return term{re: regexp.MustCompile(arabicPrefix + quoted + `(?:$|[^\p{L}])`)}
}

type keywordSet []term

func keywords(words ...string) keywordSet {
	set := make(keywordSet, 0, len(words))
	for _, w := range words {
		set = append(set, keywordTerm(w))
	}
	return set
}

func (k keywordSet) matches(normalized string) bool {
	for _, t := range k {
		if t.matches(normalized) {
			return true
		}
	}
	return false
}

type interestRule struct {
	interest request_models.Interest
	words    keywordSet
}

var interestRules = []interestRule{
	{request_models.InterestCulture, keywords(
		"museum", "history", "historic", "historical", "culture", "cultural", "art", "gallery",
		"monument", "heritage", "architecture", "temple", "mosque", "cathedral", "palace",
		"متحف", "متاحف", "تاريخ", "تاريخي", "تاريخية", "ثقافة", "ثقافي", "ثقافية", "فنون",
		"معالم", "تراث", "اثار", "قصر", "مسجد")},
	{request_models.InterestFood, keywords(
		"food", "foodie", "cuisine", "restaurant", "eat", "eating", "dining", "culinary",
		"street food", "cafe", "coffee", "dinner", "brunch",
		"طعام", "اكل", "مطعم", "مطاعم", "ماكولات", "عشاء", "مقهى", "مقاهي", "قهوة")},
	{request_models.InterestShopping, keywords(
		"shopping", "shop", "mall", "market", "souk", "bazaar", "boutique", "outlet",
		"تسوق", "سوق", "اسواق", "مول", "مركز تسوق")},
	{request_models.InterestNature, keywords(
		"nature", "park", "garden", "hiking", "hike", "mountain", "lake", "scenic", "outdoor",
		"wildlife", "forest", "waterfall",
		"طبيعة", "حديقة", "حدائق", "جبل", "جبال", "بحيرة", "منتزه", "غابة", "شلال")},
	{request_models.InterestAdventure, keywords(
		"adventure", "adventurous", "safari", "diving", "surfing", "climbing", "zipline",
		"skiing", "rafting", "paragliding", "desert",
		"مغامرة", "مغامرات", "سفاري", "غوص", "تسلق", "صحراء", "تزلج")},
	{request_models.InterestRelaxation, keywords(
		"relax", "relaxing", "relaxation", "spa", "beach", "resort", "calm", "peaceful",
		"wellness", "unwind",
		"استرخاء", "راحة", "سبا", "منتجع", "شاطئ", "شواطئ", "هدوء", "هادئة")},
}

type tripTypeRule struct {
	tripType request_models.TripType
	words    keywordSet
}

var tripTypeRules = []tripTypeRule{
	{request_models.TripFamily, keywords(
		"family", "kids", "children", "child", "toddler",
		"عائلة", "عائلي", "عائلية", "اطفال", "الاولاد", "اسرة", "اسرتي")},
	{request_models.TripRomantic, keywords(
		"romantic", "honeymoon", "couple", "anniversary", "my wife", "my husband",
		"رومانسي", "رومانسية", "شهر العسل", "زوجتي", "زوجي")},
	{request_models.TripAdventure, keywords(
		"adventure", "adventurous", "trekking", "backpacking", "expedition",
		"مغامرة", "مغامرات")},
	{request_models.TripBusiness, keywords(
		"business", "conference", "work trip", "meeting", "meetings",
		"رحلة عمل", "اعمال", "مؤتمر", "اجتماع")},
	{request_models.TripBeach, keywords(
		"beach", "seaside", "island", "coast",
		"شاطئ", "شواطئ", "بحر", "جزيرة", "ساحل")},
	{request_models.TripCultural, keywords(
		"cultural", "culture", "museum", "history", "heritage",
		"ثقافي", "ثقافية", "ثقافة", "تاريخ", "تراث", "متاحف")},
}

type budgetRule struct {
	tier  request_models.BudgetTier
	words keywordSet
}

var budgetRules = []budgetRule{
	{request_models.BudgetLow, keywords(
		"budget friendly", "budget-friendly", "on a budget", "low budget", "cheap", "affordable",
		"economical", "backpacker", "inexpensive",
		"اقتصادي", "اقتصادية", "رخيص", "رخيصة", "ميزانية محدودة", "ميزانية منخفضة", "باقل تكلفة")},
	{request_models.BudgetMedium, keywords(
		"moderate", "mid-range", "midrange", "medium budget", "reasonable",
		"متوسط", "متوسطة", "معتدل", "معتدلة")},
	{request_models.BudgetHigh, keywords(
		"luxury", "luxurious", "premium", "high-end", "five-star", "5-star", "vip", "lavish",
		"فاخر", "فاخرة", "فخم", "فخمة", "رفاهية", "خمس نجوم")},
}

type followUpRule struct {
	kind  request_models.FollowUp
	words keywordSet
}

var followUpRules = []followUpRule{
	{request_models.FollowUpModify, keywords(
		"change", "modify", "edit", "replace", "swap", "instead",
		"تغيير", "تعديل", "استبدال", "بدلا")},
	{request_models.FollowUpBudget, keywords(
		"budget", "cost", "price", "expensive", "cheaper",
		"ميزانية", "تكلفة", "سعر", "اسعار", "ارخص")},
}

// dayRule extracts a day count from its first capture group. A match whose
// text also matches veto is skipped.
type dayRule struct {
	pattern    *regexp.Regexp
	veto       *regexp.Regexp
	multiplier int
}

var dayRules = []dayRule{
	{pattern: regexp.MustCompile(`(\d+)\s*-?\s*(?:days?\b|ايام|يوما|يوم)`), multiplier: 1},
	{
		pattern:    regexp.MustCompile(`\bfor\s+(\d+)\b(?:\s*-?\s*[a-z]+)?`),
		veto:       regexp.MustCompile(`people|persons?|adults?|travell?ers?|guests?|kids|children|pax|nights?|weeks?|months?|hours?`),
		multiplier: 1,
	},
	{
		pattern:    regexp.MustCompile(`لمدة\s*(\d+)(?:\s*[\p{Arabic}]+)?`),
		veto:       regexp.MustCompile(`اشخاص|شخص|افراد|ليال|ليلة|اسابيع|اسبوع|ساعات|ساعة`),
		multiplier: 1,
	},
	{pattern: regexp.MustCompile(`(\d+)\s*-?\s*(?:nights?\b|ليالي|ليال|ليلة)`), multiplier: 1},
	{pattern: regexp.MustCompile(`(\d+)\s*-?\s*(?:weeks?\b|اسابيع|اسبوع)`), multiplier: 7},
}

type wordDayRule struct {
	pattern *regexp.Regexp
	days    int
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"واحد": 1, "اثنين": 2, "اثنان": 2, "ثلاثة": 3, "ثلاث": 3, "اربعة": 4, "اربع": 4,
	"خمسة": 5, "خمس": 5, "ستة": 6, "ست": 6, "سبعة": 7, "سبع": 7,
	"ثمانية": 8, "ثماني": 8, "تسعة": 9, "تسع": 9, "عشرة": 10, "عشر": 10,
}

const spelledNumbers = `one|two|three|four|five|six|seven|eight|nine|ten`

const arabicSpelledNumbers = `واحد|اثنين|اثنان|ثلاثة|ثلاث|اربعة|اربع|خمسة|خمس|ستة|ست|سبعة|سبع|ثمانية|ثماني|تسعة|تسع|عشرة|عشر`

// spelledDayRules capture a key of numberWords.
var spelledDayRules = []dayRule{
	{pattern: regexp.MustCompile(`\b(` + spelledNumbers + `)\s*-?\s*(?:days?|nights?)\b`), multiplier: 1},
	{pattern: regexp.MustCompile(`(?:^|[^\p{L}])(` + arabicSpelledNumbers + `)\s+(?:ايام|ليالي|ليال)`), multiplier: 1},
	{pattern: regexp.MustCompile(`\b(` + spelledNumbers + `)\s*-?\s*weeks?\b`), multiplier: 7},
	{pattern: regexp.MustCompile(`(?:^|[^\p{L}])(` + arabicSpelledNumbers + `)\s+اسابيع`), multiplier: 7},
}

var wordDayRules = []wordDayRule{
	{pattern: regexp.MustCompile(`(?:^|[^\p{L}])(?:ل)?يومين`), days: 2},
	{pattern: regexp.MustCompile(`\bweekend\b|نهاية الاسبوع`), days: 2},
	{pattern: regexp.MustCompile(`(?:^|[^\p{L}])(?:ل)?اسبوعين`), days: 14},
	{pattern: regexp.MustCompile(`\ba\s+week\b|لمدة\s+اسبوع(?:$|[^\p{L}])`), days: 7},
}

var groupSizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:people|persons?|adults?|travell?ers|guests|pax)\b`),
	regexp.MustCompile(`(\d+)\s*(?:اشخاص|شخص|افراد|بالغين)`),
	regexp.MustCompile(`\bfamily of\s+(\d+)\b`),
	regexp.MustCompile(`عائلة من\s*(\d+)`),
}

var soloWords = keywords("solo", "alone", "by myself", "بمفردي", "لوحدي", "وحدي")

var arabicDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
)

var alefForms = strings.NewReplacer("أ", "ا", "إ", "ا", "آ", "ا", "ـ", "")

// normalizeText lower-cases, maps Arabic-Indic digits to ASCII and folds alef variants.
func normalizeText(s string) string {
	return alefForms.Replace(arabicDigits.Replace(strings.ToLower(s)))
}

func isLatin(s string) bool {
	for _, r := range s {
		if r > 0x7f {
			return false
		}
	}
	return true
}
