package category

import (
	"strings"
)

// Label is a topic tag attached to an answer.
type Label string

const (
	General    Label = "general"
	Education  Label = "education"
	Health     Label = "health"
	Technology Label = "technology"
	Geography  Label = "geography"
)

// Decision is the classifier result.
type Decision struct {
	Category Label
	Score    int
}

// order fixes tie-breaking; map iteration is random.
var order = []Label{Education, Health, Technology, Geography}

var keywordBuckets = map[Label][]string{
	Education: {
		"শিক্ষা", "পড়াশোনা", "পরীক্ষা", "স্কুল", "কলেজ", "বিশ্ববিদ্যালয়", "ভর্তি", "বৃত্তি", "এসএসসি", "এইচএসসি",
		"শিক্ষক", "ছাত্র", "বই", "school", "college", "university", "exam", "admission", "scholarship",
		"study", "teacher", "student", "course",
	},
	Health: {
		"স্বাস্থ্য", "জ্বর", "ডাক্তার", "হাসপাতাল", "ওষুধ", "রোগ", "ব্যথা", "ডায়াবেটিস", "টিকা", "ডেঙ্গু",
		"পানি", "ঘুম", "খাবার", "health", "fever", "doctor", "hospital", "medicine", "disease", "vaccine",
		"pain", "diet", "dengue",
	},
	Technology: {
		"প্রযুক্তি", "কম্পিউটার", "ইন্টারনেট", "মোবাইল", "সফটওয়্যার", "প্রোগ্রামিং", "এআই", "পাসওয়ার্ড",
		"অ্যাপ", "ওয়াইফাই", "technology", "computer", "internet", "mobile", "software", "programming",
		"ai", "password", "app", "wifi", "phone",
	},
	Geography: {
		"রাজধানী", "দেশ", "নদী", "জেলা", "বিভাগ", "পাহাড়", "সমুদ্র", "ঢাকা", "capital", "country", "river",
		"district", "mountain", "sea", "dhaka", "bangladesh", "বাংলাদেশ",
	},
}

// Classify tags a question, consulting the answer only when the question
// alone carries no signal.
func Classify(question, answer string) Decision {
	decision := score(question)
	if decision.Score == 0 {
		decision = score(answer)
	}
	return decision
}

func score(text string) Decision {
	normalized := strings.TrimSpace(strings.ToLower(text))
	if normalized == "" {
		return Decision{Category: General}
	}

	words := tokenize(normalized)

	best := Decision{Category: General}
	for _, label := range order {
		s := 0
		for _, keyword := range keywordBuckets[label] {
			if matches(normalized, words, keyword) {
				s += 3
			}
		}
		if s > best.Score {
			best = Decision{Category: label, Score: s}
		}
	}
	return best
}

// Short ASCII keywords must match a whole word so that "ai" does not fire
// on "said". Bengali keywords match as substrings to cover inflections.
func matches(normalized string, words map[string]bool, keyword string) bool {
	if keyword == "" {
		return false
	}
	if isASCII(keyword) && len(keyword) <= 4 {
		return words[keyword]
	}
	return strings.Contains(normalized, keyword)
}

func tokenize(text string) map[string]bool {
	words := make(map[string]bool)
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '?' || r == '!' || r == ',' || r == '.' || r == '।'
	}) {
		words[field] = true
	}
	return words
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
