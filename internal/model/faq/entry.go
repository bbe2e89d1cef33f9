package faq

// Entry is one curated question with its answer.
type Entry struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords,omitempty"`
}

// Seed provides the built-in Bangla FAQ used by the development backend.
func Seed() []Entry {
	return []Entry{
		{
			ID:       "capital",
			Question: "বাংলাদেশের রাজধানী কোথায়?",
			Answer:   "বাংলাদেশের রাজধানী ঢাকা।",
			Category: "geography",
			Keywords: []string{"রাজধানী", "capital"},
		},
		{
			ID:       "ssc-result",
			Question: "এসএসসি পরীক্ষার ফলাফল কীভাবে দেখব?",
			Answer:   "শিক্ষা বোর্ডের ওয়েবসাইটে রোল ও রেজিস্ট্রেশন নম্বর দিয়ে অথবা মোবাইলে এসএমএস পাঠিয়ে ফলাফল দেখতে পারেন।",
			Category: "education",
			Keywords: []string{"ফলাফল", "রেজাল্ট", "result"},
		},
		{
			ID:       "scholarship",
			Question: "বৃত্তির জন্য কীভাবে আবেদন করব?",
			Answer:   "বৃত্তির বিজ্ঞপ্তি প্রকাশের পর নির্ধারিত ফর্ম পূরণ করে প্রতিষ্ঠানের মাধ্যমে আবেদন করতে হয়। সময়সীমা খেয়াল রাখুন।",
			Category: "education",
			Keywords: []string{"বৃত্তি", "scholarship"},
		},
		{
			ID:       "fever",
			Question: "জ্বর হলে কী করব?",
			Answer:   "বিশ্রাম নিন, প্রচুর পানি পান করুন এবং প্রয়োজনে প্যারাসিটামল খান। তিন দিনের বেশি জ্বর থাকলে ডাক্তারের পরামর্শ নিন।",
			Category: "health",
			Keywords: []string{"জ্বর", "fever"},
		},
		{
			ID:       "dengue",
			Question: "ডেঙ্গু প্রতিরোধে কী করা উচিত?",
			Answer:   "জমে থাকা পানি পরিষ্কার রাখুন, মশারি ব্যবহার করুন এবং দিনের বেলাতেও মশার কামড় থেকে সাবধান থাকুন।",
			Category: "health",
			Keywords: []string{"ডেঙ্গু", "মশা", "dengue"},
		},
		{
			ID:       "password",
			Question: "নিরাপদ পাসওয়ার্ড কীভাবে তৈরি করব?",
			Answer:   "অন্তত ১২ অক্ষরের পাসওয়ার্ড ব্যবহার করুন, বড় ও ছোট হাতের অক্ষর, সংখ্যা ও চিহ্ন মিশিয়ে দিন এবং একাধিক জায়গায় একই পাসওয়ার্ড ব্যবহার করবেন না।",
			Category: "technology",
			Keywords: []string{"পাসওয়ার্ড", "password"},
		},
		{
			ID:       "internet",
			Question: "ইন্টারনেট ধীর হলে কী করব?",
			Answer:   "রাউটার একবার বন্ধ করে চালু করুন, অপ্রয়োজনীয় ডাউনলোড বন্ধ রাখুন এবং সমস্যা থাকলে সেবাদাতার সাথে যোগাযোগ করুন।",
			Category: "technology",
			Keywords: []string{"ইন্টারনেট", "ওয়াইফাই", "internet", "wifi"},
		},
	}
}
