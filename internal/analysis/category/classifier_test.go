package category

import "testing"

func TestClassifyBengaliQuestions(t *testing.T) {
	cases := map[string]Label{
		"এসএসসি পরীক্ষার ফল কবে দেবে?":     Education,
		"জ্বর হলে কী ওষুধ খাব?":             Health,
		"ইন্টারনেট ধীর কেন?":                Technology,
		"বাংলাদেশের রাজধানী কোথায়?":          Geography,
		"What is the capital?":              Geography,
		"How do I reset my wifi password?": Technology,
	}

	for question, want := range cases {
		if got := Classify(question, "").Category; got != want {
			t.Fatalf("Classify(%q) = %s, want %s", question, got, want)
		}
	}
}

func TestClassifyFallsBackToAnswer(t *testing.T) {
	decision := Classify("এটা কী?", "এটি একটি ডেঙ্গু রোগের লক্ষণ")
	if decision.Category != Health {
		t.Fatalf("expected health from answer, got %s", decision.Category)
	}
}

func TestClassifyDefaultsToGeneral(t *testing.T) {
	decision := Classify("hello there, he said", "")
	if decision.Category != General || decision.Score != 0 {
		t.Fatalf("expected general, got %+v", decision)
	}
}
