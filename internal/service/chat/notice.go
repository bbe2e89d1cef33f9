package chat

import "strings"

// NoticeKind names a fixed, user-facing text. Failures are reported to the
// conversation as kinds and rendered through a Catalog.
type NoticeKind string

const (
	NoticeWelcome          NoticeKind = "welcome"
	NoticeTextFailure      NoticeKind = "text_failure"
	NoticeVoiceFailure     NoticeKind = "voice_failure"
	NoticeMicrophone       NoticeKind = "microphone"
	NoticeVoicePlaceholder NoticeKind = "voice_placeholder"
	NoticeDisclaimer       NoticeKind = "disclaimer"
	NoticeTitle            NoticeKind = "title"
	NoticeSubtitle         NoticeKind = "subtitle"
	NoticeInputPlaceholder NoticeKind = "input_placeholder"
	NoticeEmpty            NoticeKind = "empty"
)

// DefaultLocale is used when the configured locale has no catalog.
const DefaultLocale = "bn"

var catalogs = map[string]map[NoticeKind]string{
	"bn": {
		NoticeWelcome:          "আসসালামু আলাইকুম! আমি আপনার এআই সহকারী। শিক্ষা, স্বাস্থ্য, বা প্রযুক্তি বিষয়ক যেকোনো প্রশ্ন করতে পারেন।",
		NoticeTextFailure:      "দুঃখিত, সার্ভারে সমস্যা হচ্ছে। পরে আবার চেষ্টা করুন।",
		NoticeVoiceFailure:     "দুঃখিত, আপনার কথা বুঝতে পারিনি বা সার্ভারে সমস্যা হচ্ছে।",
		NoticeMicrophone:       "মাইক্রোফোন অ্যাক্সেস করতে সমস্যা হচ্ছে। অনুগ্রহ করে অনুমতি দিন।",
		NoticeVoicePlaceholder: "🎤 (Voice Query)",
		NoticeDisclaimer:       "এআই ভুল করতে পারে। গুরুত্বপূর্ণ তথ্যের জন্য যাচাই করুন।",
		NoticeTitle:            "Bangla FAQ Assistant",
		NoticeSubtitle:         "আপনার ব্যক্তিগত এআই সহযোগী",
		NoticeInputPlaceholder: "আপনার প্রশ্ন লিখুন অথবা বলুন...",
		NoticeEmpty:            "আপনার যাত্রা শুরু করুন",
	},
	"en": {
		NoticeWelcome:          "Hello! I am your AI assistant. Ask me anything about education, health or technology.",
		NoticeTextFailure:      "Sorry, the server is having trouble. Please try again later.",
		NoticeVoiceFailure:     "Sorry, I could not understand you or the server is having trouble.",
		NoticeMicrophone:       "Could not access the microphone. Please grant permission.",
		NoticeVoicePlaceholder: "🎤 (Voice Query)",
		NoticeDisclaimer:       "AI can make mistakes. Verify important information.",
		NoticeTitle:            "Bangla FAQ Assistant",
		NoticeSubtitle:         "Your personal AI companion",
		NoticeInputPlaceholder: "Type or speak your question...",
		NoticeEmpty:            "Start your journey",
	},
}

// Catalog resolves notice kinds to text in one locale.
type Catalog struct {
	locale   string
	messages map[NoticeKind]string
}

// NewCatalog returns the catalog for locale, falling back to DefaultLocale.
func NewCatalog(locale string) Catalog {
	locale = strings.ToLower(strings.TrimSpace(locale))
	messages, ok := catalogs[locale]
	if !ok {
		locale = DefaultLocale
		messages = catalogs[DefaultLocale]
	}
	return Catalog{locale: locale, messages: messages}
}

// Locale reports the resolved locale.
func (c Catalog) Locale() string {
	return c.locale
}

// Text returns the localized string for kind.
func (c Catalog) Text(kind NoticeKind) string {
	if text, ok := c.messages[kind]; ok {
		return text
	}
	if text, ok := catalogs[DefaultLocale][kind]; ok {
		return text
	}
	return string(kind)
}

// Locales lists the locales with a catalog.
func Locales() []string {
	return []string{"bn", "en"}
}
