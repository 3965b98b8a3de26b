package domain

import "strings"

// classifierRules is an ordered decision list: the first rule with any keyword
// contained in the command wins. The order is a versioned contract. Several
// keywords appear in more than one rule ("email" triggers text generation
// before auto-reply status), so reordering silently changes classification
// for overlapping inputs.
var classifierRules = []struct {
	keywords []string
	intent   Intent
}{
	{[]string{"facebook", "post", "share"}, IntentFacebookPost},
	{[]string{"image", "picture", "generate", "create image"}, IntentCreateImage},
	{[]string{"write", "blog", "article", "content", "reply", "email"}, IntentTextGeneration},
	{[]string{"status", "how are you", "system"}, IntentSystemStatus},
	{[]string{"auto reply", "email", "whatsapp", "messages"}, IntentAutoReplyStatus},
}

// Classify maps free-form command text to an intent. There is no unmatched
// case: anything that trips no rule is a general query.
func Classify(text string) Intent {
	text = Normalize(text)

	for _, rule := range classifierRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.intent
			}
		}
	}

	return IntentGeneralQuery
}

// Normalize lower-cases and trims command text. Every classification and
// extraction path works on normalized text.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
