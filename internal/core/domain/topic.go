package domain

import (
	"regexp"
	"strings"
)

// Phase-1 extraction: ordered regex patterns per intent, first match wins.
var topicPatterns = map[Intent][]*regexp.Regexp{
	IntentFacebookPost: {
		regexp.MustCompile(`post about (.+)`),
		regexp.MustCompile(`create.*post.*about (.+)`),
		regexp.MustCompile(`facebook.*about (.+)`),
		regexp.MustCompile(`share (.+)`),
		regexp.MustCompile(`post (.+)`),
	},
	IntentCreateImage: {
		regexp.MustCompile(`generate.*image.*of (.+)`),
		regexp.MustCompile(`create.*image.*of (.+)`),
		regexp.MustCompile(`make.*picture.*of (.+)`),
		regexp.MustCompile(`image of (.+)`),
		regexp.MustCompile(`picture of (.+)`),
		regexp.MustCompile(`generate (.+)`),
		regexp.MustCompile(`create (.+)`),
	},
}

// Phase-2 extraction: split on the first keyword occurrence and keep the rest.
var topicKeywords = map[Intent][]string{
	IntentFacebookPost: {"post", "about", "facebook"},
	IntentCreateImage:  {"image", "picture", "generate", "create"},
}

var (
	leadingStopWord = regexp.MustCompile(`^(of|about|on|for)\s+`)
	leadingArticle  = regexp.MustCompile(`^(a|an|the)\s+`)
)

// ExtractTopic pulls the topic slot out of normalized command text. The
// second return is false when the command carries no usable topic; callers
// turn that into a user-facing "please specify a topic" message.
func ExtractTopic(text string, intent Intent) (string, bool) {
	text = Normalize(text)

	for _, pattern := range topicPatterns[intent] {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		topic := leadingArticle.ReplaceAllString(strings.TrimSpace(match[1]), "")
		if topic != "" {
			return topic, true
		}
	}

	for _, keyword := range topicKeywords[intent] {
		_, rest, found := strings.Cut(text, keyword)
		if !found {
			continue
		}

		topic := leadingStopWord.ReplaceAllString(strings.TrimSpace(rest), "")
		if topic != "" {
			return topic, true
		}
	}

	return "", false
}
