package domain

import (
	"regexp"
	"strings"
)

// ContentType is the sub-type of a text generation request.
type ContentType string

const (
	ContentSocialPost         ContentType = "social_post"
	ContentBlogArticle        ContentType = "blog_article"
	ContentEmailReply         ContentType = "email_reply"
	ContentProductDescription ContentType = "product_description"
	ContentNewsArticle        ContentType = "news_article"
	ContentCreativeStory      ContentType = "creative_story"
	ContentTutorial           ContentType = "tutorial"
	ContentReview             ContentType = "review"
)

// Template drives prompt construction for one content type. Every content
// type the extractor can infer has an entry in ContentTemplates.
type Template struct {
	System          string
	MaxLength       int
	IncludeHashtags bool
}

var ContentTemplates = map[ContentType]Template{
	ContentSocialPost: {
		System:          "You are a social media expert. Create engaging, natural posts with relevant hashtags. Write in a conversational, human-like tone.",
		MaxLength:       280,
		IncludeHashtags: true,
	},
	ContentBlogArticle: {
		System:          "You are a professional blog writer. Create well-structured, informative articles with proper headings, engaging content, and SEO optimization.",
		MaxLength:       2000,
		IncludeHashtags: true,
	},
	ContentEmailReply: {
		System:          "You are a helpful assistant writing professional yet friendly email replies. Be concise, helpful, and maintain a warm tone.",
		MaxLength:       500,
		IncludeHashtags: false,
	},
	ContentProductDescription: {
		System:          "You are a marketing copywriter. Create compelling product descriptions that highlight benefits and features naturally.",
		MaxLength:       300,
		IncludeHashtags: true,
	},
	ContentNewsArticle: {
		System:          "You are a journalist writing news articles. Provide factual, well-structured content with proper headlines and clear information.",
		MaxLength:       1500,
		IncludeHashtags: false,
	},
	ContentCreativeStory: {
		System:          "You are a creative writer. Write engaging, imaginative stories with vivid descriptions and compelling narratives.",
		MaxLength:       1000,
		IncludeHashtags: false,
	},
	ContentTutorial: {
		System:          "You are an educational content creator. Write clear, step-by-step tutorials that are easy to follow and understand.",
		MaxLength:       1200,
		IncludeHashtags: true,
	},
	ContentReview: {
		System:          "You are writing honest, detailed reviews. Provide balanced perspectives covering pros, cons, and personal insights.",
		MaxLength:       600,
		IncludeHashtags: true,
	},
}

// contentTypeRules is ordered, first match wins, social_post is the default.
var contentTypeRules = []struct {
	keywords    []string
	contentType ContentType
}{
	{[]string{"blog", "article"}, ContentBlogArticle},
	{[]string{"email", "reply"}, ContentEmailReply},
	{[]string{"story"}, ContentCreativeStory},
	{[]string{"review"}, ContentReview},
	{[]string{"tutorial", "guide"}, ContentTutorial},
	{[]string{"product"}, ContentProductDescription},
	{[]string{"news"}, ContentNewsArticle},
}

// InferContentType picks the content sub-type for a text generation command.
func InferContentType(text string) ContentType {
	text = Normalize(text)

	for _, rule := range contentTypeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.contentType
			}
		}
	}

	return ContentSocialPost
}

// Label is the content type with underscores spelled out, for user-facing
// messages ("blog article", "email reply").
func (c ContentType) Label() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

var textFillerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`write\s+(a|an)?\s*`),
	regexp.MustCompile(`create\s+(a|an)?\s*`),
	regexp.MustCompile(`generate\s+(a|an)?\s*`),
	regexp.MustCompile(`make\s+(a|an)?\s*`),
	regexp.MustCompile(`\babout\b\s*`),
	regexp.MustCompile(`\bfor\b\s*`),
	regexp.MustCompile(`\bon\b\s*`),
}

// ExtractTextTopic strips filler and the content-type words themselves from a
// text generation command, leaving the topic. Returns false when too little
// remains to write about.
func ExtractTextTopic(text string, contentType ContentType) (string, bool) {
	topic := Normalize(text)

	for _, pattern := range textFillerPatterns {
		topic = pattern.ReplaceAllString(topic, " ")
	}

	for _, word := range strings.Split(string(contentType), "_") {
		topic = regexp.MustCompile(`\b`+word+`\b\s*`).ReplaceAllString(topic, " ")
	}

	topic = strings.Join(strings.Fields(topic), " ")
	if len(topic) <= 2 {
		return "", false
	}

	return topic, true
}

var hashtagCategories = map[string][]string{
	"technology":    {"#tech", "#innovation", "#ai", "#digital", "#future", "#gadgets", "#software"},
	"business":      {"#business", "#entrepreneur", "#startup", "#marketing", "#success", "#growth"},
	"lifestyle":     {"#lifestyle", "#wellness", "#health", "#fitness", "#motivation", "#inspiration"},
	"education":     {"#education", "#learning", "#knowledge", "#skills", "#tutorial", "#howto"},
	"entertainment": {"#entertainment", "#fun", "#trending", "#viral", "#creative", "#art"},
	"travel":        {"#travel", "#adventure", "#explore", "#wanderlust", "#vacation", "#journey"},
	"food":          {"#food", "#cooking", "#recipe", "#delicious", "#foodie", "#culinary"},
	"fashion":       {"#fashion", "#style", "#outfit", "#trend", "#beauty", "#design"},
}

// categoryOrder keeps hashtag synthesis deterministic for identical input.
var categoryOrder = []string{
	"technology", "business", "lifestyle", "education",
	"entertainment", "travel", "food", "fashion",
}

var hashtagPattern = regexp.MustCompile(`#\w+`)

// FindHashtags returns the hashtags present in generated content, in order
// of first appearance, without duplicates.
func FindHashtags(content string) []string {
	var tags []string
	seen := make(map[string]bool)

	for _, tag := range hashtagPattern.FindAllString(content, -1) {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	return tags
}

// SuggestHashtags synthesizes hashtags from the topic and content type when
// the generated content carried none.
func SuggestHashtags(topic string, contentType ContentType) []string {
	var tags []string
	topicLower := strings.ToLower(topic)

	for _, category := range categoryOrder {
		if strings.Contains(topicLower, category) {
			tags = append(tags, hashtagCategories[category][:3]...)
			break
		}
	}

	switch contentType {
	case ContentBlogArticle:
		tags = append(tags, "#blog", "#article", "#content")
	case ContentTutorial:
		tags = append(tags, "#tutorial", "#guide", "#howto")
	case ContentReview:
		tags = append(tags, "#review", "#honest", "#opinion")
	}

	topicTag := "#" + strings.ReplaceAll(topicLower, " ", "")
	if len(topicTag) > 15 {
		topicTag = topicTag[:15]
	}
	if len(topicTag) > 2 {
		tags = append(tags, topicTag)
	}

	if len(tags) > 5 {
		tags = tags[:5]
	}

	return tags
}
