package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferContentType(t *testing.T) {
	type TestCase struct {
		description string
		text        string
		want        ContentType
	}

	testCases := []TestCase{
		{
			description: "blog keyword",
			text:        "write a blog about machine learning",
			want:        ContentBlogArticle,
		},
		{
			description: "email keyword",
			text:        "write an email to the supplier",
			want:        ContentEmailReply,
		},
		{
			description: "story keyword",
			text:        "write a story about a lost robot",
			want:        ContentCreativeStory,
		},
		{
			description: "review keyword",
			text:        "write a review of the new phone",
			want:        ContentReview,
		},
		{
			description: "guide maps to tutorial",
			text:        "write a guide to sourdough baking",
			want:        ContentTutorial,
		},
		{
			description: "blog outranks review",
			text:        "write a blog review",
			want:        ContentBlogArticle,
		},
		{
			description: "no keyword defaults to social post",
			text:        "write something about coffee",
			want:        ContentSocialPost,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.want, InferContentType(tc.text))
		})
	}
}

func TestContentTypeLabel(t *testing.T) {
	assert.Equal(t, "blog article", ContentBlogArticle.Label())
	assert.Equal(t, "social post", ContentSocialPost.Label())
}

func TestExtractTextTopic(t *testing.T) {
	type TestCase struct {
		description string
		text        string
		contentType ContentType
		want        string
		found       bool
	}

	testCases := []TestCase{
		{
			description: "strips filler and content type words",
			text:        "write a blog about remote work",
			contentType: ContentBlogArticle,
			want:        "remote work",
			found:       true,
		},
		{
			description: "strips filler and stop words",
			text:        "create a reply for the delayed shipment",
			contentType: ContentEmailReply,
			want:        "the delayed shipment",
			found:       true,
		},
		{
			description: "too little left over",
			text:        "write a blog",
			contentType: ContentBlogArticle,
			found:       false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			topic, found := ExtractTextTopic(tc.text, tc.contentType)

			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.want, topic)
		})
	}
}

func TestFindHashtags(t *testing.T) {
	tags := FindHashtags("Great day! #sunshine #beach then more #sunshine")

	require.Len(t, tags, 2)
	assert.Equal(t, "#sunshine", tags[0])
	assert.Equal(t, "#beach", tags[1])
}

func TestFindHashtagsNone(t *testing.T) {
	assert.Empty(t, FindHashtags("no tags in here"))
}

func TestSuggestHashtags(t *testing.T) {
	tags := SuggestHashtags("technology trends", ContentBlogArticle)

	require.Len(t, tags, 5)
	assert.Equal(t, []string{"#tech", "#innovation", "#ai", "#blog", "#article"}, tags)
}

func TestSuggestHashtagsTopicTag(t *testing.T) {
	tags := SuggestHashtags("coffee", ContentSocialPost)

	require.Len(t, tags, 1)
	assert.Equal(t, "#coffee", tags[0])
}

func TestSuggestHashtagsDeterministic(t *testing.T) {
	first := SuggestHashtags("travel plans", ContentTutorial)
	second := SuggestHashtags("travel plans", ContentTutorial)

	assert.Equal(t, first, second)
}
