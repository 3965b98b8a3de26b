package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTopicFacebookPost(t *testing.T) {
	type TestCase struct {
		description string
		text        string
		want        string
		found       bool
	}

	testCases := []TestCase{
		{
			description: "post about pattern",
			text:        "create a facebook post about summer vacation",
			want:        "summer vacation",
			found:       true,
		},
		{
			description: "share pattern",
			text:        "share my new recipe",
			want:        "my new recipe",
			found:       true,
		},
		{
			description: "bare post pattern",
			text:        "post the meeting notes",
			want:        "meeting notes",
			found:       true,
		},
		{
			description: "keyword split fallback",
			text:        "facebook something fun",
			want:        "something fun",
			found:       true,
		},
		{
			description: "no topic after keyword",
			text:        "post",
			found:       false,
		},
		{
			description: "keyword only with trailing space",
			text:        "post   ",
			found:       false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			topic, found := ExtractTopic(tc.text, IntentFacebookPost)

			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.want, topic)
		})
	}
}

func TestExtractTopicCreateImage(t *testing.T) {
	type TestCase struct {
		description string
		text        string
		want        string
		found       bool
	}

	testCases := []TestCase{
		{
			description: "generate image of pattern",
			text:        "generate an image of a red dragon",
			want:        "red dragon",
			found:       true,
		},
		{
			description: "picture of pattern strips leading article",
			text:        "show me a picture of the eiffel tower",
			want:        "eiffel tower",
			found:       true,
		},
		{
			description: "bare generate strips leading article",
			text:        "generate a sunset over mountains",
			want:        "sunset over mountains",
			found:       true,
		},
		{
			description: "bare create pattern",
			text:        "create an oil painting of a ship",
			want:        "oil painting of a ship",
			found:       true,
		},
		{
			description: "image of pattern",
			text:        "image of a castle",
			want:        "castle",
			found:       true,
		},
		{
			description: "no description",
			text:        "generate",
			found:       false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			topic, found := ExtractTopic(tc.text, IntentCreateImage)

			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.want, topic)
		})
	}
}
