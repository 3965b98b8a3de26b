package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	type TestCase struct {
		description string
		text        string
		want        Intent
	}

	testCases := []TestCase{
		{
			description: "facebook keyword",
			text:        "create a facebook post about summer",
			want:        IntentFacebookPost,
		},
		{
			description: "share keyword",
			text:        "share my holiday photos",
			want:        IntentFacebookPost,
		},
		{
			description: "post outranks blog",
			text:        "post my latest blog",
			want:        IntentFacebookPost,
		},
		{
			description: "image keyword",
			text:        "draw an image of a cat",
			want:        IntentCreateImage,
		},
		{
			description: "generate keyword",
			text:        "generate a sunset over mountains",
			want:        IntentCreateImage,
		},
		{
			description: "write keyword",
			text:        "write a blog about AI",
			want:        IntentTextGeneration,
		},
		{
			description: "email goes to text generation before auto-reply status",
			text:        "email reply for the client",
			want:        IntentTextGeneration,
		},
		{
			description: "status keyword",
			text:        "what is your status",
			want:        IntentSystemStatus,
		},
		{
			description: "how are you phrase",
			text:        "hey, how are you doing?",
			want:        IntentSystemStatus,
		},
		{
			description: "whatsapp keyword",
			text:        "any new whatsapp activity?",
			want:        IntentAutoReplyStatus,
		},
		{
			description: "messages keyword",
			text:        "check my unread messages",
			want:        IntentAutoReplyStatus,
		},
		{
			description: "reply outranks auto reply status",
			text:        "show auto reply log",
			want:        IntentTextGeneration,
		},
		{
			description: "no rule trips falls through to general query",
			text:        "tell me a joke",
			want:        IntentGeneralQuery,
		},
		{
			description: "case insensitive",
			text:        "CREATE A FACEBOOK POST",
			want:        IntentFacebookPost,
		},
		{
			description: "empty input is a general query",
			text:        "",
			want:        IntentGeneralQuery,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.text))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "post about cats", Normalize("  Post ABOUT Cats "))
	assert.Equal(t, "", Normalize("   "))
}
