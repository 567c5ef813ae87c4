package classifier

import "testing"

func TestClassify_MeetingRequestPrecedence(t *testing.T) {
	c := New()

	result := c.Classify("Can we schedule a call next week?")

	if result.Intent != IntentMeetingRequest {
		t.Fatalf("expected meeting_request intent, got %s", result.Intent)
	}
	if !result.NeedsHumanReview {
		t.Fatal("expected needs_human_review for meeting request")
	}
}

func TestClassify_NegativeBeatsPositiveSubstring(t *testing.T) {
	c := New()

	result := c.Classify("Thanks, but we are not interested.")

	if result.Sentiment != SentimentNegative {
		t.Fatalf("expected negative sentiment, got %s", result.Sentiment)
	}
	if result.Intent != IntentNotInterested {
		t.Fatalf("expected not_interested intent, got %s", result.Intent)
	}
	if result.Confidence != ConfidenceHigh {
		t.Fatalf("expected high confidence, got %s", result.Confidence)
	}
	if result.NeedsHumanReview {
		t.Fatal("negative reply should not need human review")
	}
}

func TestClassify_EmptyContentDefaults(t *testing.T) {
	c := New()

	result := c.Classify("")

	if result.Sentiment != SentimentNeutral {
		t.Fatalf("expected neutral sentiment, got %s", result.Sentiment)
	}
	if result.Intent != IntentGeneralInquiry {
		t.Fatalf("expected general_inquiry intent, got %s", result.Intent)
	}
	if result.Confidence != ConfidenceMedium {
		t.Fatalf("expected medium confidence, got %s", result.Confidence)
	}
	if result.NeedsHumanReview {
		t.Fatal("empty content should not need human review")
	}
}

func TestClassify_Table(t *testing.T) {
	c := New()

	cases := []struct {
		name      string
		content   string
		sentiment Sentiment
		intent    Intent
		review    bool
	}{
		{
			name:      "pricing inquiry",
			content:   "What would the cost be for 50 seats?",
			sentiment: SentimentNeutral,
			intent:    IntentPricingInquiry,
			review:    false,
		},
		{
			name:      "unsubscribe",
			content:   "Please remove me from this list",
			sentiment: SentimentNegative,
			intent:    IntentUnsubscribeRequest,
			review:    false,
		},
		{
			name:      "plain interest",
			content:   "This is interesting, I'd like to learn more",
			sentiment: SentimentPositive,
			intent:    IntentInterested,
			review:    true,
		},
		{
			name:      "punctuation stripped",
			content:   "DEMO!!! yes please",
			sentiment: SentimentPositive,
			intent:    IntentMeetingRequest,
			review:    true,
		},
		{
			name:      "no signal",
			content:   "I will forward this to a colleague",
			sentiment: SentimentNeutral,
			intent:    IntentGeneralInquiry,
			review:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := c.Classify(tc.content)
			if result.Sentiment != tc.sentiment {
				t.Errorf("sentiment: expected %s, got %s", tc.sentiment, result.Sentiment)
			}
			if result.Intent != tc.intent {
				t.Errorf("intent: expected %s, got %s", tc.intent, result.Intent)
			}
			if result.NeedsHumanReview != tc.review {
				t.Errorf("needs review: expected %v, got %v", tc.review, result.NeedsHumanReview)
			}
		})
	}
}

func TestClassify_NeverPanicsOnArbitraryInput(t *testing.T) {
	c := New()

	inputs := []string{
		"", " ", "\n\t", "日本語のテキスト", "<html><body>hi</body></html>",
		"a", "!!!", "'''", "schedule schedule schedule",
	}
	for _, in := range inputs {
		_ = c.Classify(in)
	}
}
