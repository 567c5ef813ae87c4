// Package classifier derives sentiment and intent from free-text reply
// content. Classification is a pure function over the content: it never
// fails, and absent or ambiguous input degrades to neutral defaults.
package classifier

import (
	"strings"
)

// Sentiment is the coarse polarity of a reply.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Intent is the resolved purpose of a reply.
type Intent string

const (
	IntentMeetingRequest     Intent = "meeting_request"
	IntentPricingInquiry     Intent = "pricing_inquiry"
	IntentUnsubscribeRequest Intent = "unsubscribe_request"
	IntentInterested         Intent = "interested"
	IntentNotInterested      Intent = "not_interested"
	IntentGeneralInquiry     Intent = "general_inquiry"
)

// Confidence reflects how strong the lexicon evidence was.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
)

// Result is the full classification of one reply.
type Result struct {
	Sentiment        Sentiment  `json:"sentiment"`
	Intent           Intent     `json:"intent"`
	Confidence       Confidence `json:"confidence"`
	NeedsHumanReview bool       `json:"needsHumanReview"`
}

// Built-in lexicons. Phrases are matched against lowercased word n-grams of
// the content, so multi-word phrases match regardless of surrounding text.
var (
	builtinPositive = []string{
		"interested", "sounds good", "sounds great", "schedule", "pricing",
		"learn more", "tell me more", "yes please", "let's talk", "keen",
	}
	builtinNegative = []string{
		"not interested", "no thanks", "no thank you", "unsubscribe", "stop",
		"remove me", "spam", "do not contact", "don't contact", "not a fit",
	}
	builtinMeeting = []string{
		"meeting", "call", "demo", "schedule", "discuss", "calendar",
		"availability", "zoom", "meet",
	}
	builtinPricing = []string{
		"price", "prices", "pricing", "cost", "costs", "budget", "quote",
		"how much",
	}
	builtinUnsubscribe = []string{
		"unsubscribe", "opt out", "remove me", "stop emailing", "take me off",
	}
)

// Classifier matches reply content against compiled phrase lexicons.
// The zero value is not usable; construct with New.
type Classifier struct {
	positive    *lexicon
	negative    *lexicon
	meeting     *lexicon
	pricing     *lexicon
	unsubscribe *lexicon
}

// New creates a classifier with the built-in lexicons.
func New() *Classifier {
	return fromTerms(builtinPositive, builtinNegative, builtinMeeting, builtinPricing, builtinUnsubscribe)
}

func fromTerms(positive, negative, meeting, pricing, unsubscribe []string) *Classifier {
	return &Classifier{
		positive:    compile(positive),
		negative:    compile(negative),
		meeting:     compile(meeting),
		pricing:     compile(pricing),
		unsubscribe: compile(unsubscribe),
	}
}

// Classify derives sentiment, intent, confidence, and a human-review flag
// from free-text content. It is total: empty content yields
// neutral/general_inquiry/medium/false.
func (c *Classifier) Classify(content string) Result {
	grams := ngrams(content)

	// Negative checked first so phrases like "not interested" are not
	// shadowed by their positive substring.
	sentiment := SentimentNeutral
	switch {
	case c.negative.matches(grams):
		sentiment = SentimentNegative
	case c.positive.matches(grams):
		sentiment = SentimentPositive
	}

	// Intent precedence: first match wins.
	intent := IntentGeneralInquiry
	switch {
	case c.meeting.matches(grams):
		intent = IntentMeetingRequest
	case c.pricing.matches(grams):
		intent = IntentPricingInquiry
	case c.unsubscribe.matches(grams):
		intent = IntentUnsubscribeRequest
	case sentiment == SentimentPositive:
		intent = IntentInterested
	case sentiment == SentimentNegative:
		intent = IntentNotInterested
	}

	confidence := ConfidenceMedium
	if sentiment != SentimentNeutral {
		confidence = ConfidenceHigh
	}

	return Result{
		Sentiment:        sentiment,
		Intent:           intent,
		Confidence:       confidence,
		NeedsHumanReview: sentiment == SentimentPositive || intent == IntentMeetingRequest,
	}
}

// lexicon is a compiled set of lowercase phrases keyed for n-gram lookup.
type lexicon struct {
	phrases map[string]struct{}
	maxLen  int
}

func compile(terms []string) *lexicon {
	l := &lexicon{phrases: make(map[string]struct{}, len(terms))}
	for _, t := range terms {
		norm := strings.Join(tokenize(t), " ")
		if norm == "" {
			continue
		}
		l.phrases[norm] = struct{}{}
		if n := len(strings.Fields(norm)); n > l.maxLen {
			l.maxLen = n
		}
	}
	return l
}

func (l *lexicon) matches(grams map[string]struct{}) bool {
	for g := range grams {
		if _, ok := l.phrases[g]; ok {
			return true
		}
	}
	return false
}

// maxGram bounds the n-gram window; no built-in phrase exceeds three words.
const maxGram = 3

// ngrams tokenizes content and returns the set of 1..maxGram word grams.
func ngrams(content string) map[string]struct{} {
	words := tokenize(content)
	grams := make(map[string]struct{}, len(words)*maxGram)
	for i := range words {
		for n := 1; n <= maxGram && i+n <= len(words); n++ {
			grams[strings.Join(words[i:i+n], " ")] = struct{}{}
		}
	}
	return grams
}

// tokenize lowercases and splits content into words, stripping punctuation
// so "call?" and "call" compare equal. Intra-word apostrophes are kept.
func tokenize(content string) []string {
	lower := strings.ToLower(content)
	return strings.FieldsFunc(lower, func(r rune) bool {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'' {
			return false
		}
		return true
	})
}
