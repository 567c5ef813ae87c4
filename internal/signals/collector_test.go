package signals

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"outreach_backend/internal/classifier"
	"outreach_backend/internal/events"
	"outreach_backend/internal/prospects/domain"
	"outreach_backend/internal/prospects/repository"
	"outreach_backend/platform/apperr"
	"outreach_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	prospect repository.Prospect
	seen     map[string]bool
	inserted []repository.InsertEventParams
	updates  []struct {
		Temp   domain.Temperature
		Status domain.LeadStatus
	}
}

func (f *fakeStore) GetByID(_ context.Context, id, _ uuid.UUID) (repository.Prospect, error) {
	if id != f.prospect.ID {
		return repository.Prospect{}, repository.ErrNotFound
	}
	return f.prospect, nil
}

func (f *fakeStore) InsertEvent(_ context.Context, params repository.InsertEventParams) (bool, error) {
	key := params.TenantID.String() + params.ProspectID.String() + params.ExternalID
	if f.seen[key] {
		return false, nil
	}
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	f.seen[key] = true
	f.inserted = append(f.inserted, params)
	return true, nil
}

func (f *fakeStore) UpdateEngagementFields(_ context.Context, _, _ uuid.UUID, temp domain.Temperature, status domain.LeadStatus) error {
	f.updates = append(f.updates, struct {
		Temp   domain.Temperature
		Status domain.LeadStatus
	}{temp, status})
	f.prospect.Temperature = temp
	f.prospect.LeadStatus = status
	return nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event)          { b.published = append(b.published, e) }
func (b *recordingBus) PublishSync(_ context.Context, e events.Event) error {
	b.published = append(b.published, e)
	return nil
}
func (b *recordingBus) Subscribe(string, events.Handler) {}

type countingEnqueuer struct {
	calls int
}

func (e *countingEnqueuer) EnqueueRecompute(context.Context, uuid.UUID, uuid.UUID) error {
	e.calls++
	return nil
}

func newTestCollector(store *fakeStore, bus *recordingBus, enq *countingEnqueuer) *Collector {
	return NewCollector(store, classifier.New(), bus, enq, logger.New("development"))
}

func occurred() *time.Time {
	ts := time.Now().Add(-time.Minute)
	return &ts
}

func testProspect() repository.Prospect {
	return repository.Prospect{
		ID:          uuid.New(),
		TenantID:    uuid.New(),
		CompanyName: "Acme Manufacturing",
		Temperature: domain.TemperatureCold,
		LeadStatus:  domain.StatusNew,
		Stage:       domain.StageAnalyzed,
	}
}

func TestRecord_RejectsUnknownKind(t *testing.T) {
	store := &fakeStore{prospect: testProspect()}
	collector := newTestCollector(store, &recordingBus{}, &countingEnqueuer{})

	_, err := collector.Record(context.Background(), store.prospect.TenantID, EventRequest{
		ProspectID: store.prospect.ID,
		ExternalID: "evt-1",
		Kind:       "forwarded",
		OccurredAt: occurred(),
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.inserted) != 0 {
		t.Fatal("rejected event must not be stored")
	}
}

func TestRecord_UnknownProspect(t *testing.T) {
	store := &fakeStore{prospect: testProspect()}
	collector := newTestCollector(store, &recordingBus{}, &countingEnqueuer{})

	_, err := collector.Record(context.Background(), store.prospect.TenantID, EventRequest{
		ProspectID: uuid.New(),
		ExternalID: "evt-1",
		Kind:       "opened",
		OccurredAt: occurred(),
	})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRecord_IdempotentReplay(t *testing.T) {
	store := &fakeStore{prospect: testProspect()}
	bus := &recordingBus{}
	enq := &countingEnqueuer{}
	collector := newTestCollector(store, bus, enq)

	req := EventRequest{
		ProspectID: store.prospect.ID,
		ExternalID: "evt-42",
		Kind:       "opened",
		OccurredAt: occurred(),
	}

	first, err := collector.Record(context.Background(), store.prospect.TenantID, req)
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if !first.Recorded || first.Duplicate {
		t.Fatalf("first submission should record: %+v", first)
	}

	second, err := collector.Record(context.Background(), store.prospect.TenantID, req)
	if err != nil {
		t.Fatalf("replay must not error: %v", err)
	}
	if second.Recorded || !second.Duplicate {
		t.Fatalf("replay should be a duplicate no-op: %+v", second)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("expected exactly one stored event, got %d", len(store.inserted))
	}
	if enq.calls != 1 {
		t.Fatalf("duplicate must not trigger a recompute, got %d calls", enq.calls)
	}
}

func TestRecord_PositiveReplyClassifiesAndHeats(t *testing.T) {
	store := &fakeStore{prospect: testProspect()}
	bus := &recordingBus{}
	collector := newTestCollector(store, bus, &countingEnqueuer{})

	result, err := collector.Record(context.Background(), store.prospect.TenantID, EventRequest{
		ProspectID: store.prospect.ID,
		ExternalID: "evt-reply-1",
		Kind:       "replied",
		OccurredAt: occurred(),
		Content:    "<p>This sounds great, can we schedule a call?</p>",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if result.Classification == nil {
		t.Fatal("reply should carry a classification")
	}
	if result.Classification.Sentiment != classifier.SentimentPositive {
		t.Fatalf("expected positive sentiment, got %s", result.Classification.Sentiment)
	}
	if result.Classification.Intent != classifier.IntentMeetingRequest {
		t.Fatalf("expected meeting intent, got %s", result.Classification.Intent)
	}

	if len(store.updates) != 1 {
		t.Fatalf("expected one lifecycle update, got %d", len(store.updates))
	}
	if store.updates[0].Temp != domain.TemperatureHot || store.updates[0].Status != domain.StatusReplied {
		t.Fatalf("expected hot/replied, got %s/%s", store.updates[0].Temp, store.updates[0].Status)
	}

	stored := store.inserted[0]
	if stored.ReplyText == nil || *stored.ReplyText != "This sounds great, can we schedule a call?" {
		t.Fatalf("reply text should be sanitized, got %v", stored.ReplyText)
	}

	var classified bool
	for _, e := range bus.published {
		if e.EventName() == "signals.reply.classified" {
			classified = true
		}
	}
	if !classified {
		t.Fatal("expected a reply classified event on the bus")
	}
}

func TestRecord_NegativeReplyUnsubscribes(t *testing.T) {
	store := &fakeStore{prospect: testProspect()}
	store.prospect.Temperature = domain.TemperatureHot
	collector := newTestCollector(store, &recordingBus{}, &countingEnqueuer{})

	_, err := collector.Record(context.Background(), store.prospect.TenantID, EventRequest{
		ProspectID: store.prospect.ID,
		ExternalID: "evt-reply-2",
		Kind:       "replied",
		OccurredAt: occurred(),
		Content:    "Not interested, please remove me from your list.",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if store.prospect.Temperature != domain.TemperatureCold {
		t.Fatalf("negative reply should cool the prospect, got %s", store.prospect.Temperature)
	}
	if store.prospect.LeadStatus != domain.StatusUnsubscribed {
		t.Fatalf("expected unsubscribed, got %s", store.prospect.LeadStatus)
	}
}

func TestRecord_RejectsMissingTimestamp(t *testing.T) {
	store := &fakeStore{prospect: testProspect()}
	collector := newTestCollector(store, &recordingBus{}, &countingEnqueuer{})

	_, err := collector.Record(context.Background(), store.prospect.TenantID, EventRequest{
		ProspectID: store.prospect.ID,
		ExternalID: "evt-5",
		Kind:       "sent",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for missing timestamp, got %v", err)
	}
	if len(store.inserted) != 0 {
		t.Fatal("event without a timestamp must not be stored")
	}
}

func TestRecord_ReplySnippetKeepsRunesIntact(t *testing.T) {
	store := &fakeStore{prospect: testProspect()}
	bus := &recordingBus{}
	collector := newTestCollector(store, bus, &countingEnqueuer{})

	if _, err := collector.Record(context.Background(), store.prospect.TenantID, EventRequest{
		ProspectID: store.prospect.ID,
		ExternalID: "evt-reply-3",
		Kind:       "replied",
		OccurredAt: occurred(),
		Content:    strings.Repeat("Héél interessant. ", 20),
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	var found bool
	for _, e := range bus.published {
		rc, ok := e.(events.ReplyClassified)
		if !ok {
			continue
		}
		found = true
		if len(rc.Snippet) > 200 {
			t.Fatalf("snippet should be capped at 200 bytes, got %d", len(rc.Snippet))
		}
		if !utf8.ValidString(rc.Snippet) {
			t.Fatalf("snippet must not split a rune: %q", rc.Snippet)
		}
	}
	if !found {
		t.Fatal("expected a reply classified event on the bus")
	}
}
