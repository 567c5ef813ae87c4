package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

type stubSchedulerConfig struct {
	redisURL string
}

func (c stubSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c stubSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c stubSchedulerConfig) GetAsynqQueueName() string { return "test" }
func (c stubSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestNewClient_RequiresRedisURL(t *testing.T) {
	if _, err := NewClient(stubSchedulerConfig{}); err == nil {
		t.Fatal("expected error for missing redis url")
	}
}

func TestEnqueueRecompute(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(stubSchedulerConfig{redisURL: "redis://" + srv.Addr()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	tenantID := uuid.New()
	prospectID := uuid.New()

	if err := client.EnqueueRecompute(context.Background(), tenantID, prospectID); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	// A second enqueue for the same prospect collapses into the pending task.
	if err := client.EnqueueRecompute(context.Background(), tenantID, prospectID); err != nil {
		t.Fatalf("duplicate enqueue should be a no-op, got %v", err)
	}
}

func TestProspectRecomputePayloadRoundTrip(t *testing.T) {
	payload := ProspectRecomputePayload{
		TenantID:   uuid.NewString(),
		ProspectID: uuid.NewString(),
	}

	task, err := NewProspectRecomputeTask(payload)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Type() != TaskProspectRecompute {
		t.Fatalf("unexpected task type %s", task.Type())
	}

	parsed, err := ParseProspectRecomputePayload(task)
	if err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if parsed != payload {
		t.Fatalf("payload mismatch: %+v vs %+v", parsed, payload)
	}
}
