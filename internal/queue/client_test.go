package queue

import (
	"testing"

	"github.com/vms-next/internal/config"
)

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("disabled client should report disabled")
	}
	if err := client.EnqueueOtpDeliver(OtpDeliverPayload{Contact: "9876543210", ContactType: "phone", Code: "1234"}); err != nil {
		t.Fatalf("disabled enqueue should be noop, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close should be noop, got %v", err)
	}
}

func TestBuildServerConfigKeepsBuiltinQueues(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{
		Host:   " redis.internal ",
		Port:   6380,
		DB:     2,
		Queues: map[string]int{"reports": 1, "": 4, "broken": 0},
	})
	if opt.Addr != "redis.internal:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != defaultConcurrency {
		t.Fatalf("default concurrency want %d got %d", defaultConcurrency, cfg.Concurrency)
	}
	for _, name := range []string{"reports", CriticalQueue, DefaultQueue} {
		if cfg.Queues[name] <= 0 {
			t.Fatalf("queue %s should be served: %v", name, cfg.Queues)
		}
	}
	if len(cfg.Queues) != 3 {
		t.Fatalf("blank or zero weight queues should be dropped: %v", cfg.Queues)
	}
}

func TestTaskDefaultsCoverEveryTask(t *testing.T) {
	for _, taskType := range []string{TaskOtpDeliver, TaskVisitorReviewEmail, TaskVisitorApprovedEmail, TaskVisitorRejectedEmail, TaskAppointmentQRCodeMail} {
		if len(taskDefaults[taskType]) == 0 {
			t.Fatalf("task %s has no default options", taskType)
		}
	}
}
