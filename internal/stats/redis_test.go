package stats

import (
	"context"
	"testing"
	"time"
)

func TestStatusClass(t *testing.T) {
	cases := map[int]string{200: "2xx", 204: "2xx", 403: "4xx", 413: "4xx", 503: "5xx", 0: "other", 700: "other"}
	for status, want := range cases {
		if got := statusClass(status); got != want {
			t.Fatalf("statusClass(%d) = %q, want %q", status, got, want)
		}
	}
}

func TestRedisRecorder_NilClientIsNoop(t *testing.T) {
	var r *RedisRecorder
	if err := r.Record(context.Background(), Event{Group: "auth"}); err != nil {
		t.Fatalf("nil recorder must be a no-op, got %v", err)
	}

	r = NewRedisRecorder(nil, WithPrefix(":custom:"), WithTTL(time.Minute))
	if r.prefix != "custom" || r.ttl != time.Minute {
		t.Fatalf("options not applied: prefix=%q ttl=%s", r.prefix, r.ttl)
	}
	if err := r.Record(context.Background(), Event{}); err != nil {
		t.Fatalf("recorder without client must be a no-op, got %v", err)
	}
}

func TestNop(t *testing.T) {
	var rec Recorder = Nop{}
	if err := rec.Record(context.Background(), Event{Group: "events", Status: 200}); err != nil {
		t.Fatalf("Nop.Record: %v", err)
	}
}
