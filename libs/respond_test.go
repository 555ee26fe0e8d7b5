package libs

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestGenerateReplyPassesThroughModelText(t *testing.T) {
	log := zap.NewNop().Sugar()
	got := GenerateReply(context.Background(), fakeGenerator{out: "You've carried a lot this week."}, "prompt", log)
	if got != "You've carried a lot this week." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestGenerateReplyFallsBackOnError(t *testing.T) {
	log := zap.NewNop().Sugar()
	got := GenerateReply(context.Background(), fakeGenerator{err: errGatewayDown}, "prompt", log)
	if got != FallbackReply {
		t.Fatalf("expected fallback reply, got %q", got)
	}
}

func TestGenerateReplyFallsBackOnEmptyText(t *testing.T) {
	log := zap.NewNop().Sugar()
	for _, out := range []string{"", "   \n"} {
		if got := GenerateReply(context.Background(), fakeGenerator{out: out}, "prompt", log); got != FallbackReply {
			t.Fatalf("expected fallback for %q, got %q", out, got)
		}
	}
}
