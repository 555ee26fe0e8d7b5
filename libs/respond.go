package libs

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// FallbackReply is returned whenever reply generation fails or comes back
// empty. The pipeline always answers with some assistant text.
const FallbackReply = "I'm here to work with you on this. Could you tell me more about what you're experiencing?"

// GenerateReply runs the response-generation stage: a single attempt, no
// retries, fallback on any failure.
func GenerateReply(ctx context.Context, gen Generator, prompt string, log *zap.SugaredLogger) string {
	raw, err := gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Warnw("reply generation failed, using fallback", "error", err)
		return FallbackReply
	}
	if strings.TrimSpace(raw) == "" {
		log.Warnw("reply generation returned empty text, using fallback")
		return FallbackReply
	}
	return raw
}
