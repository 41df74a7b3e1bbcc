package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/blockbuddy/lead-console/internal/ai"
	apperrors "github.com/blockbuddy/lead-console/pkg/util"
)

// User-facing strings for the generative endpoints.
const (
	MsgNeedsTooShort    = "Please provide a more detailed description of your needs."
	MsgNoRequestText    = "No request text provided."
	MsgIdentifyFailed   = "Failed to identify protocol. Please try again."
	MsgSummarizeFailed  = "Failed to generate summary. Please try again."
	identifyCachePrefix = "ai:identify:"
)

// AIService fronts the generative-text collaborator for the HTTP surface.
type AIService struct {
	generator ai.Generator
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// AIDependencies bundles requirements for the AI service.
type AIDependencies struct {
	Generator ai.Generator
	// Cache is optional; nil disables result caching.
	Cache    *redis.Client
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// NewAIService constructs the service.
func NewAIService(deps AIDependencies) *AIService {
	return &AIService{
		generator: deps.Generator,
		cache:     deps.Cache,
		cacheTTL:  deps.CacheTTL,
		logger:    deps.Logger,
	}
}

// IdentifyProtocol recommends a blockchain protocol for the described needs.
// Results are cached per needs text since the prompt is deterministic enough
// for repeat visitors.
func (s *AIService) IdentifyProtocol(ctx context.Context, needs string) (*ai.ProtocolRecommendation, error) {
	needs = strings.TrimSpace(needs)
	if len(needs) < 10 {
		return nil, apperrors.NewValidationError(MsgNeedsTooShort, nil)
	}

	cacheKey := identifyCachePrefix + hashText(needs)
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		var rec ai.ProtocolRecommendation
		if err := json.Unmarshal(cached, &rec); err == nil && rec.Protocol != "" {
			return &rec, nil
		}
	}

	raw, err := s.generator.Generate(ctx, ai.PromptIdentifyProtocol, map[string]string{"needs": needs})
	if err != nil {
		s.logger.Error("protocol identification failed", zap.Error(err))
		return nil, apperrors.NewUnavailable(MsgIdentifyFailed)
	}

	var rec ai.ProtocolRecommendation
	if err := json.Unmarshal(raw, &rec); err != nil || rec.Protocol == "" || rec.Reason == "" {
		s.logger.Error("protocol identification returned malformed output", zap.Error(err))
		return nil, apperrors.NewUnavailable(MsgIdentifyFailed)
	}

	s.cacheSet(ctx, cacheKey, raw)
	return &rec, nil
}

// SummarizeRequest produces a triage summary of a support request's text.
func (s *AIService) SummarizeRequest(ctx context.Context, requestText string) (*ai.RequestSummary, error) {
	requestText = strings.TrimSpace(requestText)
	if requestText == "" {
		return nil, apperrors.NewValidationError(MsgNoRequestText, nil)
	}

	raw, err := s.generator.Generate(ctx, ai.PromptSummarizeRequest, map[string]string{"requestText": requestText})
	if err != nil {
		s.logger.Error("request summarization failed", zap.Error(err))
		return nil, apperrors.NewUnavailable(MsgSummarizeFailed)
	}

	var summary ai.RequestSummary
	if err := json.Unmarshal(raw, &summary); err != nil || summary.Summary == "" {
		s.logger.Error("request summarization returned malformed output", zap.Error(err))
		return nil, apperrors.NewUnavailable(MsgSummarizeFailed)
	}
	return &summary, nil
}

func (s *AIService) cacheGet(ctx context.Context, key string) []byte {
	if s.cache == nil || s.cacheTTL <= 0 {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	return raw
}

func (s *AIService) cacheSet(ctx context.Context, key string, raw []byte) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("ai cache write failed", zap.Error(err))
	}
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
