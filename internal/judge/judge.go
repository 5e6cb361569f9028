package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mvlatkovic/betmixer/internal/domain"
)

// Completer is the single chat call the judge depends on.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Verdict is the JSON payload the model is asked to return for one leg.
type Verdict struct {
	Pick       string `json:"pick"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

const maxInFlight = 3

const systemPrompt = `You are a football betting analyst. You review one candidate bet at a time.
Respond with a single JSON object: {"pick": "<market code or SKIP>", "confidence": <0-100>, "reasoning": "<one sentence>"}.
Return pick "SKIP" when the bet looks unsafe. Do not add any text outside the JSON object.`

// Judge vets scored legs with a chat model. Calls run with bounded
// concurrency; each leg is judged independently so one bad response never
// poisons the batch.
type Judge struct {
	client        Completer
	minConfidence int
	logger        *slog.Logger
}

// New builds a Judge. minConfidence below which a verdict drops the leg;
// zero falls back to 62.
func New(client Completer, minConfidence int, logger *slog.Logger) *Judge {
	if minConfidence == 0 {
		minConfidence = 62
	}
	return &Judge{
		client:        client,
		minConfidence: minConfidence,
		logger:        logger.With(slog.String("component", "judge")),
	}
}

// JudgeLegs returns the subset of legs the model approves, preserving
// input order. A failed call, an unparsable response, a SKIP pick, or a
// confidence below the floor removes the leg; none of these surfaces as
// an error.
func (j *Judge) JudgeLegs(ctx context.Context, legs []domain.Leg) []domain.Leg {
	keep := make([]bool, len(legs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)
	for i := range legs {
		i := i
		g.Go(func() error {
			ok := j.judgeOne(gctx, legs[i])
			mu.Lock()
			keep[i] = ok
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	approved := make([]domain.Leg, 0, len(legs))
	for i, leg := range legs {
		if keep[i] {
			approved = append(approved, leg)
		}
	}

	j.logger.InfoContext(ctx, "judging completed",
		slog.Int("candidates", len(legs)),
		slog.Int("approved", len(approved)),
	)
	return approved
}

func (j *Judge) judgeOne(ctx context.Context, leg domain.Leg) bool {
	raw, err := j.client.Complete(ctx, systemPrompt, renderLeg(leg))
	if err != nil {
		j.logger.WarnContext(ctx, "judge call failed, dropping leg",
			slog.Int64("fixture_id", leg.FixtureID),
			slog.String("market", leg.Market),
			slog.String("error", err.Error()),
		)
		return false
	}

	verdict, err := parseVerdict(raw)
	if err != nil {
		j.logger.WarnContext(ctx, "unparsable verdict, dropping leg",
			slog.Int64("fixture_id", leg.FixtureID),
			slog.String("market", leg.Market),
			slog.String("error", err.Error()),
		)
		return false
	}

	if strings.EqualFold(verdict.Pick, "SKIP") {
		return false
	}
	if verdict.Confidence < j.minConfidence {
		return false
	}
	return true
}

// renderLeg formats one candidate as the user message.
func renderLeg(leg domain.Leg) string {
	return fmt.Sprintf(
		"Match: %s. Market: %s. Odd: %.2f. Model confidence: %d. League weight: %g. Notes: %s",
		leg.Match(), leg.Market, leg.Odd, leg.Confidence, leg.Meta.LeagueWeight, leg.Reason,
	)
}

// parseVerdict tolerates the decoration chat models wrap around JSON:
// markdown code fences and leading or trailing prose around the object.
func parseVerdict(raw string) (Verdict, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if extracted, ok := extractJSON(cleaned); ok {
		cleaned = extracted
	}

	var v Verdict
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return Verdict{}, fmt.Errorf("judge: decode verdict: %w", err)
	}
	if v.Pick == "" {
		return Verdict{}, fmt.Errorf("judge: verdict missing pick")
	}
	return v, nil
}

// extractJSON returns the first balanced top-level JSON object in s.
func extractJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
