package taskengine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/inkline/inkline-api/internal/domain"
	"github.com/inkline/inkline-api/internal/domain/priority"
	"github.com/inkline/inkline-api/internal/platform/logger"
)

// WeeklySnapshot implements Service.WeeklySnapshot. The week window is
// ISO style, Monday through Sunday, in the engine clock's location.
func (e *engine) WeeklySnapshot(ctx context.Context, providerID uuid.UUID) (*Snapshot, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	now := e.clock.Now()
	weekStart, weekEnd := priority.WeekBounds(now)

	completions, err := e.completions.ListByProviderBetween(ctx, providerID, weekStart, weekEnd)
	if err != nil {
		log.Error("failed to load weekly completions",
			slog.String("provider_id", providerID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load weekly completions: %w", err)
	}

	var (
		totalSecs    int64
		tierCounts   = map[domain.TaskTier]int{}
		tierSecs     = map[domain.TaskTier]int64{}
		responseN    int
		responseSecs int64
	)
	for _, c := range completions {
		totalSecs += c.TimeToCompleteSecs
		tierCounts[c.TaskTier]++
		tierSecs[c.TaskTier] += c.TimeToCompleteSecs

		// Response speed is measured only on answering new business.
		if c.TaskType == domain.TaskTypeNewConsultation {
			responseN++
			responseSecs += c.TimeToCompleteSecs
		}
	}

	total := len(completions)

	tiers := make(map[domain.TaskTier]TierStats, len(tierCounts))
	for tier, count := range tierCounts {
		tiers[tier] = TierStats{
			Completed:            count,
			AvgCompletionSeconds: tierSecs[tier] / int64(count),
		}
	}

	var avgSecs int64
	if total > 0 {
		avgSecs = totalSecs / int64(total)
	}

	var avgResponse time.Duration
	var avgResponseSecs int64
	hasResponse := responseN > 0
	if hasResponse {
		avgResponseSecs = responseSecs / int64(responseN)
		avgResponse = time.Duration(avgResponseSecs) * time.Second
	}

	score := priority.EfficiencyScore(total, tierCounts[domain.TaskTier1], avgResponse, hasResponse)
	rating := priority.RatingForScore(score)

	snapshot := &Snapshot{
		WeekStart:                      weekStart,
		WeekEnd:                        weekEnd,
		TotalCompleted:                 total,
		Tiers:                          tiers,
		AvgCompletionSeconds:           avgSecs,
		AvgConsultationResponseSeconds: avgResponseSecs,
		ResponseTimeVsBenchmark:        priority.ResponseBenchmarkRatio(avgResponse),
		EfficiencyScore:                score,
		Rating:                         rating,
	}
	snapshot.Insights = buildInsights(snapshot, avgResponse, hasResponse)

	return snapshot, nil
}

// buildInsights derives up to three observations from the snapshot's
// metrics, in a fixed precedence order so identical weeks produce
// identical text.
func buildInsights(s *Snapshot, avgResponse time.Duration, hasResponse bool) []string {
	var insights []string
	add := func(msg string) {
		if len(insights) < 3 {
			insights = append(insights, msg)
		}
	}

	if s.TotalCompleted == 0 {
		add("No tasks completed this week yet. Knock out a couple of quick ones to get the week moving.")
		return insights
	}

	if hasResponse {
		switch {
		case avgResponse < priority.EliteResponseTime:
			add("You answer new consultations in under 15 minutes. That speed wins bookings.")
		case avgResponse < priority.ExcellentResponseTime:
			add("You answer new consultations within the hour. Clients notice.")
		case avgResponse > priority.AverageResponseTime:
			add("New consultations waited over a day on average. Faster replies convert far better.")
		}
	}

	if tier1 := s.Tiers[domain.TaskTier1].Completed; tier1 > 0 {
		add(fmt.Sprintf("You closed out %d revenue-critical tasks this week.", tier1))
	} else {
		add("No revenue-critical tasks completed this week. Deposits and confirmations protect your income first.")
	}

	switch s.Rating {
	case priority.RatingElite:
		add("Elite week. Keep doing exactly this.")
	case priority.RatingExcellent:
		add("Excellent week overall.")
	case priority.RatingGood:
		add("Solid week. A few more completions pushes you into the top band.")
	default:
		add(fmt.Sprintf("You completed %d tasks this week. Steady daily follow-through lifts the score fastest.", s.TotalCompleted))
	}

	return insights
}
