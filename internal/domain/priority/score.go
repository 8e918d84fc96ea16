package priority

import "time"

// Scoring formulas, one per task type. Each takes the already-computed
// age or deadline distance so the functions stay pure; generators are
// responsible for the trigger predicates (status filters, windows,
// suppression floors). Band thresholds are upper-inclusive: an age of
// exactly 24 hours lands in the 24-hour band, not the next one down.

// ScoreNewConsultation scores a pending consultation by its age, with
// the viewed cap applied as a post-adjustment.
func ScoreNewConsultation(age time.Duration, viewed bool, p *Params) int {
	var score int
	switch {
	case age <= time.Hour:
		score = 950
	case age <= 4*time.Hour:
		score = 850
	case age <= 24*time.Hour:
		score = 650
	case age <= 48*time.Hour:
		score = 450
	default:
		score = 300 - 2*int(age.Hours())
		if score < 100 {
			score = 100
		}
	}
	return applyViewedCap(score, viewed, age, p)
}

// applyViewedCap caps consultations the provider has opened but left
// unanswered past the grace period. Kept as a named step, separate
// from the base bands, so it can be tested and tuned independently.
func applyViewedCap(score int, viewed bool, age time.Duration, p *Params) int {
	if viewed && age > p.ViewedCapAfter && score > p.ViewedCapScore {
		return p.ViewedCapScore
	}
	return score
}

// ScoreDepositCollection scores an unpaid deposit by how soon the
// appointment starts, with the January boost applied afterwards.
func ScoreDepositCollection(untilStart time.Duration, month time.Month, p *Params) int {
	var score int
	switch {
	case untilStart <= 24*time.Hour:
		score = 1000
	case untilStart <= 48*time.Hour:
		score = 900
	case untilStart <= 72*time.Hour:
		score = 750
	case untilStart <= 168*time.Hour:
		score = 550
	default:
		score = 400
	}
	return ApplyJanuaryBoost(score, month, p)
}

// ApplyJanuaryBoost inflates a score during January, when no-show risk
// peaks, clamped to MaxScore. A named post-adjustment like the viewed
// cap; only deposit collection composes it today.
func ApplyJanuaryBoost(score int, month time.Month, p *Params) int {
	if month != time.January {
		return score
	}
	boosted := int(float64(score) * p.JanuaryBoostFactor)
	if boosted > p.MaxScore {
		boosted = p.MaxScore
	}
	return boosted
}

// ScoreAppointmentConfirmation scores an unsent confirmation by how
// soon the appointment starts.
func ScoreAppointmentConfirmation(untilStart time.Duration) int {
	switch {
	case untilStart <= 12*time.Hour:
		return 980
	case untilStart <= 24*time.Hour:
		return 880
	default:
		return 680
	}
}

// ScoreFollowUpResponded scores a responded-but-unscheduled
// consultation by time since the last update. The caller suppresses
// candidates younger than Params.FollowUpMinAge.
func ScoreFollowUpResponded(sinceUpdate time.Duration) int {
	switch {
	case sinceUpdate <= 48*time.Hour:
		return 650
	case sinceUpdate <= 72*time.Hour:
		return 550
	case sinceUpdate <= 120*time.Hour:
		return 450
	case sinceUpdate <= 168*time.Hour:
		return 350
	default:
		return 250
	}
}

// ScoreStaleConversation scores a thread where the provider spoke last
// by time since that message. The caller applies the two-day floor.
func ScoreStaleConversation(sinceLastMessage time.Duration) int {
	switch {
	case sinceLastMessage <= 72*time.Hour:
		return 600
	case sinceLastMessage <= 96*time.Hour:
		return 500
	case sinceLastMessage <= 144*time.Hour:
		return 400
	case sinceLastMessage <= 192*time.Hour:
		return 300
	default:
		// Constant tail; the 100 floor only binds if the tail is ever
		// made age-decaying like the consultation formula.
		return 200
	}
}

// ScoreBirthdayOutreach scores an upcoming client birthday by days
// until the occasion (0 = today).
func ScoreBirthdayOutreach(daysUntil int) int {
	switch {
	case daysUntil < 1:
		return 400
	case daysUntil < 3:
		return 350
	default:
		return 280
	}
}

// ScoreTattooAnniversary scores an upcoming tattoo anniversary. First
// anniversaries outrank later ones.
func ScoreTattooAnniversary(yearsSince int) int {
	if yearsSince == 1 {
		return 420
	}
	return 320
}

// ScoreHealedPhotoRequest scores a healed-photo request by time since
// the session ended. The caller restricts candidates to the 14-30 day
// window.
func ScoreHealedPhotoRequest(sinceEnd time.Duration) int {
	switch {
	case sinceEnd <= 18*24*time.Hour:
		return 350
	case sinceEnd <= 25*24*time.Hour:
		return 300
	default:
		return 250
	}
}

// ScorePostAppointmentThankyou is a fixed score for same-day thank-you
// notes after a completed session.
func ScorePostAppointmentThankyou() int {
	return 400
}

// TimeMultiplier is the reusable deadline-proximity factor: overdue
// work is halved (it has likely been handled out of band), imminent
// deadlines are doubled, distant ones damped. Only deposit collection
// composes a deadline adjustment today, but the policy surface is kept
// public for future generators.
func TimeMultiplier(untilDeadline time.Duration) float64 {
	switch {
	case untilDeadline < 0:
		return 0.5
	case untilDeadline < 6*time.Hour:
		return 2.0
	case untilDeadline < 24*time.Hour:
		return 1.5
	case untilDeadline < 48*time.Hour:
		return 1.2
	case untilDeadline < 72*time.Hour:
		return 1.0
	default:
		return 0.8
	}
}

// ClampScore bounds a score to [0, Params.MaxScore]. The aggregation
// driver applies this uniformly as defense in depth; the per-generator
// formulas already stay inside the range by construction.
func ClampScore(score int, p *Params) int {
	if score < 0 {
		return 0
	}
	if score > p.MaxScore {
		return p.MaxScore
	}
	return score
}
