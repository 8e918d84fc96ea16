package priority

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScoreNewConsultation(t *testing.T) {
	t.Parallel()

	p := NewDefaultParams()

	tests := []struct {
		name     string
		age      time.Duration
		viewed   bool
		expected int
	}{
		{"thirty minutes old", 30 * time.Minute, false, 950},
		{"exactly one hour stays in top band", time.Hour, false, 950},
		{"three hours old", 3 * time.Hour, false, 850},
		{"exactly four hours stays in second band", 4 * time.Hour, false, 850},
		{"twenty hours old", 20 * time.Hour, false, 650},
		{"exactly twenty-four hours stays in third band", 24 * time.Hour, false, 650},
		{"forty hours old", 40 * time.Hour, false, 450},
		{"exactly forty-eight hours stays in fourth band", 48 * time.Hour, false, 450},
		{"sixty hours decays linearly", 60 * time.Hour, false, 300 - 2*60},
		{"very old consultation hits the floor", 200 * time.Hour, false, 100},
		{"viewed recently keeps its band", 30 * time.Minute, true, 950},
		{"viewed past grace period is capped", 3 * time.Hour, true, 700},
		{"viewed cap does not raise low scores", 40 * time.Hour, true, 450},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ScoreNewConsultation(tc.age, tc.viewed, p))
		})
	}
}

func TestScoreDepositCollection(t *testing.T) {
	t.Parallel()

	p := NewDefaultParams()

	tests := []struct {
		name       string
		untilStart time.Duration
		month      time.Month
		expected   int
	}{
		{"twenty hours out", 20 * time.Hour, time.June, 1000},
		{"exactly one day out", 24 * time.Hour, time.June, 1000},
		{"two days out", 40 * time.Hour, time.June, 900},
		{"three days out", 60 * time.Hour, time.June, 750},
		{"five days out", 120 * time.Hour, time.June, 550},
		{"twelve days out", 12 * 24 * time.Hour, time.June, 400},
		{"january boost inflates mid band", 60 * time.Hour, time.January, 900},
		{"january boost clamps to max", 20 * time.Hour, time.January, 1000},
		{"january boost on far band", 12 * 24 * time.Hour, time.January, 480},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ScoreDepositCollection(tc.untilStart, tc.month, p))
		})
	}
}

func TestScoreAppointmentConfirmation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		untilStart time.Duration
		expected   int
	}{
		{"six hours out", 6 * time.Hour, 980},
		{"exactly twelve hours", 12 * time.Hour, 980},
		{"eighteen hours out", 18 * time.Hour, 880},
		{"exactly twenty-four hours", 24 * time.Hour, 880},
		{"forty hours out", 40 * time.Hour, 680},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ScoreAppointmentConfirmation(tc.untilStart))
		})
	}
}

func TestScoreFollowUpResponded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		sinceUpdate time.Duration
		expected    int
	}{
		{"thirty hours since reply", 30 * time.Hour, 650},
		{"exactly two days", 48 * time.Hour, 650},
		{"sixty hours", 60 * time.Hour, 550},
		{"four days", 96 * time.Hour, 450},
		{"six days", 144 * time.Hour, 350},
		{"two weeks", 14 * 24 * time.Hour, 250},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ScoreFollowUpResponded(tc.sinceUpdate))
		})
	}
}

func TestScoreStaleConversation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sinceLast time.Duration
		expected  int
	}{
		{"three days quiet", 72 * time.Hour, 600},
		{"four days quiet", 96 * time.Hour, 500},
		{"six days quiet", 144 * time.Hour, 400},
		{"eight days quiet", 192 * time.Hour, 300},
		{"three weeks quiet", 21 * 24 * time.Hour, 200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, ScoreStaleConversation(tc.sinceLast))
		})
	}
}

func TestOccasionScores(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 400, ScoreBirthdayOutreach(0), "birthday today")
	assert.Equal(t, 350, ScoreBirthdayOutreach(2), "birthday in two days")
	assert.Equal(t, 280, ScoreBirthdayOutreach(5), "birthday later this week")

	assert.Equal(t, 420, ScoreTattooAnniversary(1), "first anniversary")
	assert.Equal(t, 320, ScoreTattooAnniversary(3), "later anniversary")

	assert.Equal(t, 350, ScoreHealedPhotoRequest(16*24*time.Hour))
	assert.Equal(t, 300, ScoreHealedPhotoRequest(20*24*time.Hour))
	assert.Equal(t, 250, ScoreHealedPhotoRequest(28*24*time.Hour))

	assert.Equal(t, 400, ScorePostAppointmentThankyou())
}

func TestTimeMultiplier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		untilDeadline time.Duration
		expected      float64
	}{
		{"overdue is halved", -2 * time.Hour, 0.5},
		{"imminent is doubled", 3 * time.Hour, 2.0},
		{"same day", 18 * time.Hour, 1.5},
		{"next day", 36 * time.Hour, 1.2},
		{"two to three days", 60 * time.Hour, 1.0},
		{"distant is damped", 5 * 24 * time.Hour, 0.8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.expected, TimeMultiplier(tc.untilDeadline), 0.0001)
		})
	}
}

func TestClampScore(t *testing.T) {
	t.Parallel()

	p := NewDefaultParams()

	assert.Equal(t, 0, ClampScore(-50, p))
	assert.Equal(t, 0, ClampScore(0, p))
	assert.Equal(t, 500, ClampScore(500, p))
	assert.Equal(t, 1000, ClampScore(1000, p))
	assert.Equal(t, 1000, ClampScore(1400, p))
}
