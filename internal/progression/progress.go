package progression

import (
	"math"
	"time"

	"github.com/google/uuid"

	"actualize-backend/internal/model"
)

// Progress is the derived completion of an application.
type Progress struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// TimeRemaining splits the time left before a deadline.
type TimeRemaining struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Expired bool `json:"expired,omitempty"`
}

// ComputeProgress counts the submitted rounds that still belong to the process.
func ComputeProgress(app *model.Application, process *model.Process) Progress {
	total := len(process.Rounds)
	current := submittedCount(app, process)

	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(current) / float64(total) * 100))
	}
	return Progress{Current: current, Total: total, Percentage: pct}
}

// ComputeTimeRemaining returns the whole days, hours and minutes between now and deadline.
func ComputeTimeRemaining(deadline, now time.Time) TimeRemaining {
	diff := deadline.Sub(now)
	if diff <= 0 {
		return TimeRemaining{Expired: true}
	}
	return TimeRemaining{
		Days:    int(diff / (24 * time.Hour)),
		Hours:   int((diff % (24 * time.Hour)) / time.Hour),
		Minutes: int((diff % time.Hour) / time.Minute),
	}
}

func submittedCount(app *model.Application, process *model.Process) int {
	progress := app.RoundMap()
	count := 0
	for i := range process.Rounds {
		rp, ok := progress[process.Rounds[i].ID.String()]
		if ok && rp.Status == model.RoundStatusSubmitted {
			count++
		}
	}
	return count
}

// nextRound returns the index of the first round in process order that is not submitted,
// or -1 when all of them are.
func nextRound(app *model.Application, process *model.Process) int {
	progress := app.RoundMap()
	for i := range process.Rounds {
		rp, ok := progress[process.Rounds[i].ID.String()]
		if !ok || rp.Status != model.RoundStatusSubmitted {
			return i
		}
	}
	return -1
}

// CurrentRound returns the progress entry of the round at the application's
// current index, if the candidate has touched it.
func CurrentRound(app *model.Application, process *model.Process) *model.RoundProgress {
	if app.CurrentRoundIndex == nil {
		return nil
	}
	idx := *app.CurrentRoundIndex
	if idx < 0 || idx >= len(process.Rounds) {
		return nil
	}
	return app.RoundMap()[process.Rounds[idx].ID.String()]
}

// ExpiredTimelines counts round entries whose declared deadline has passed
// without the round being submitted.
func ExpiredTimelines(app *model.Application, now time.Time) int {
	count := 0
	for i := range app.Rounds {
		rp := &app.Rounds[i]
		if rp.Status != model.RoundStatusSubmitted && rp.TimelineDate != nil && !rp.TimelineDate.After(now) {
			count++
		}
	}
	return count
}

// Summary is an application enriched with its derived progress, as admins see it.
type Summary struct {
	Application        *model.Application   `json:"application"`
	Candidate          *model.Candidate     `json:"candidate,omitempty"`
	Progress           Progress             `json:"progress"`
	CurrentRound       *model.RoundProgress `json:"currentRound"`
	TimeRemaining      *TimeRemaining       `json:"timeRemaining"`
	HasExpiredTimeline bool                 `json:"hasExpiredTimeline"`
	ExpiredRoundsCount int                  `json:"expiredRoundsCount"`
}

// Summarize derives the admin view of app. The candidate is included when it was loaded.
func Summarize(app *model.Application, process *model.Process, now time.Time) Summary {
	s := Summary{
		Application:        app,
		Progress:           ComputeProgress(app, process),
		CurrentRound:       CurrentRound(app, process),
		ExpiredRoundsCount: ExpiredTimelines(app, now),
	}
	if app.Candidate.ID != uuid.Nil {
		candidate := app.Candidate
		s.Candidate = &candidate
	}
	if s.CurrentRound != nil && s.CurrentRound.TimelineDate != nil {
		remaining := ComputeTimeRemaining(*s.CurrentRound.TimelineDate, now)
		s.TimeRemaining = &remaining
		s.HasExpiredTimeline = remaining.Expired
	}
	return s
}
