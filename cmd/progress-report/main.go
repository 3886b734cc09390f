// Command progress-report prints every application of a process with its computed progress.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"actualize-backend/internal/database"
	"actualize-backend/internal/progression"
	"actualize-backend/internal/repository"
)

func main() {
	rawID := flag.String("process", "", "id of the process to report on")
	flag.Parse()

	processID, err := uuid.Parse(*rawID)
	if err != nil {
		color.Red("-process must be a valid id")
		os.Exit(2)
	}

	db, err := database.GetMainDB()
	if err != nil {
		color.Red("Database failed to initialize: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	process, err := repository.NewProcessRepository(db).Get(ctx, processID)
	if err != nil {
		color.Red("Failed to load process: %v", err)
		os.Exit(1)
	}
	apps, err := repository.NewApplicationRepository(db).ListByProcess(ctx, processID)
	if err != nil {
		color.Red("Failed to load applications: %v", err)
		os.Exit(1)
	}

	color.Yellow("\n%s (%d rounds, %d applications)", process.Title, len(process.Rounds), len(apps))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Candidate", "Email", "Status", "Progress", "Current Round", "Time Left", "Expired"})

	now := time.Now()
	expired := 0
	for i := range apps {
		s := progression.Summarize(&apps[i], process, now)

		current := "-"
		if apps[i].CurrentRoundTitle != nil {
			current = *apps[i].CurrentRoundTitle
		}
		left := "-"
		if s.TimeRemaining != nil && !s.TimeRemaining.Expired {
			left = fmt.Sprintf("%dd %dh %dm", s.TimeRemaining.Days, s.TimeRemaining.Hours, s.TimeRemaining.Minutes)
		}
		if s.HasExpiredTimeline {
			expired++
		}

		table.Append([]string{
			apps[i].Candidate.Name,
			apps[i].Candidate.Email,
			apps[i].Status,
			fmt.Sprintf("%d/%d (%d%%)", s.Progress.Current, s.Progress.Total, s.Progress.Percentage),
			current,
			left,
			fmt.Sprintf("%d", s.ExpiredRoundsCount),
		})
	}
	table.Render()

	if expired > 0 {
		color.Red("%d application(s) are past their current round deadline", expired)
	} else {
		color.Green("No application is past its current round deadline")
	}
}
