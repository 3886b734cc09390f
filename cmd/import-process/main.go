// Command import-process validates a YAML process definition and stores it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"actualize-backend/internal/database"
	"actualize-backend/internal/processdef"
	"actualize-backend/internal/repository"
)

func main() {
	file := flag.String("file", "", "path to the process definition (YAML)")
	dryRun := flag.Bool("dry-run", false, "validate only, do not write to the database")
	flag.Parse()

	if *file == "" {
		color.Red("-file is required")
		flag.Usage()
		os.Exit(2)
	}

	process, err := processdef.LoadFile(*file)
	if err != nil {
		color.Red("Invalid process definition: %v", err)
		os.Exit(1)
	}
	color.Green("Definition is valid: %q with %d rounds (%s)", process.Title, len(process.Rounds), process.Status)
	if *dryRun {
		return
	}

	db, err := database.GetMainDB()
	if err != nil {
		color.Red("Database failed to initialize: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repository.NewProcessRepository(db).Create(ctx, process); err != nil {
		color.Red("Failed to import process: %v", err)
		os.Exit(1)
	}

	fmt.Printf("Imported process %s\n", process.ID)
	for _, r := range process.Rounds {
		fmt.Printf("  %d. %-30s %-12s %s\n", r.Order, r.Title, r.Type, r.ID)
	}
}
