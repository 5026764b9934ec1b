// Command lookups prints the most recent entries of the lookup audit trail
// as a table. Handy for checking what the proxy has been asked lately
// without querying postgres by hand.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/geocodry/geocodry/pkg/history"
)

func main() {
	_ = godotenv.Load()

	db, err := sql.Open("pgx", os.Getenv("DATABASE_URL"))
	if err != nil {
		panic(fmt.Errorf("unable to open db conn: %w", err))
	}

	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("error closing db connection: %s", err.Error())
		}
	}()

	limit := 20
	if len(os.Args) > 1 {
		limit, err = strconv.Atoi(os.Args[1])
		if err != nil {
			log.Fatalf("usage: lookups [limit]; %q is not a number", os.Args[1])
		}
	}

	lookups, err := history.NewPgRepository(db).ListRecent(context.Background(), limit)
	if err != nil {
		log.Fatalf("list lookups: %s", err.Error())
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"When", "Operation", "Query", "Status", "Results", "ms"})

	for _, l := range lookups {
		table.Append([]string{
			l.CreatedAt.Format("2006-01-02 15:04:05"),
			l.Operation,
			l.Query,
			strconv.Itoa(l.Status),
			strconv.Itoa(l.Results),
			strconv.FormatInt(l.DurationMS, 10),
		})
	}

	table.Render()
}
