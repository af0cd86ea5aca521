//go:build datagen_people
// +build datagen_people

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"personrefresh/src/helper/env"
	"personrefresh/src/infra/postgres"

	"github.com/go-faker/faker/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Gera pessoas fake para exercitar o refresh localmente:
//
//	go run -tags datagen_people . -people 10000 -stale-perc 40 -no-url-perc 10
var peopleColumns = []string{
	"first_name", "last_name", "linkedin_url", "linkedin_last_fetched", "created_at", "updated_at",
}

func main() {
	numPeople := flag.Int("people", 1000, "Número de pessoas a serem criadas")
	bulkSize := flag.Int("bulk-size", 1000, "Linhas por COPY")
	stalePercentage := flag.Float64("stale-perc", 40.0, "Percentual já buscado mas vencido")
	freshPercentage := flag.Float64("fresh-perc", 30.0, "Percentual buscado recentemente")
	noURLPercentage := flag.Float64("no-url-perc", 10.0, "Percentual sem URL de perfil")
	numConsumers := flag.Int("consumers", 4, "Número de consumers fazendo COPY")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	databaseURL := env.MustGetString("DATABASE_URL")
	if err := postgres.RunMigrations(databaseURL); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	db, err := postgres.NewPostgresClient(ctx, databaseURL, *numConsumers+1)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	dataChan := make(chan []any, (*bulkSize)*(*numConsumers))

	var wg sync.WaitGroup
	var totalProcessed, totalErrors int64
	startTime := time.Now()

	for i := 0; i < *numConsumers; i++ {
		wg.Add(1)
		go consumer(ctx, &wg, db, dataChan, *bulkSize, &totalProcessed, &totalErrors)
	}

	go func() {
		defer close(dataChan)
		for i := 0; i < *numPeople; i++ {
			select {
			case <-ctx.Done():
				return
			case dataChan <- generateFakePerson(*stalePercentage, *freshPercentage, *noURLPercentage):
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutdown signal received, stopping...")
		cancel()
	}()

	wg.Wait()

	elapsed := time.Since(startTime)
	fmt.Printf("Seeding finished: %d people, %d errors, %v\n",
		atomic.LoadInt64(&totalProcessed), atomic.LoadInt64(&totalErrors), elapsed.Round(time.Millisecond))
}

func consumer(ctx context.Context, wg *sync.WaitGroup, db *pgxpool.Pool, dataChan <-chan []any, bulkSize int, totalProcessed, totalErrors *int64) {
	defer wg.Done()

	batch := make([][]any, 0, bulkSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		copied, err := db.CopyFrom(ctx, pgx.Identifier{"people"}, peopleColumns, pgx.CopyFromRows(batch))
		if err != nil {
			log.Printf("COPY failed: %v", err)
			atomic.AddInt64(totalErrors, int64(len(batch)))
		} else {
			atomic.AddInt64(totalProcessed, copied)
		}
		batch = batch[:0]
	}

	for row := range dataChan {
		batch = append(batch, row)
		if len(batch) >= bulkSize {
			flush()
		}
	}
	flush()
}

func generateFakePerson(stalePercentage, freshPercentage, noURLPercentage float64) []any {
	now := time.Now().UTC()
	firstName := faker.FirstName()
	lastName := faker.LastName()

	var linkedinURL *string
	if rand.Float64()*100 >= noURLPercentage {
		url := fmt.Sprintf("https://www.linkedin.com/in/%s-%s-%d", firstName, lastName, rand.Intn(1_000_000))
		linkedinURL = &url
	}

	var lastFetched *time.Time
	roll := rand.Float64() * 100
	switch {
	case roll < stalePercentage:
		fetched := now.Add(-time.Duration(73+rand.Intn(24*30)) * time.Hour)
		lastFetched = &fetched
	case roll < stalePercentage+freshPercentage:
		fetched := now.Add(-time.Duration(rand.Intn(71)) * time.Hour)
		lastFetched = &fetched
	}

	createdAt := now.Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
	return []any{firstName, lastName, linkedinURL, lastFetched, createdAt, createdAt}
}
