package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Drives snapshot reconciliations against a running roster server:
// each request posts a randomized role snapshot for one of the given
// projects, which exercises the create/delete/no-op paths together.
func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the roster server")
	bearer := flag.String("token", "", "Admin bearer token")
	projectIDs := flag.String("projects", "", "Comma-separated project ids to cycle through")
	userIDs := flag.String("users", "", "Comma-separated user ids to draw occupants from")
	roleList := flag.String("roles", "PMC,Architect,Contractor,Designer", "Roles to randomize")
	concurrency := flag.Int("c", 4, "Number of concurrent workers")
	duration := flag.Duration("d", 30*time.Second, "Duration of the load test")
	rps := flag.Int("rps", 50, "Requests per second limit")
	flag.Parse()

	projects := strings.Split(*projectIDs, ",")
	users := strings.Split(*userIDs, ",")
	roles := strings.Split(*roleList, ",")
	if *projectIDs == "" || *userIDs == "" {
		log.Fatal("both -projects and -users are required")
	}

	log.Printf("Starting load test on %s", *baseURL)
	log.Printf("Concurrency: %d, Duration: %s, RPS: %d, Projects: %d, Users: %d",
		*concurrency, *duration, *rps, len(projects), len(users))

	var wg sync.WaitGroup
	var successCount, errorCount atomic.Int64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(*rps), 20) // Allow small bursts

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{
				Timeout: 5 * time.Second,
			}
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

			for {
				select {
				case <-ctx.Done():
					return
				default:
					limiter.Wait(ctx) // Wait for token from rate limiter

					project := projects[rng.Intn(len(projects))]
					assignments := make(map[string]*string, len(roles))
					for _, role := range roles {
						// Roughly a third of slots get cleared.
						if rng.Intn(3) == 0 {
							assignments[role] = nil
							continue
						}
						user := users[rng.Intn(len(users))]
						assignments[role] = &user
					}
					payload, err := json.Marshal(map[string]any{"assignments": assignments})
					if err != nil {
						continue // Should not happen
					}

					url := *baseURL + "/admin/projects/" + project + "/assign-roles"
					req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
					if err != nil {
						continue // Should not happen
					}
					req.Header.Set("Content-Type", "application/json")
					req.Header.Set("Authorization", "Bearer "+*bearer)

					resp, err := client.Do(req)
					if err != nil {
						errorCount.Add(1)
						continue
					}

					if resp.StatusCode == http.StatusOK {
						successCount.Add(1)
					} else {
						errorCount.Add(1)
					}
					resp.Body.Close()
				}
			}
		}(i)
	}

	wg.Wait()

	totalRequests := successCount.Load() + errorCount.Load()
	actualRPS := float64(totalRequests) / duration.Seconds()

	log.Println("Load test finished.")
	log.Printf("Total Requests: %d", totalRequests)
	log.Printf("Successful (200 OK): %d", successCount.Load())
	log.Printf("Errors: %d", errorCount.Load())
	log.Printf("Actual RPS: %.2f", actualRPS)
}
