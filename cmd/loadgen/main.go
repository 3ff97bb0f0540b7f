package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	defaultBaseURL = "http://localhost:8080"
	targetRPS      = 5
	testDuration   = 2 * time.Minute
)

type attackConfig struct {
	baseURL  string
	rate     vegeta.Rate
	duration time.Duration
}

// fixture хранит сущности, созданные перед атакой
type fixture struct {
	managerId  string
	employeeId string
	teamId     string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: loadgen <scenario>")
		fmt.Println("Scenarios: health, users, teams, notifications, all")
		os.Exit(1)
	}

	cfg := attackConfig{
		baseURL:  defaultBaseURL,
		rate:     vegeta.Rate{Freq: targetRPS, Per: time.Second},
		duration: testDuration,
	}
	if url := os.Getenv("EMTOOL_URL"); url != "" {
		cfg.baseURL = url
	}

	metrics, err := runScenario(os.Args[1], cfg, &http.Client{Timeout: 5 * time.Second})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	printMetrics(metrics)
}

func runScenario(scenario string, cfg attackConfig, client *http.Client) (*vegeta.Metrics, error) {
	if scenario == "health" {
		return runAttack(cfg, vegeta.NewStaticTargeter(healthTarget(cfg.baseURL)), "Health Check")
	}

	f, err := setupFixture(client, cfg.baseURL, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}

	var targets []vegeta.Target
	switch scenario {
	case "users":
		targets = userTargets(cfg.baseURL, f)
	case "teams":
		targets = teamTargets(cfg.baseURL, f, time.Now())
	case "notifications":
		targets = notificationTargets(cfg.baseURL, f)
	case "all":
		targets = append(targets, healthTarget(cfg.baseURL))
		targets = append(targets, userTargets(cfg.baseURL, f)...)
		targets = append(targets, teamTargets(cfg.baseURL, f, time.Now())...)
		targets = append(targets, notificationTargets(cfg.baseURL, f)...)
	default:
		return nil, fmt.Errorf("unknown scenario: %s", scenario)
	}

	return runAttack(cfg, vegeta.NewStaticTargeter(targets...), scenario)
}

func runAttack(cfg attackConfig, targeter vegeta.Targeter, name string) (*vegeta.Metrics, error) {
	attacker := vegeta.NewAttacker()

	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, cfg.rate, cfg.duration, name) {
		metrics.Add(res)
	}
	metrics.Close()

	return &metrics, nil
}

func healthTarget(baseURL string) vegeta.Target {
	return vegeta.Target{Method: http.MethodGet, URL: baseURL + "/health"}
}

func userTargets(baseURL string, f *fixture) []vegeta.Target {
	return []vegeta.Target{
		{Method: http.MethodGet, URL: baseURL + "/users/" + f.employeeId},
		{Method: http.MethodGet, URL: baseURL + "/users/" + f.employeeId + "/tasks"},
		{Method: http.MethodGet, URL: baseURL + "/users/" + f.employeeId + "/notifications/unread-count"},
	}
}

func teamTargets(baseURL string, f *fixture, now time.Time) []vegeta.Target {
	from := now.Add(-30 * 24 * time.Hour).UTC().Format("2006-01-02")
	to := now.UTC().Format("2006-01-02")

	return []vegeta.Target{
		{Method: http.MethodGet, URL: baseURL + "/teams/" + f.teamId},
		{Method: http.MethodGet, URL: baseURL + "/teams/" + f.teamId + "/members"},
		{Method: http.MethodGet, URL: fmt.Sprintf("%s/teams/%s/report?from=%s&to=%s", baseURL, f.teamId, from, to)},
	}
}

func notificationTargets(baseURL string, f *fixture) []vegeta.Target {
	body, _ := json.Marshal(map[string]string{
		"user_id": f.employeeId,
		"message": "load test",
		"type":    "info",
	})

	return []vegeta.Target{
		{
			Method: http.MethodPost,
			URL:    baseURL + "/notifications",
			Body:   body,
			Header: http.Header{"Content-Type": []string{"application/json"}},
		},
		{Method: http.MethodGet, URL: baseURL + "/users/" + f.employeeId + "/notifications"},
	}
}

// setupFixture регистрирует менеджера, сотрудника и команду с уникальными именами
func setupFixture(client *http.Client, baseURL string, rng *rand.Rand) (*fixture, error) {
	suffix := rng.Intn(1_000_000)

	managerId, err := register(client, baseURL, "managers", fmt.Sprintf("load_mgr_%d", suffix))
	if err != nil {
		return nil, err
	}
	employeeId, err := register(client, baseURL, "employees", fmt.Sprintf("load_emp_%d", suffix))
	if err != nil {
		return nil, err
	}

	teamId, err := postForId(client, baseURL+"/teams", map[string]string{
		"name":       fmt.Sprintf("load_team_%d", suffix),
		"manager_id": managerId,
	})
	if err != nil {
		return nil, err
	}

	if _, err := postForId(client, baseURL+"/teams/"+teamId+"/members", map[string]string{
		"user_id":     employeeId,
		"added_by_id": managerId,
	}); err != nil {
		return nil, err
	}

	return &fixture{managerId: managerId, employeeId: employeeId, teamId: teamId}, nil
}

func register(client *http.Client, baseURL, kind, username string) (string, error) {
	return postForId(client, baseURL+"/users/"+kind, map[string]string{
		"first_name": "Load",
		"last_name":  "Test",
		"email":      username + "@load.example.com",
		"username":   username,
		"password":   "load-password",
	})
}

func postForId(client *http.Client, url string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("POST %s: status %d: %s", url, resp.StatusCode, raw)
	}

	var out struct {
		Id string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Id == "" {
		return "", errors.New("response has no id")
	}
	return out.Id, nil
}

func printMetrics(metrics *vegeta.Metrics) {
	fmt.Printf("\n=== Load Test Results ===\n\n")
	fmt.Printf("Requests Total:     %d\n", metrics.Requests)
	fmt.Printf("Success Rate:       %.2f%%\n", metrics.Success*100)
	fmt.Printf("Duration:           %v\n", metrics.Duration)

	if metrics.Requests > 0 {
		fmt.Printf("\nLatency:\n")
		fmt.Printf("  Mean:             %v\n", metrics.Latencies.Mean)
		fmt.Printf("  P50:              %v\n", metrics.Latencies.P50)
		fmt.Printf("  P95:              %v\n", metrics.Latencies.P95)
		fmt.Printf("  P99:              %v\n", metrics.Latencies.P99)
		fmt.Printf("  Max:              %v\n", metrics.Latencies.Max)

		fmt.Printf("\nThroughput:\n")
		fmt.Printf("  Requests/sec:     %.2f\n", metrics.Rate)

		fmt.Printf("\nStatus Codes:\n")
		for code, count := range metrics.StatusCodes {
			fmt.Printf("  %s: %d\n", code, count)
		}

		fmt.Printf("\nErrors:\n")
		if len(metrics.Errors) > 0 {
			for _, err := range metrics.Errors {
				fmt.Printf("  %s\n", err)
			}
		} else {
			fmt.Printf("  None\n")
		}

		p95ms, successRate, p95ok, successOk := sli(metrics)
		fmt.Printf("\nSLI Compliance:\n")
		fmt.Printf("  P95 Latency:      %.2f ms (target: < 300ms) - %s\n", p95ms, checkStatus(p95ok))
		fmt.Printf("  Success Rate:     %.2f%% (target: > 99.9%%) - %s\n", successRate, checkStatus(successOk))
	}
	fmt.Printf("\n")
}

// sli: p95 < 300ms, успешных ответов не меньше 99.9%
func sli(metrics *vegeta.Metrics) (p95ms, successRate float64, p95ok, successOk bool) {
	p95ms = metrics.Latencies.P95.Seconds() * 1000
	successRate = metrics.Success * 100
	return p95ms, successRate, p95ms < 300, successRate >= 99.9
}

func checkStatus(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
