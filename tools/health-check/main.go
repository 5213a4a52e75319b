package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bloops-games/rps/internal/logging"
	"github.com/bloops-games/rps/internal/shutdown"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	URL     string        `envconfig:"RPS_HEALTH_URL" default:"http://127.0.0.1:1234/health"`
	Timeout time.Duration `envconfig:"RPS_HEALTH_TIMEOUT" default:"10s"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func main() {
	ctx, cancel := shutdown.New()
	defer cancel()
	logger := logging.FromContext(ctx)

	config := Config{}
	if err := envconfig.Process("", &config); err != nil {
		logger.Fatalf("processing the config: %v", err)
	}

	status, err := check(ctx, &http.Client{Timeout: config.Timeout}, config.URL)
	if err != nil {
		logger.Fatalf("check: %v", err)
	}

	_, _ = fmt.Fprintln(os.Stdout, status)
}

// check returns the reported status, a non 200 answer is an error
func check(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("client do: %w", err)
	}
	defer resp.Body.Close()

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("body unmarshal: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return body.Status, fmt.Errorf("unhealthy, status code %d: %s", resp.StatusCode, body.Status)
	}

	return body.Status, nil
}
