package client

import (
	"net/http"
	"os"
	"time"
)

// Client talks to the creative backend API. It implements the orchestrator's
// collaborator ports (plan generation, asset search, rendering, scheduling) so
// the wizard never touches HTTP directly.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a backend client.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = getEnvOrDefault("BACKEND_URL", "http://localhost:8000")
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
