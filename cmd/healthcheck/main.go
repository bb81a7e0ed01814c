// Package main is the container health probe. It exits 0 only when the
// local server answers the probe path with 200.
//
// Usage:
//
//	healthcheck [livez|readyz]
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/garyellow/syllabus-assistant-go/internal/config"
)

func main() {
	os.Exit(probe(probeURL(os.Getenv(config.EnvPort), os.Args[1:])))
}

func probeURL(port string, args []string) string {
	if port == "" {
		port = "8080"
	}
	path := "livez"
	if len(args) > 0 && args[0] == "readyz" {
		path = "readyz"
	}
	return "http://localhost:" + port + "/" + path
}

func probe(url string) int {
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 1
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 1
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 1
	}
	return 0
}
