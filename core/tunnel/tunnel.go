// Package tunnel discovers the public URL of a locally running tunnel agent
// (ngrok-compatible), so webhook mode works in development without a deployed
// endpoint.
package tunnel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/burlang/tolibot/core/logger"
)

const discoverTimeout = 5 * time.Second

type tunnelsResponse struct {
	Tunnels []struct {
		PublicURL string `json:"public_url"`
		Proto     string `json:"proto"`
	} `json:"tunnels"`
}

// PublicURL queries the agent's local API and returns the public URL of the
// first https tunnel (or the first tunnel of any kind when none is https).
func PublicURL(ctx context.Context, agentURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, discoverTimeout)
	defer cancel()

	endpoint := strings.TrimRight(agentURL, "/") + "/api/tunnels"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build tunnel request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("query tunnel agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tunnel agent returned status %d", resp.StatusCode)
	}

	var body tunnelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode tunnel response: %w", err)
	}
	if len(body.Tunnels) == 0 {
		return "", fmt.Errorf("tunnel agent reports no active tunnels")
	}

	url := body.Tunnels[0].PublicURL
	for _, t := range body.Tunnels {
		if t.Proto == "https" || strings.HasPrefix(t.PublicURL, "https://") {
			url = t.PublicURL
			break
		}
	}
	if url == "" {
		return "", fmt.Errorf("tunnel agent returned empty public url")
	}

	logger.Info(ctx, "app", "tunnel.discovered", slog.String("public_url", url))
	return url, nil
}
