package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sagarzoci/orbitgoals/internal/model"
)

// HTTPStore talks to the remote aggregate document store over REST:
//
//	POST {base}/buckets/{bucket}/users/{userID}/increment
//	GET  {base}/buckets/{bucket}/users?limit=N
//
// The increment endpoint performs a server-side additive merge-write, which
// is what keeps concurrent devices from clobbering each other.
type HTTPStore struct {
	base   string
	client *http.Client
}

func NewHTTPStore(baseURL string) *HTTPStore {
	return &HTTPStore{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type incrementRequest struct {
	DisplayName    string `json:"displayName"`
	PhotoURL       string `json:"photoURL,omitempty"`
	Country        string `json:"country,omitempty"`
	Tier           string `json:"tier,omitempty"`
	AvatarFrame    string `json:"avatarFrame,omitempty"`
	Points         int    `json:"points"`
	TasksCompleted int    `json:"tasksCompleted"`
}

func (s *HTTPStore) Increment(ctx context.Context, bucket, userID string, entry model.LeaderboardEntry, points, tasks int) error {
	body, err := json.Marshal(incrementRequest{
		DisplayName:    entry.DisplayName,
		PhotoURL:       entry.PhotoURL,
		Country:        entry.Country,
		Tier:           entry.Tier,
		AvatarFrame:    entry.AvatarFrame,
		Points:         points,
		TasksCompleted: tasks,
	})
	if err != nil {
		return err
	}

	u := fmt.Sprintf("%s/buckets/%s/users/%s/increment", s.base, url.PathEscape(bucket), url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	return classifyStatus(res.StatusCode, "increment")
}

func (s *HTTPStore) Top(ctx context.Context, bucket string, limit int) ([]model.LeaderboardEntry, error) {
	u := fmt.Sprintf("%s/buckets/%s/users?limit=%s", s.base, url.PathEscape(bucket), strconv.Itoa(limit))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	if err := classifyStatus(res.StatusCode, "top"); err != nil {
		return nil, err
	}

	var entries []model.LeaderboardEntry
	if err := json.NewDecoder(res.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard response: %w", err)
	}
	return entries, nil
}

// classifyStatus maps response codes onto the error taxonomy. Permission
// denied, not found and server errors all land in the unavailable class and
// trip the breaker; anything else is an ordinary error.
func classifyStatus(code int, op string) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized,
		code == http.StatusForbidden,
		code == http.StatusNotFound,
		code == http.StatusGone,
		code >= 500:
		return fmt.Errorf("%w: %s returned status %d", ErrUnavailable, op, code)
	default:
		return fmt.Errorf("%s returned status %d", op, code)
	}
}
