// Package insights provides the client for the remote golf-performance
// analysis function.
package insights

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
)

const analyzeTimeout = 15 * time.Second

// ErrNotConfigured is returned when no analysis endpoint is set. The
// completion path logs and drops it like any other analysis failure.
var ErrNotConfigured = errors.New("insights endpoint not configured")

// HoleSummary is one played hole in the analysis payload.
type HoleSummary struct {
	Hole     int            `json:"hole"`
	Score    int            `json:"score"`
	Outcomes map[string]int `json:"outcomes"`
}

type AnalysisRequest struct {
	UserID     string        `json:"uid"`
	RoundID    string        `json:"round_id"`
	CoursePar  int           `json:"course_par"`
	GrossShots int           `json:"gross_shots"`
	Score      int           `json:"score"`
	Holes      []HoleSummary `json:"holes"`
}

// AnalysisResult is the structured content the function returns; stored
// as is, this service only passes it through.
type AnalysisResult struct {
	Summary       string `json:"summary"`
	PrimaryIssue  string `json:"primary_issue"`
	Reason        string `json:"reason"`
	PracticeFocus string `json:"practice_focus"`
	ManagementTip string `json:"management_tip"`
	ProgressNote  string `json:"progress_note,omitempty"`
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates an analysis client. endpoint may be empty, in which
// case every Analyze call reports ErrNotConfigured.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: analyzeTimeout,
		},
	}
}

func (c *Client) Analyze(ctx context.Context, req *AnalysisRequest) (*AnalysisResult, error) {
	if c.endpoint == "" {
		return nil, ErrNotConfigured
	}
	body, err := sonic.ConfigDefault.Marshal(req)
	if err != nil {
		return nil, errors.New("encoding analysis request error: " + err.Error())
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.New("building analysis request error: " + err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.New("calling analysis function error: " + err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		// Read a little of the body for the log line, then drop it
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("analysis function returned %d: %s", resp.StatusCode, string(snippet))
	}
	var result AnalysisResult
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.New("decoding analysis response error: " + err.Error())
	}
	return &result, nil
}
