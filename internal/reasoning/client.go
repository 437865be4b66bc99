package reasoning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type InsightRequest struct {
	ShiftDate        string   `json:"shiftDate"`
	ShiftStart       string   `json:"shiftStart"`
	ShiftEnd         string   `json:"shiftEnd"`
	RequiredSkill    string   `json:"requiredSkill"`
	StaffName        string   `json:"staffName"`
	Skills           []string `json:"skills"`
	ReliabilityScore float64  `json:"reliabilityScore"`
	ConfidenceScore  float64  `json:"confidenceScore"`
}

type Insights struct {
	Considerations []string `json:"considerations"`
	RiskFactors    []string `json:"riskFactors"`
}

// InsightClient is the optional external text-generation collaborator.
type InsightClient interface {
	GenerateInsights(ctx context.Context, req *InsightRequest) (*Insights, error)
}

// InsightCache stores insight responses so regenerating a draft does not
// re-call the external service for unchanged pairings.
type InsightCache interface {
	Get(ctx context.Context, key string) (*Insights, bool)
	Set(ctx context.Context, key string, insights *Insights)
}

type HTTPClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPClient(endpoint, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) GenerateInsights(ctx context.Context, req *InsightRequest) (*Insights, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("insight service returned status %d", resp.StatusCode)
	}

	insights := &Insights{}
	if err := json.NewDecoder(resp.Body).Decode(insights); err != nil {
		return nil, fmt.Errorf("malformed insight response: %w", err)
	}

	return insights, nil
}
