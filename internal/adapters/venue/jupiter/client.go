// Package jupiter adapts the Jupiter v6 aggregator HTTP API to the venue
// adapter contract. Quoting talks to the API directly; execution is
// delegated to the external trade executor, which builds and signs the
// transaction out of process.
package jupiter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
)

const DefaultBaseURL = "https://quote-api.jup.ag/v6"

// QuoteResponse mirrors the Jupiter v6 /quote payload. RoutePlan stays raw:
// it is carried as the opaque route payload and only the execution layer
// interprets it.
type QuoteResponse struct {
	InputMint            string            `json:"inputMint"`
	InAmount             string            `json:"inAmount"`
	OutputMint           string            `json:"outputMint"`
	OutAmount            string            `json:"outAmount"`
	OtherAmountThreshold string            `json:"otherAmountThreshold"`
	SwapMode             string            `json:"swapMode"`
	SlippageBps          uint16            `json:"slippageBps"`
	PlatformFee          *PlatformFee      `json:"platformFee"`
	PriceImpactPct       string            `json:"priceImpactPct"`
	RoutePlan            []json.RawMessage `json:"routePlan"`
	ContextSlot          uint64            `json:"contextSlot"`
	TimeTaken            float64           `json:"timeTaken"`
}

type PlatformFee struct {
	Amount string `json:"amount"`
	FeeBps uint16 `json:"feeBps"`
}

type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// GetQuote fetches a quote and returns both the decoded response and the raw
// body, which becomes the opaque route payload handed back at trade time.
func (c *Client) GetQuote(ctx context.Context, inputMint, outputMint, amount string, slippageBps uint16) (*QuoteResponse, []byte, error) {
	q := url.Values{}
	q.Set("inputMint", inputMint)
	q.Set("outputMint", outputMint)
	q.Set("amount", amount)
	q.Set("slippageBps", strconv.Itoa(int(slippageBps)))
	q.Set("onlyDirectRoutes", "false")
	q.Set("asLegacyTransaction", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/quote?"+q.Encode(), nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("jupiter quote request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("jupiter quote read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("jupiter quote failed: %s: %s", resp.Status, string(body))
	}

	var quote QuoteResponse
	if err := sonic.Unmarshal(body, &quote); err != nil {
		return nil, nil, fmt.Errorf("jupiter quote decode: %w", err)
	}
	return &quote, body, nil
}

// Health probes the API health endpoint.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	return resp.StatusCode < 300
}
