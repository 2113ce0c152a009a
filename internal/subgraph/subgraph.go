package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/estensen/marketplace-api/internal/metrics"
	"github.com/estensen/marketplace-api/internal/models"
)

// Predefined errors for upstream faults.
var (
	ErrHTTPResponse    = errors.New("error in HTTP response")
	ErrInvalidResponse = errors.New("invalid subgraph response")
	ErrQueryFailed     = errors.New("subgraph query failed")
)

const (
	listingsQueryName = "ListingsQuery"
	buysQueryName     = "BuysQuery"
)

const listingsQuery = `
query ListingsQuery {
	lists {
		id
		owner
		tokenId
		nftContractAddress
		price
		isActive
		blockTimestamp
		blockNumber
		transactionHash
	}
}`

const buysQuery = `
query BuysQuery {
	buys {
		id
		buyer
		owner
		tokenId
		nftContractAddress
		price
		blockTimestamp
		blockNumber
		transactionHash
	}
}`

// Client queries the marketplace subgraph.
type Client struct {
	endpoint string
	timeout  time.Duration
	logger   logrus.FieldLogger
	postFunc func(ctx context.Context, url string, body []byte) (*http.Response, error)
}

// NewClient creates a client for the given GraphQL endpoint. Every query
// is bounded by timeout.
func NewClient(endpoint string, timeout time.Duration, httpClient *http.Client, logger logrus.FieldLogger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint: endpoint,
		timeout:  timeout,
		logger:   logger,
		postFunc: func(ctx context.Context, url string, body []byte) (*http.Response, error) {
			return postResponse(ctx, httpClient, url, body)
		},
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type listingsData struct {
	Lists *[]models.Listing `json:"lists"`
}

type purchasesData struct {
	Buys *[]models.Purchase `json:"buys"`
}

// FetchListings returns every listing known to the subgraph, active or not.
func (c *Client) FetchListings(ctx context.Context) ([]models.Listing, error) {
	var data listingsData
	if err := c.query(ctx, listingsQueryName, listingsQuery, &data); err != nil {
		return nil, err
	}
	if data.Lists == nil {
		return nil, fmt.Errorf("%w: lists field not found", ErrInvalidResponse)
	}
	return *data.Lists, nil
}

// FetchPurchases returns every purchase known to the subgraph.
func (c *Client) FetchPurchases(ctx context.Context) ([]models.Purchase, error) {
	var data purchasesData
	if err := c.query(ctx, buysQueryName, buysQuery, &data); err != nil {
		return nil, err
	}
	if data.Buys == nil {
		return nil, fmt.Errorf("%w: buys field not found", ErrInvalidResponse)
	}
	return *data.Buys, nil
}

func (c *Client) query(ctx context.Context, name, document string, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream(name, err, time.Since(start))
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(graphQLRequest{Query: document, Variables: map[string]any{}})
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", name, err)
	}

	resp, err := c.postFunc(ctx, c.endpoint, body)
	if err != nil {
		return fmt.Errorf("error running %s: %w", name, err)
	}
	if resp.Body != nil {
		defer resp.Body.Close()
	}

	if err := decodeResponse(resp, out); err != nil {
		return fmt.Errorf("error running %s: %w", name, err)
	}

	c.logger.WithFields(logrus.Fields{
		"query":    name,
		"duration": time.Since(start),
	}).Debug("Subgraph query completed")

	return nil
}

// decodeResponse unpacks a GraphQL envelope into out.
func decodeResponse(resp *http.Response, out any) error {
	if resp.Body == nil {
		return fmt.Errorf("%w: response body is empty", ErrInvalidResponse)
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: error decoding response body", ErrInvalidResponse)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return fmt.Errorf("%w: %s", ErrQueryFailed, strings.Join(messages, "; "))
	}

	if len(envelope.Data) == 0 || bytes.Equal(envelope.Data, []byte("null")) {
		return fmt.Errorf("%w: data field not found", ErrInvalidResponse)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: error decoding data: %v", ErrInvalidResponse, err)
	}

	return nil
}

// postResponse sends a GraphQL request and returns the HTTP response.
func postResponse(ctx context.Context, client *http.Client, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error building subgraph request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error querying subgraph: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: received non-OK status code: %d", ErrHTTPResponse, resp.StatusCode)
	}

	return resp, nil
}
