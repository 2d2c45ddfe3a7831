package uniswap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// DefaultNFTAPIBaseURL is the Alchemy mainnet endpoint. The API key is appended as a path segment.
const DefaultNFTAPIBaseURL = "https://eth-mainnet.g.alchemy.com/v2"

// V3PositionManagerAddress is the Uniswap V3 NonfungiblePositionManager; every V3 position is an NFT minted by it.
var V3PositionManagerAddress = common.HexToAddress("0xC36442b4a4522E871399CD717aBDD847Ab11FE88")

// Error bodies longer than this are cut when reported
const maxErrorBodyLength = 256

// NFTClient queries the NFT ownership API for Uniswap V3 position NFTs
type NFTClient struct {
	httpClient *http.Client
	logger     *zap.SugaredLogger
	baseURL    string
	apiKey     string
}

// NewNFTClient creates a new NFT API client
func NewNFTClient(baseURL, apiKey string, timeout time.Duration, logger *zap.SugaredLogger) *NFTClient {
	if baseURL == "" {
		baseURL = DefaultNFTAPIBaseURL
	}
	return &NFTClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// Endpoint returns the keyed API root, also usable as a JSON-RPC URL
func (c *NFTClient) Endpoint() string {
	return c.baseURL + "/" + c.apiKey
}

// GetOwnedPositionNFTs fetches the position NFTs held by owner
func (c *NFTClient) GetOwnedPositionNFTs(ctx context.Context, owner string) (*OwnedNFTsResponse, error) {
	requestURL := fmt.Sprintf("%s/getNFTs/?owner=%s&contractAddresses[]=%s",
		c.Endpoint(), url.QueryEscape(owner), V3PositionManagerAddress.Hex())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debugw("Querying NFT API",
		"url", c.redact(requestURL),
		"owner", owner)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.redactError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", c.redactError(err))
	}

	c.logger.Debugw("Got NFT API response",
		"statusCode", resp.StatusCode,
		"contentLength", len(respBody))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, c.redact(truncateBody(respBody)))
	}

	var result OwnedNFTsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode NFT response: %w", err)
	}

	return &result, nil
}

// redact masks the API key wherever it appears in s
func (c *NFTClient) redact(s string) string {
	if c.apiKey == "" {
		return s
	}
	return strings.ReplaceAll(s, c.apiKey, obfuscateKey(c.apiKey))
}

// redactError strips the keyed URL that net/http puts into transport errors
func (c *NFTClient) redactError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = c.redact(urlErr.URL)
	}
	return err
}

func truncateBody(body []byte) string {
	if len(body) > maxErrorBodyLength {
		return string(body[:maxErrorBodyLength]) + "..."
	}
	return string(body)
}

func obfuscateKey(key string) string {
	if len(key) > 4 {
		return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
	}
	return key
}
