package uniswap

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrProviderUnavailable is returned when live data cannot be fetched and the mock fallback is disabled
var ErrProviderUnavailable = errors.New("position provider unavailable")

// Client is the interface for looking up LP positions
type Client interface {
	// FetchPositions fetches all LP positions for a given wallet address
	FetchPositions(ctx context.Context, walletAddress string) (*LPPositionResponse, error)

	// Close closes the client and releases any resources
	Close()
}

// NFTFetcher lists the position NFTs held by a wallet
type NFTFetcher interface {
	GetOwnedPositionNFTs(ctx context.Context, owner string) (*OwnedNFTsResponse, error)
}

// ServiceConfig configures an LPPositionService
type ServiceConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// MockFallback serves demo positions when the live lookup fails.
	// When disabled the failure is returned as ErrProviderUnavailable.
	MockFallback bool
}

// LPPositionService implements the Client interface on top of the NFT API
type LPPositionService struct {
	// provider only gates the live path: when nil every lookup takes the fallback.
	// Dialing an http(s) endpoint does not connect, so it is nil only if Dial rejects the URL.
	provider     *ethclient.Client
	nfts         NFTFetcher
	mockFallback bool
	logger       *zap.SugaredLogger
}

// NewLPPositionService creates a new LP position service
func NewLPPositionService(cfg ServiceConfig, logger *zap.SugaredLogger) (*LPPositionService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	nftClient := NewNFTClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout, logger)

	provider, err := ethclient.Dial(nftClient.Endpoint())
	if err != nil {
		// Not fatal: lookups fall back to demo data without a provider
		logger.Errorw("Failed to initialize Ethereum provider", "error", nftClient.redact(err.Error()))
		provider = nil
	} else {
		logger.Infow("Initialized LP position service",
			"endpoint", cfg.BaseURL,
			"apiKey", obfuscateKey(cfg.APIKey),
			"positionManagerAddress", V3PositionManagerAddress.Hex())
	}

	return newLPPositionService(provider, nftClient, cfg.MockFallback, logger), nil
}

func newLPPositionService(provider *ethclient.Client, nfts NFTFetcher, mockFallback bool, logger *zap.SugaredLogger) *LPPositionService {
	return &LPPositionService{
		provider:     provider,
		nfts:         nfts,
		mockFallback: mockFallback,
		logger:       logger,
	}
}

// FetchPositions fetches LP positions for a wallet. Lookup failures are
// logged and answered with demo data; a wallet without position NFTs gets an
// empty response.
func (s *LPPositionService) FetchPositions(ctx context.Context, walletAddress string) (*LPPositionResponse, error) {
	s.logger.Infow("Fetching LP positions", "wallet", walletAddress)

	if s.provider == nil {
		s.logger.Warnw("Provider not initialized", "wallet", walletAddress)
		return s.fallback(walletAddress, ErrProviderUnavailable)
	}

	owned, err := s.nfts.GetOwnedPositionNFTs(ctx, walletAddress)
	if err != nil {
		s.logger.Errorw("Failed to fetch position NFTs", "wallet", walletAddress, "error", err)
		return s.fallback(walletAddress, err)
	}

	if len(owned.OwnedNFTs) == 0 {
		s.logger.Infow("No Uniswap positions found", "wallet", walletAddress)
		return emptyResponse(walletAddress), nil
	}

	s.logger.Infow("Found Uniswap position NFTs", "wallet", walletAddress, "count", len(owned.OwnedNFTs))

	positions, err := s.derivePositions(ctx, owned.OwnedNFTs)
	if err != nil {
		return s.fallback(walletAddress, err)
	}
	if len(positions) == 0 {
		s.logger.Infow("No active Uniswap positions found", "wallet", walletAddress)
		return emptyResponse(walletAddress), nil
	}

	total := 0.0
	for _, p := range positions {
		total += parseAmount(p.PnL.USD)
	}

	s.logger.Infow("Fetched LP positions", "wallet", walletAddress, "count", len(positions))
	return &LPPositionResponse{
		WalletAddress: walletAddress,
		Positions:     positions,
		TotalPnlUSD:   signed(toFixed(total, 2)),
	}, nil
}

// derivePositions runs the heuristic over every NFT. A failing NFT is dropped
// without affecting the others and the result keeps the API order.
func (s *LPPositionService) derivePositions(ctx context.Context, nfts []OwnedNFT) ([]LPPosition, error) {
	derived := make([]*LPPosition, len(nfts))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, nft := range nfts {
		i, nft := i, nft
		g.Go(func() error {
			position, active, err := DerivePosition(nft)
			if err != nil {
				s.logger.Errorw("Error processing position NFT", "tokenId", nft.ID.TokenID, "error", err)
				return nil
			}
			if !active {
				s.logger.Debugw("Skipping inactive position", "tokenId", nft.ID.TokenID)
				return nil
			}
			derived[i] = position
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	positions := make([]LPPosition, 0, len(derived))
	for _, p := range derived {
		if p != nil {
			positions = append(positions, *p)
		}
	}
	return positions, nil
}

func (s *LPPositionService) fallback(walletAddress string, cause error) (*LPPositionResponse, error) {
	if !s.mockFallback {
		if errors.Is(cause, ErrProviderUnavailable) {
			return nil, cause
		}
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, cause)
	}
	s.logger.Warnw("Using mock positions", "wallet", walletAddress, "reason", cause)
	return MockPositions(walletAddress), nil
}

// Close closes the client and releases any resources
func (s *LPPositionService) Close() {
	if s.provider != nil {
		s.provider.Close()
	}
}
