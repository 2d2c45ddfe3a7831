package plugin

import (
	"context"
	"strings"

	"github.com/korjavin/lppositions/uniswap"
	"go.uber.org/zap"
)

// ActionLPPositions is the name of the LP positions action
const ActionLPPositions = "LP_POSITIONS"

// InvalidAddressPrompt is sent when a message carries no wallet address
const InvalidAddressPrompt = "Please provide a valid Ethereum wallet address (0x followed by 40 hexadecimal characters)."

// NewLPPositionsAction builds the action that reports LP positions for the
// first wallet address found in a message.
func NewLPPositionsAction(service uniswap.Client, logger *zap.SugaredLogger) *Action {
	return &Action{
		Name: ActionLPPositions,
		Similes: []string{
			"LIQUIDITY_POSITIONS",
			"UNISWAP_POSITIONS",
			"LP_PNL",
			"LIQUIDITY_PNL",
			"CHECK_LP",
			"TRACK_LP",
			"POOL_POSITIONS",
			"UNISWAP_LP",
		},
		Description:            "Fetch and analyze Uniswap LP positions for a given wallet address.",
		SuppressInitialMessage: true,
		Examples: []Example{
			{
				User:  "0x1234567890123456789012345678901234567890",
				Agent: "Here are the LP positions for 0x1234567890123456789012345678901234567890:",
			},
			{
				User:  "Check my LP positions: 0xabcdef1234567890abcdef1234567890abcdef12",
				Agent: "Here are your Uniswap LP positions:",
			},
		},
		Validate: func(ctx context.Context, text string) bool {
			return true
		},
		Handle: func(ctx context.Context, text string, callback Callback) error {
			return handleLPPositions(ctx, service, logger, text, callback)
		},
	}
}

func handleLPPositions(ctx context.Context, service uniswap.Client, logger *zap.SugaredLogger, text string, callback Callback) error {
	text = strings.TrimSpace(text)
	logger.Debugw("Message received", "text", text)

	walletAddress, ok := uniswap.ExtractWalletAddress(text)
	if !ok {
		return callback(InvalidAddressPrompt)
	}
	logger.Infow("Wallet address extracted", "wallet", walletAddress)

	response, err := service.FetchPositions(ctx, walletAddress)
	if err != nil {
		logger.Warnw("No LP position data available", "wallet", walletAddress, "error", err)
		return callback(uniswap.NoPositionsMessage(walletAddress))
	}

	if response == nil || len(response.Positions) == 0 {
		return callback(uniswap.NoPositionsMessage(walletAddress))
	}
	return callback(uniswap.FormatPositions(response))
}
