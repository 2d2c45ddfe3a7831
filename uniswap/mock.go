package uniswap

// Wallets that receive demo positions when live data is unavailable
var mockWallets = map[string]bool{
	"0x1234567890123456789012345678901234567890": true,
	"0xabcdef1234567890abcdef1234567890abcdef12": true,
}

const (
	wethAddress = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	usdcAddress = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	wbtcAddress = "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599"
)

// MockPositions returns the fixed demo payload for allow-listed wallets and an
// empty response for everyone else. Addresses are compared case-insensitively.
func MockPositions(walletAddress string) *LPPositionResponse {
	if !mockWallets[normalizeAddress(walletAddress)] {
		return emptyResponse(walletAddress)
	}

	return &LPPositionResponse{
		WalletAddress: walletAddress,
		Positions: []LPPosition{
			{
				ID:               "123456",
				Token0:           Token{Symbol: "ETH", Address: wethAddress},
				Token1:           Token{Symbol: "USDC", Address: usdcAddress},
				Liquidity:        "1500000000000000000",
				DepositedAmount0: "1.5",
				DepositedAmount1: "3000",
				CurrentAmount0:   "1.2",
				CurrentAmount1:   "3300",
				PnL: PnL{
					Token0:     "-0.3",
					Token1:     "+300",
					USD:        "+150",
					Percentage: "+5%",
				},
			},
			{
				ID:               "789012",
				Token0:           Token{Symbol: "WBTC", Address: wbtcAddress},
				Token1:           Token{Symbol: "ETH", Address: wethAddress},
				Liquidity:        "500000000000000000",
				DepositedAmount0: "0.05",
				DepositedAmount1: "0.8",
				CurrentAmount0:   "0.048",
				CurrentAmount1:   "0.85",
				PnL: PnL{
					Token0:     "-0.002",
					Token1:     "+0.05",
					USD:        "+75",
					Percentage: "+3.2%",
				},
			},
		},
		TotalPnlUSD: "+225",
	}
}
