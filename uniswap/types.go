package uniswap

import (
	"encoding/json"
)

// Token identifies one side of a liquidity pair
type Token struct {
	Symbol  string `json:"symbol"`
	Address string `json:"address"`
}

// PnL holds signed, display-ready profit and loss figures
type PnL struct {
	Token0     string `json:"token0"`
	Token1     string `json:"token1"`
	USD        string `json:"usd"`
	Percentage string `json:"percentage"`
}

// LPPosition represents a Uniswap V3 liquidity position.
// All amounts are formatted decimal strings ready for display.
type LPPosition struct {
	ID               string `json:"id"`
	Token0           Token  `json:"token0"`
	Token1           Token  `json:"token1"`
	Liquidity        string `json:"liquidity"`
	DepositedAmount0 string `json:"depositedAmount0"`
	DepositedAmount1 string `json:"depositedAmount1"`
	CurrentAmount0   string `json:"currentAmount0"`
	CurrentAmount1   string `json:"currentAmount1"`
	PnL              PnL    `json:"pnl"`
}

// LPPositionResponse is the result of a positions lookup for one wallet
type LPPositionResponse struct {
	WalletAddress string       `json:"walletAddress"`
	Positions     []LPPosition `json:"positions"`
	TotalPnlUSD   string       `json:"totalPnlUsd"`
}

// OwnedNFT is a single entry of the NFT API ownedNfts list
type OwnedNFT struct {
	Contract struct {
		Address string `json:"address"`
	} `json:"contract"`
	ID struct {
		TokenID string `json:"tokenId"`
	} `json:"id"`
	Title    string          `json:"title"`
	Metadata json.RawMessage `json:"metadata"`
}

// OwnedNFTsResponse is the getNFTs envelope
type OwnedNFTsResponse struct {
	OwnedNFTs  []OwnedNFT `json:"ownedNfts"`
	TotalCount int        `json:"totalCount"`
	BlockHash  string     `json:"blockHash"`
}

func emptyResponse(walletAddress string) *LPPositionResponse {
	return &LPPositionResponse{
		WalletAddress: walletAddress,
		Positions:     []LPPosition{},
		TotalPnlUSD:   "0",
	}
}
