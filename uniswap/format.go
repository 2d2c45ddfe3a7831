package uniswap

import (
	"fmt"
	"regexp"
	"strings"
)

var feeTierPattern = regexp.MustCompile(`(\d+\.\d+)%`)

// EstimateNotice closes every non-empty report
const EstimateNotice = "_Amounts and PnL are heuristic estimates for demonstration, not on-chain accounting._\n"

// NoPositionsMessage is the reply used when a wallet has nothing to report
func NoPositionsMessage(walletAddress string) string {
	return fmt.Sprintf("No LP positions found for wallet address %s or there was an error fetching the data.", walletAddress)
}

// FormatPositions renders a positions response as a markdown report
func FormatPositions(response *LPPositionResponse) string {
	if response == nil {
		return NoPositionsMessage("")
	}
	if len(response.Positions) == 0 {
		return NoPositionsMessage(response.WalletAddress)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# LP Positions for %s\n\n", response.WalletAddress)
	fmt.Fprintf(&b, "Total PnL: **%s** USD\n\n", response.TotalPnlUSD)

	for i, position := range response.Positions {
		token0 := cleanSymbol(position.Token0.Symbol)
		token1 := cleanSymbol(position.Token1.Symbol)

		if i > 0 {
			b.WriteString("---\n\n")
		}

		fmt.Fprintf(&b, "## %s/%s %s\n", token0, token1, position.ID)

		if feeTier := extractFeeTier(position.Token0.Symbol, position.Token1.Symbol); feeTier != "" {
			fmt.Fprintf(&b, "Fee Tier: %s\n", feeTier)
		}

		b.WriteString("\n### Deposited Amounts\n")
		fmt.Fprintf(&b, "- %s %s\n", position.DepositedAmount0, token0)
		fmt.Fprintf(&b, "- %s %s\n\n", position.DepositedAmount1, token1)

		b.WriteString("### Current Amounts\n")
		fmt.Fprintf(&b, "- %s %s\n", position.CurrentAmount0, token0)
		fmt.Fprintf(&b, "- %s %s\n\n", position.CurrentAmount1, token1)

		b.WriteString("### PnL\n")
		fmt.Fprintf(&b, "- %s: %s\n", token0, position.PnL.Token0)
		fmt.Fprintf(&b, "- %s: %s\n", token1, position.PnL.Token1)
		fmt.Fprintf(&b, "- USD: %s\n", position.PnL.USD)
		fmt.Fprintf(&b, "- Percentage: %s\n\n", position.PnL.Percentage)
	}

	b.WriteString(EstimateNotice)
	return b.String()
}

// cleanSymbol strips "Uniswap - " style labels and tick range suffixes from NFT derived symbols
func cleanSymbol(symbol string) string {
	if strings.Contains(symbol, " - ") {
		parts := strings.Split(symbol, " - ")
		if strings.ToLower(parts[0]) == "uniswap" {
			symbol = parts[1]
		} else {
			symbol = parts[0]
		}
	}
	return strings.TrimSpace(strings.Split(symbol, "<>")[0])
}

// extractFeeTier only consults token1 when token0 carries no percent sign at all
func extractFeeTier(symbol0, symbol1 string) string {
	switch {
	case strings.Contains(symbol0, "%"):
		return feeTierPattern.FindString(symbol0)
	case strings.Contains(symbol1, "%"):
		return feeTierPattern.FindString(symbol1)
	}
	return ""
}
