package uniswap

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// The figures produced here are placeholder estimates derived from the token
// id. They are not computed from on-chain liquidity or fee data.

const (
	unknownSymbol        = "Unknown"
	unknownAddress       = "0x0"
	placeholderLiquidity = "1000000000000000000"

	tokenIDModulus = 1000000
)

type assetClass int

const (
	assetOther assetClass = iota
	assetETH
	assetBTC
	assetUSD
)

// Assumed USD prices per asset class
var assetPrices = map[assetClass]float64{
	assetETH: 3000,
	assetBTC: 60000,
	assetUSD: 1,
}

const defaultBaseUSD = 1000

func classifySymbol(symbol string) assetClass {
	switch {
	case strings.Contains(symbol, "ETH"):
		return assetETH
	case strings.Contains(symbol, "BTC"):
		return assetBTC
	case strings.Contains(symbol, "USD"):
		return assetUSD
	default:
		return assetOther
	}
}

// DerivePosition turns one position NFT into an LPPosition. The boolean result
// is false when the position is considered inactive and should be skipped.
func DerivePosition(nft OwnedNFT) (*LPPosition, bool, error) {
	tokenID := nft.ID.TokenID

	n, err := tokenIDNumber(tokenID)
	if err != nil {
		return nil, false, err
	}

	if !isActive(n) {
		return nil, false, nil
	}

	token0, token1, err := extractTokens(decodeMetadata(nft.Metadata))
	if err != nil {
		return nil, false, fmt.Errorf("token %s: %w", tokenID, err)
	}

	id, err := displayID(tokenID)
	if err != nil {
		return nil, false, err
	}

	pnlPercentage := float64(n%20-10) / 2

	deposited0 := depositedAmount(token0.Symbol, n, false)
	deposited1 := depositedAmount(token1.Symbol, n, true)

	pnl0 := toFixed(parseAmount(deposited0)*pnlPercentage/100, 6)
	pnl1 := toFixed(parseAmount(deposited1)*pnlPercentage/100, 6)

	usdValue := toFixed(baseUSDValue(token0.Symbol, deposited0, token1.Symbol, deposited1)*pnlPercentage/100, 2)

	return &LPPosition{
		ID:               id,
		Token0:           token0,
		Token1:           token1,
		Liquidity:        placeholderLiquidity,
		DepositedAmount0: deposited0,
		DepositedAmount1: deposited1,
		CurrentAmount0:   toFixed(parseAmount(deposited0)+parseAmount(pnl0), 6),
		CurrentAmount1:   toFixed(parseAmount(deposited1)+parseAmount(pnl1), 6),
		PnL: PnL{
			Token0:     signed(pnl0),
			Token1:     signed(pnl1),
			USD:        signedUSD(usdValue),
			Percentage: percentage(pnlPercentage),
		},
	}, true, nil
}

// isActive drops roughly one position in five
func isActive(tokenIDNum int64) bool {
	return tokenIDNum%5 != 0
}

func tokenIDNumber(tokenID string) (int64, error) {
	digits := strings.Replace(tokenID, "0x", "", 1)
	value, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return 0, fmt.Errorf("invalid token id %q", tokenID)
	}
	return new(big.Int).Mod(value, big.NewInt(tokenIDModulus)).Int64(), nil
}

// displayID reads the last six hex digits of the token id as a short number
func displayID(tokenID string) (string, error) {
	short := tokenID
	if len(short) > 6 {
		short = short[len(short)-6:]
	}
	short = strings.TrimPrefix(short, "0x")

	value, err := strconv.ParseUint(short, 16, 64)
	if err != nil {
		return "", fmt.Errorf("invalid token id %q: %w", tokenID, err)
	}
	return fmt.Sprintf("#%d", value%10000), nil
}

func depositedAmount(symbol string, n int64, secondToken bool) string {
	switch classifySymbol(symbol) {
	case assetETH:
		return toFixed(float64(n%100)/100+0.1, 4)
	case assetBTC:
		return toFixed(float64(n%100)/1000+0.01, 6)
	case assetUSD:
		return toFixed(float64(n%10000+100), 2)
	}
	if secondToken {
		return toFixed(float64(n%1000+10), 2)
	}
	return toFixed(float64(n%100)/10, 2)
}

// baseUSDValue prices the first recognisable side of the pair
func baseUSDValue(symbol0, amount0, symbol1, amount1 string) float64 {
	if price, ok := assetPrices[classifySymbol(symbol0)]; ok {
		return parseAmount(amount0) * price
	}
	if price, ok := assetPrices[classifySymbol(symbol1)]; ok {
		return parseAmount(amount1) * price
	}
	return defaultBaseUSD
}

func decodeMetadata(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var metadata map[string]any
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil
	}
	return metadata
}

// extractTokens reads token symbols and addresses from loosely shaped
// metadata. Attributes are read first, direct fields override them and the
// name is only split for symbols that are still unknown.
func extractTokens(metadata map[string]any) (Token, Token, error) {
	token0 := Token{Symbol: unknownSymbol, Address: unknownAddress}
	token1 := Token{Symbol: unknownSymbol, Address: unknownAddress}
	if metadata == nil {
		return token0, token1, nil
	}

	attributeTargets := map[string]*string{
		"Token0":        &token0.Symbol,
		"token0":        &token0.Symbol,
		"Token1":        &token1.Symbol,
		"token1":        &token1.Symbol,
		"Token0Address": &token0.Address,
		"token0Address": &token0.Address,
		"Token1Address": &token1.Address,
		"token1Address": &token1.Address,
	}
	attributes, _ := metadata["attributes"].([]any)
	for _, item := range attributes {
		attr, ok := item.(map[string]any)
		if !ok {
			continue
		}
		traitType, _ := attr["trait_type"].(string)
		target, ok := attributeTargets[traitType]
		if !ok {
			continue
		}
		value, present, err := stringValue(attr["value"])
		if err != nil {
			return token0, token1, fmt.Errorf("attribute %s: %w", traitType, err)
		}
		if present {
			*target = value
		}
	}

	directFields := []struct {
		key    string
		target *string
	}{
		{"token0Symbol", &token0.Symbol},
		{"token1Symbol", &token1.Symbol},
		{"token0", &token0.Symbol},
		{"token1", &token1.Symbol},
		{"token0Address", &token0.Address},
		{"token1Address", &token1.Address},
	}
	for _, field := range directFields {
		value, present, err := stringValue(metadata[field.key])
		if err != nil {
			return token0, token1, fmt.Errorf("field %s: %w", field.key, err)
		}
		if present && value != "" {
			*field.target = value
		}
	}

	if name, ok := metadata["name"].(string); ok {
		parts := strings.Split(name, "/")
		if len(parts) >= 2 {
			if token0.Symbol == "" || token0.Symbol == unknownSymbol {
				token0.Symbol = strings.TrimSpace(parts[0])
			}
			if token1.Symbol == "" || token1.Symbol == unknownSymbol {
				token1.Symbol = strings.TrimSpace(parts[1])
			}
		}
	}

	return token0, token1, nil
}

// stringValue accepts strings and falsy JSON values. Anything else cannot be
// used as a symbol or address.
func stringValue(v any) (string, bool, error) {
	switch value := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return value, true, nil
	case bool:
		if !value {
			return "", false, nil
		}
	case float64:
		if value == 0 {
			return "", false, nil
		}
	}
	return "", false, fmt.Errorf("unexpected %T value", v)
}

func toFixed(v float64, digits int) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "+"), 64)
	if err != nil {
		return 0
	}
	return v
}

func signed(amount string) string {
	if parseAmount(amount) > 0 {
		return "+" + amount
	}
	return amount
}

func signedUSD(amount string) string {
	v := parseAmount(amount)
	switch {
	case v > 0:
		return "+" + amount
	case v < 0:
		return "-" + toFixed(math.Abs(v), 2)
	default:
		return "0.00"
	}
}

func percentage(pct float64) string {
	if pct > 0 {
		return "+" + toFixed(pct, 2) + "%"
	}
	return toFixed(pct, 2) + "%"
}
