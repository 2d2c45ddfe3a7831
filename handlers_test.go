package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/korjavin/lppositions/plugin"
	"github.com/korjavin/lppositions/uniswap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateWalletAddress(t *testing.T) {
	tests := []struct {
		name       string
		address    string
		want       string
		wantReason bool
	}{
		{
			name:    "lowercase address is checksummed",
			address: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			want:    "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		},
		{
			name:       "missing prefix",
			address:    "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed00",
			wantReason: true,
		},
		{
			name:       "too short",
			address:    "0x5aaeb6053f3e94c9b9a0",
			wantReason: true,
		},
		{
			name:       "non hex characters",
			address:    "0xzzaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			wantReason: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := validateWalletAddress(tt.address)
			if tt.wantReason {
				assert.NotEmpty(t, reason)
				assert.Empty(t, got)
				return
			}
			assert.Empty(t, reason)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatWalletList(t *testing.T) {
	assert.Contains(t, formatWalletList(nil), "/add_wallet")

	got := formatWalletList([]string{"0xA", "0xB"})
	assert.Equal(t, "Your tracked wallets:\n\n1. 0xA\n2. 0xB\n\nUse /status to check LP positions for these wallets.", got)
}

func TestIsChatText(t *testing.T) {
	assert.True(t, isChatText(&gotgbot.Message{Text: "check 0x1234567890123456789012345678901234567890"}))
	assert.False(t, isChatText(&gotgbot.Message{Text: "/status"}))
	assert.False(t, isChatText(&gotgbot.Message{}))
}

type recordingClient struct {
	contexts []context.Context
}

func (c *recordingClient) FetchPositions(ctx context.Context, walletAddress string) (*uniswap.LPPositionResponse, error) {
	c.contexts = append(c.contexts, ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if walletAddress == "0xfail" {
		return nil, errors.New("lookup failed")
	}
	return uniswap.MockPositions(walletAddress), nil
}

func (c *recordingClient) Close() {}

func TestWalletReportsUsesFreshTimeoutPerWallet(t *testing.T) {
	client := &recordingClient{}
	logger := zap.NewNop().Sugar()
	h := NewBotHandlers(nil, nil, plugin.New(client, logger), logger)
	h.requestTimeout = time.Minute

	wallets := []string{
		"0x1234567890123456789012345678901234567890",
		"0xfail",
		"0x0000000000000000000000000000000000000001",
	}
	reports := h.walletReports(wallets)

	require.Len(t, reports, 3)
	assert.Equal(t, uniswap.FormatPositions(uniswap.MockPositions(wallets[0])), reports[0])
	assert.Equal(t, uniswap.NoPositionsMessage(wallets[1]), reports[1])
	assert.Equal(t, uniswap.NoPositionsMessage(wallets[2]), reports[2])

	require.Len(t, client.contexts, 3)
	for i, ctx := range client.contexts {
		_, ok := ctx.Deadline()
		assert.True(t, ok, "lookup %d has no deadline", i)
		// released once its own lookup finished
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
		if i > 0 {
			assert.NotSame(t, client.contexts[i-1], ctx)
		}
	}
}
