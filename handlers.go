package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/ethereum/go-ethereum/common"
	"github.com/korjavin/lppositions/plugin"
	"github.com/korjavin/lppositions/uniswap"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

type BotHandlers struct {
	bot            *gotgbot.Bot
	db             *Database
	plugin         *plugin.Plugin
	logger         *zap.SugaredLogger
	requestTimeout time.Duration
}

func NewBotHandlers(bot *gotgbot.Bot, db *Database, lpPlugin *plugin.Plugin, logger *zap.SugaredLogger) *BotHandlers {
	return &BotHandlers{
		bot:            bot,
		db:             db,
		plugin:         lpPlugin,
		logger:         logger,
		requestTimeout: requestTimeout,
	}
}

func (h *BotHandlers) RegisterHandlers(dispatcher *ext.Dispatcher) {
	dispatcher.AddHandler(handlers.NewCommand("start", h.handleStart))
	dispatcher.AddHandler(handlers.NewCommand("add_wallet", h.handleAddWallet))
	dispatcher.AddHandler(handlers.NewCommand("remove_wallet", h.handleRemoveWallet))
	dispatcher.AddHandler(handlers.NewCommand("list_wallets", h.handleListWallets))
	dispatcher.AddHandler(handlers.NewCommand("status", h.handleStatus))
	dispatcher.AddHandler(handlers.NewMessage(isChatText, h.handleText))
}

// isChatText matches plain text messages that are not bot commands
func isChatText(msg *gotgbot.Message) bool {
	return msg.Text != "" && !strings.HasPrefix(msg.Text, "/")
}

func (h *BotHandlers) handleStart(b *gotgbot.Bot, ctx *ext.Context) error {
	h.logger.Infow("Received start command", "user_id", ctx.EffectiveUser.Id)

	msg := `Welcome to the Uniswap LP Position Tracker!
Send any message containing a wallet address to get an LP positions report.
Available commands:
/add_wallet <address> - Add wallet to track
/remove_wallet <address> - Remove wallet
/list_wallets - Show tracked wallets
/status - Show LP positions for tracked wallets`

	_, err := ctx.EffectiveMessage.Reply(b, msg, &gotgbot.SendMessageOpts{})
	return err
}

// handleText is the chat action hook: free text goes to the plugin actions
func (h *BotHandlers) handleText(b *gotgbot.Bot, ctx *ext.Context) error {
	h.logger.Infow("Received message", "user_id", ctx.EffectiveUser.Id)

	reqCtx, cancel := context.WithTimeout(context.Background(), h.requestTimeout)
	defer cancel()

	reply := func(text string) error {
		_, err := ctx.EffectiveMessage.Reply(b, text, &gotgbot.SendMessageOpts{})
		return err
	}

	handled, err := h.plugin.Dispatch(reqCtx, ctx.EffectiveMessage.Text, reply)
	if !handled {
		h.logger.Debugw("No action accepted message", "user_id", ctx.EffectiveUser.Id)
	}
	return err
}

// validateWalletAddress returns the checksummed address, or a user facing reason it is invalid
func validateWalletAddress(walletAddress string) (string, string) {
	if !strings.HasPrefix(walletAddress, "0x") {
		return "", "Ethereum address must start with '0x'. Please provide a valid address."
	}
	if len(walletAddress) != 42 {
		return "", "Ethereum address must be 42 characters long (including '0x' prefix). Please provide a valid address."
	}
	if !common.IsHexAddress(walletAddress) {
		return "", "Invalid Ethereum address format. Please provide a valid address."
	}
	return common.HexToAddress(walletAddress).Hex(), ""
}

// walletArg reads and validates the address argument of a wallet command.
// When ok is false the user has already been answered.
func (h *BotHandlers) walletArg(b *gotgbot.Bot, ctx *ext.Context, command string) (string, bool, error) {
	args := ctx.Args()
	h.logger.Debugw("Command arguments", "command", command, "args", args)

	// The first argument is the command itself
	if len(args) < 2 {
		_, err := ctx.EffectiveMessage.Reply(b, fmt.Sprintf("Please provide a wallet address: /%s <address>", command), &gotgbot.SendMessageOpts{})
		return "", false, err
	}

	normalized, reason := validateWalletAddress(args[1])
	if reason != "" {
		h.logger.Debugw("Rejected wallet address", "address", args[1], "reason", reason)
		_, err := ctx.EffectiveMessage.Reply(b, reason, &gotgbot.SendMessageOpts{})
		return "", false, err
	}
	return normalized, true, nil
}

func (h *BotHandlers) handleAddWallet(b *gotgbot.Bot, ctx *ext.Context) error {
	h.logger.Infow("Received add_wallet command", "user_id", ctx.EffectiveUser.Id)

	walletAddress, ok, err := h.walletArg(b, ctx, "add_wallet")
	if !ok {
		return err
	}

	if err := h.db.AddWallet(ctx.EffectiveUser.Id, walletAddress); err != nil {
		h.logger.Errorw("Failed to add wallet", "error", err)
		_, err := ctx.EffectiveMessage.Reply(b, "Failed to add wallet. Please try again later.", &gotgbot.SendMessageOpts{})
		return err
	}

	_, err = ctx.EffectiveMessage.Reply(b, fmt.Sprintf("Wallet %s added successfully.", walletAddress), &gotgbot.SendMessageOpts{})
	return err
}

func (h *BotHandlers) handleRemoveWallet(b *gotgbot.Bot, ctx *ext.Context) error {
	h.logger.Infow("Received remove_wallet command", "user_id", ctx.EffectiveUser.Id)

	walletAddress, ok, err := h.walletArg(b, ctx, "remove_wallet")
	if !ok {
		return err
	}

	removed, err := h.db.RemoveWallet(ctx.EffectiveUser.Id, walletAddress)
	if err != nil {
		h.logger.Errorw("Failed to remove wallet", "error", err)
		_, err := ctx.EffectiveMessage.Reply(b, "Failed to remove wallet. Please try again later.", &gotgbot.SendMessageOpts{})
		return err
	}

	msg := fmt.Sprintf("Wallet %s removed successfully.", walletAddress)
	if !removed {
		msg = fmt.Sprintf("Wallet %s is not being tracked.", walletAddress)
	}
	_, err = ctx.EffectiveMessage.Reply(b, msg, &gotgbot.SendMessageOpts{})
	return err
}

func (h *BotHandlers) handleListWallets(b *gotgbot.Bot, ctx *ext.Context) error {
	h.logger.Infow("Received list_wallets command", "user_id", ctx.EffectiveUser.Id)

	wallets, err := h.db.GetWallets(ctx.EffectiveUser.Id)
	if err != nil {
		h.logger.Errorw("Failed to get wallets", "error", err)
		_, err := ctx.EffectiveMessage.Reply(b, "Failed to retrieve wallets. Please try again later.", &gotgbot.SendMessageOpts{})
		return err
	}

	_, err = ctx.EffectiveMessage.Reply(b, formatWalletList(wallets), &gotgbot.SendMessageOpts{})
	return err
}

func formatWalletList(wallets []string) string {
	if len(wallets) == 0 {
		return "You don't have any wallets added yet. Use /add_wallet <address> to add one."
	}

	var sb strings.Builder
	sb.WriteString("Your tracked wallets:\n\n")
	for i, wallet := range wallets {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, wallet)
	}
	sb.WriteString("\nUse /status to check LP positions for these wallets.")
	return sb.String()
}

func (h *BotHandlers) handleStatus(b *gotgbot.Bot, ctx *ext.Context) error {
	h.logger.Infow("Received status command", "user_id", ctx.EffectiveUser.Id)

	statusMsg, err := ctx.EffectiveMessage.Reply(b, "Fetching LP positions... This may take a moment.", &gotgbot.SendMessageOpts{})
	if err != nil {
		return err
	}

	wallets, err := h.db.GetWallets(ctx.EffectiveUser.Id)
	if err != nil {
		h.logger.Errorw("Failed to get wallets", "error", err)
		_, _, err = statusMsg.EditText(b, "Failed to retrieve wallets. Please try again later.", &gotgbot.EditMessageTextOpts{})
		return err
	}

	if len(wallets) == 0 {
		_, _, err = statusMsg.EditText(b, "You don't have any wallets added yet. Use /add_wallet <address> to add one.", &gotgbot.EditMessageTextOpts{})
		return err
	}

	// One report per wallet keeps each reply under the message size limit
	for _, report := range h.walletReports(wallets) {
		if _, err := ctx.EffectiveMessage.Reply(b, report, &gotgbot.SendMessageOpts{}); err != nil {
			h.logger.Warnw("Failed to send wallet report", "error", err)
		}
	}

	_, _, err = statusMsg.EditText(b, fmt.Sprintf("Checked %d wallet(s).", len(wallets)), &gotgbot.EditMessageTextOpts{})
	return err
}

// walletReports builds one LP report per wallet. Each lookup gets its own timeout.
func (h *BotHandlers) walletReports(wallets []string) []string {
	reports := make([]string, 0, len(wallets))
	for _, wallet := range wallets {
		reports = append(reports, h.walletReport(wallet))
	}
	return reports
}

func (h *BotHandlers) walletReport(wallet string) string {
	reqCtx, cancel := context.WithTimeout(context.Background(), h.requestTimeout)
	defer cancel()

	response, err := h.plugin.Service.FetchPositions(reqCtx, wallet)
	if err != nil {
		h.logger.Errorw("Failed to fetch positions", "wallet", wallet, "error", err)
		return uniswap.NoPositionsMessage(wallet)
	}
	if response == nil {
		return uniswap.NoPositionsMessage(wallet)
	}
	return uniswap.FormatPositions(response)
}
