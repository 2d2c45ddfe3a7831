// Command lpreport runs the LP positions action once and prints the reply.
//
//	lpreport "Check my LP positions: 0x1234567890123456789012345678901234567890"
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/korjavin/lppositions/config"
	"github.com/korjavin/lppositions/plugin"
	"github.com/korjavin/lppositions/uniswap"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: lpreport <message text>")
		os.Exit(2)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := zap.NewNop()
	if cfg.Debug {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	service, err := uniswap.NewLPPositionService(uniswap.ServiceConfig{
		BaseURL:      cfg.AlchemyBaseURL,
		APIKey:       cfg.AlchemyAPIKey,
		Timeout:      cfg.HTTPTimeout,
		MockFallback: cfg.MockFallback,
	}, sugar)
	if err != nil {
		sugar.Fatalf("Failed to initialize LP position service: %v", err)
	}
	lpPlugin := plugin.New(service, sugar)
	defer lpPlugin.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	defer cancel()

	text := strings.Join(os.Args[1:], " ")
	_, err = lpPlugin.Dispatch(ctx, text, func(reply string) error {
		_, err := fmt.Println(reply)
		return err
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
