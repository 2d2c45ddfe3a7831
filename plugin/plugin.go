// Package plugin defines the chat agent contract and the LP positions plugin.
package plugin

import (
	"context"
	"strings"

	"github.com/korjavin/lppositions/uniswap"
	"go.uber.org/zap"
)

// Callback emits a text reply to the chat the message came from
type Callback func(text string) error

// Example is one user/agent exchange used to describe an action
type Example struct {
	User  string
	Agent string
}

// Action is a chat hook that reacts to free-form message text
type Action struct {
	Name        string
	Similes     []string
	Description string
	Examples    []Example

	// SuppressInitialMessage asks the host not to send its own reply before the action's
	SuppressInitialMessage bool

	Validate func(ctx context.Context, text string) bool
	Handle   func(ctx context.Context, text string, callback Callback) error
}

// Matches reports whether name is the action name or one of its similes
func (a *Action) Matches(name string) bool {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == a.Name {
		return true
	}
	for _, s := range a.Similes {
		if name == s {
			return true
		}
	}
	return false
}

// Plugin groups the actions and services the host registers
type Plugin struct {
	Name        string
	Description string
	Actions     []*Action
	Service     uniswap.Client
}

// New builds the LP positions plugin around a position service
func New(service uniswap.Client, logger *zap.SugaredLogger) *Plugin {
	return &Plugin{
		Name:        "lpPositions",
		Description: "Track and analyze Uniswap LP positions",
		Actions:     []*Action{NewLPPositionsAction(service, logger)},
		Service:     service,
	}
}

// Dispatch runs the first action that accepts the message. It returns false when no action did.
func (p *Plugin) Dispatch(ctx context.Context, text string, callback Callback) (bool, error) {
	for _, action := range p.Actions {
		if action.Validate != nil && !action.Validate(ctx, text) {
			continue
		}
		return true, action.Handle(ctx, text, callback)
	}
	return false, nil
}

// Close releases the plugin's service
func (p *Plugin) Close() {
	if p.Service != nil {
		p.Service.Close()
	}
}
