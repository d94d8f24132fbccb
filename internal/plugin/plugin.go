// Package plugin wires the catalog client and the thumbnail cache into a set
// of named chat commands, and dispatches those commands for a host.
package plugin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ThatCatDev/smutbot/internal/config"
	"github.com/ThatCatDev/smutbot/internal/smutbase"
	"github.com/ThatCatDev/smutbot/internal/thumbcache"
)

// Reply is what a host delivers back to the chat: a text block plus an
// optional local image path.
type Reply struct {
	Text      string
	ImagePath string
}

// Handler executes one chat command. Handlers translate every client and
// cache error into user-readable reply text; a non-nil error means the
// handler itself is broken.
type Handler func(ctx context.Context, args []string) (*Reply, error)

// Host is the capability a chat-bot host exposes to the plugin. The plugin
// never depends on host internals beyond this.
type Host interface {
	RegisterCommand(name string, h Handler)
}

// Plugin holds the command implementations.
type Plugin struct {
	client *smutbase.Client
	cache  *thumbcache.Cache
	cfg    *config.Config
}

// New creates a Plugin over an existing client and cache.
func New(cfg *config.Config, client *smutbase.Client, cache *thumbcache.Cache) *Plugin {
	return &Plugin{client: client, cache: cache, cfg: cfg}
}

// FromConfig builds the client and cache from the configuration and returns
// the assembled Plugin.
func FromConfig(cfg *config.Config) (*Plugin, error) {
	client, err := smutbase.New(smutbase.Options{
		Proxy:      cfg.Proxy,
		Timeout:    time.Duration(cfg.Timeout) * time.Second,
		MaxResults: cfg.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("create catalog client: %w", err)
	}

	transport, err := smutbase.NewProxyTransport(cfg.Proxy)
	if err != nil {
		return nil, err
	}
	cache := thumbcache.New(thumbcache.Options{
		Dir:         cfg.CacheDir,
		AutoCleanup: cfg.AutoCleanup,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		Transport:   transport,
	})

	return New(cfg, client, cache), nil
}

// Register registers every command with the host.
func (p *Plugin) Register(host Host) {
	host.RegisterCommand("smutbase", p.cmdModel)
	host.RegisterCommand("smutbase_search", p.cmdSearch)
	host.RegisterCommand("smutbase_page", p.cmdPage)
	host.RegisterCommand("smutbase_latest", p.cmdLatest)
	host.RegisterCommand("smutbase_popular", p.cmdPopular)
	host.RegisterCommand("smutbase_random", p.cmdRandom)
	host.RegisterCommand("smutbase_category", p.cmdCategory)
	host.RegisterCommand("smutbase_url", p.cmdURL)
	host.RegisterCommand("smutbase_clean", p.cmdClean)
}

// Registry is an in-memory Host used by the built-in REPL and gateway hosts.
type Registry struct {
	commands map[string]Handler
	order    []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Handler)}
}

// RegisterCommand adds a command. Panics on duplicate names.
func (r *Registry) RegisterCommand(name string, h Handler) {
	if _, exists := r.commands[name]; exists {
		panic(fmt.Sprintf("plugin: duplicate command name %q", name))
	}
	r.commands[name] = h
	r.order = append(r.order, name)
}

// Commands returns the registered command names in registration order.
func (r *Registry) Commands() []string {
	return append([]string(nil), r.order...)
}

// Dispatch parses a raw message line into (command, args) and runs the
// matching handler. A leading slash on the command is accepted.
func (r *Registry) Dispatch(ctx context.Context, line string) (*Reply, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return &Reply{Text: "❌ Empty command. Available: " + strings.Join(r.order, ", ")}, nil
	}

	name := strings.TrimPrefix(fields[0], "/")
	handler, ok := r.commands[name]
	if !ok {
		return &Reply{Text: fmt.Sprintf("❌ Unknown command %q. Available: %s", name, strings.Join(r.order, ", "))}, nil
	}

	return handler(ctx, fields[1:])
}
