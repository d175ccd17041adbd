package gateway

import (
	"fmt"
	"sync"

	"github.com/hireplan-ai/hireplan/internal/config"
)

// Registry holds named gateway clients. It is populated at startup and
// shared read-only across sessions afterwards.
type Registry struct {
	mu          sync.RWMutex
	clients     map[string]Client
	defaultName string
}

// NewRegistry creates an empty gateway registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]Client),
	}
}

// NewRegistryFromConfig builds a registry containing every enabled gateway.
func NewRegistryFromConfig(cfg *config.Config) (*Registry, error) {
	r := NewRegistry()

	for _, gwCfg := range cfg.Gateways {
		if !gwCfg.Enabled {
			continue
		}
		client, err := NewClientFromConfig(gwCfg)
		if err != nil {
			return nil, err
		}
		if err := r.Register(client); err != nil {
			return nil, err
		}
	}

	if cfg.DefaultGateway != "" {
		if err := r.SetDefault(cfg.DefaultGateway); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// NewClientFromConfig creates a single client for a gateway config entry.
func NewClientFromConfig(cfg config.GatewayConfig) (Client, error) {
	switch cfg.Type {
	case "gemini":
		return NewGeminiClient(cfg)
	case "openai":
		return NewOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unknown gateway type %q for %s", cfg.Type, cfg.Name)
	}
}

// Register adds a client to the registry. The first registered client
// becomes the default.
func (r *Registry) Register(client Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := client.Name()
	if _, exists := r.clients[name]; exists {
		return fmt.Errorf("gateway %s already registered", name)
	}

	r.clients[name] = client
	if r.defaultName == "" {
		r.defaultName = name
	}

	return nil
}

// Get retrieves a client by name.
func (r *Registry) Get(name string) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, exists := r.clients[name]
	if !exists {
		return nil, fmt.Errorf("gateway %s not found", name)
	}

	return client, nil
}

// Default returns the default client.
func (r *Registry) Default() (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.defaultName == "" {
		return nil, fmt.Errorf("no gateways registered")
	}

	return r.clients[r.defaultName], nil
}

// SetDefault changes which registered client is the default.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[name]; !exists {
		return fmt.Errorf("gateway %s not found", name)
	}

	r.defaultName = name
	return nil
}

// List returns all registered gateway names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}

	return names
}

// Clients returns all registered clients, for health checking.
func (r *Registry) Clients() []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]Client, 0, len(r.clients))
	for _, client := range r.clients {
		clients = append(clients, client)
	}

	return clients
}

// CloseAll closes every registered client.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for name, client := range r.clients {
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close gateway %s: %w", name, err)
		}
	}

	return firstErr
}
