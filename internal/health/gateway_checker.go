package health

import (
	"context"

	"github.com/hireplan-ai/hireplan/internal/gateway"
)

// GatewayChecker verifies that one language-model gateway is reachable and
// authenticated by issuing its lightweight health request.
type GatewayChecker struct {
	client gateway.Client
}

// NewGatewayChecker creates a checker for the given gateway client.
func NewGatewayChecker(client gateway.Client) *GatewayChecker {
	return &GatewayChecker{client: client}
}

// Name implements Checker.
func (c *GatewayChecker) Name() string {
	return "gateway-" + c.client.Name()
}

// Check implements Checker.
func (c *GatewayChecker) Check(ctx context.Context) *Result {
	if err := c.client.Health(ctx); err != nil {
		return Unhealthy("gateway unreachable").
			WithDetail("gateway", c.client.Name()).
			WithDetail("error", err.Error())
	}
	return Healthy("gateway reachable").
		WithDetail("gateway", c.client.Name())
}

// RegistryChecker verifies the gateway registry has a usable default
// client. A registry with enabled gateways but no resolvable default means
// every plan request will fail.
type RegistryChecker struct {
	registry *gateway.Registry
}

// NewRegistryChecker creates a checker for the gateway registry.
func NewRegistryChecker(registry *gateway.Registry) *RegistryChecker {
	return &RegistryChecker{registry: registry}
}

// Name implements Checker.
func (c *RegistryChecker) Name() string {
	return "gateway-registry"
}

// Check implements Checker.
func (c *RegistryChecker) Check(ctx context.Context) *Result {
	names := c.registry.List()
	if len(names) == 0 {
		return Unhealthy("no gateways configured").
			WithDetail("gateways", names)
	}

	client, err := c.registry.Default()
	if err != nil {
		return Unhealthy("no default gateway").
			WithDetail("gateways", names).
			WithDetail("error", err.Error())
	}

	return Healthy("default gateway resolved").
		WithDetail("default", client.Name()).
		WithDetail("gateways", names)
}
