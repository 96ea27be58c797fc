// Package gateway implements the service dispatch table: the single
// chokepoint mapping a (service, endpoint, method) triple to exactly one
// controller operation.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Request carries the raw body, the trailing identifier segment for
// "{id}"-style endpoints, and the authenticated caller's id when the
// route sits behind the JWT middleware (empty on public routes).
type Request struct {
	Body   json.RawMessage
	Param  string
	UserID string
}

// Operation is a controller operation invocable through the dispatcher.
// Whatever it returns is passed back to the caller unmodified.
type Operation func(ctx context.Context, req Request) (any, error)

type routeKey struct {
	endpoint string
	method   string
}

// Router is a constructed, dependency-injected dispatch table. It is
// stateless at request time; Validate is run once after registration.
type Router struct {
	services map[string]map[routeKey]Operation
	aliases  map[string]string
}

// New creates an empty Router
func New() *Router {
	return &Router{
		services: make(map[string]map[routeKey]Operation),
		aliases:  make(map[string]string),
	}
}

// Register adds an operation under (service, endpoint, method). An
// endpoint ending in "/{id}" matches any single trailing identifier
// segment, delivered as Request.Param. Later registrations of the same
// triple overwrite earlier ones.
func (r *Router) Register(service, endpoint, method string, op Operation) {
	if r.services[service] == nil {
		r.services[service] = make(map[routeKey]Operation)
	}
	r.services[service][routeKey{endpoint: endpoint, method: strings.ToUpper(method)}] = op
}

// Alias makes name route to the same table as target, e.g. "catalog"
// for "product".
func (r *Router) Alias(name, target string) {
	r.aliases[name] = target
}

// Validate checks the table for completeness: at least one service, no
// service without operations, no nil operation, no dangling alias.
// Run at startup so gaps surface before the first request.
func (r *Router) Validate() error {
	if len(r.services) == 0 {
		return fmt.Errorf("gateway routing table is empty")
	}
	for service, routes := range r.services {
		if len(routes) == 0 {
			return fmt.Errorf("service %q has no registered endpoints", service)
		}
		for key, op := range routes {
			if op == nil {
				return fmt.Errorf("service %q endpoint %s %s has a nil operation", service, key.method, key.endpoint)
			}
			if !strings.HasPrefix(key.endpoint, "/") {
				return fmt.Errorf("service %q endpoint %q must start with '/'", service, key.endpoint)
			}
		}
	}
	for name, target := range r.aliases {
		if _, ok := r.services[target]; !ok {
			return fmt.Errorf("alias %q points at unregistered service %q", name, target)
		}
	}
	return nil
}

// Route resolves and invokes exactly one operation. Lookup is two-level:
// service, then exact (endpoint, method); when the exact match misses,
// the trailing segment is split off and retried against an "/{id}"
// registration. Unresolvable triples yield a *RoutingError, which is
// distinguishable from business errors raised inside operations.
func (r *Router) Route(ctx context.Context, service, endpoint, method string, req Request) (any, error) {
	if target, ok := r.aliases[service]; ok {
		service = target
	}
	routes, ok := r.services[service]
	if !ok {
		return nil, &RoutingError{Service: service, Endpoint: endpoint, Method: method, Kind: ServiceNotRegistered}
	}

	method = strings.ToUpper(method)
	if op, ok := routes[routeKey{endpoint: endpoint, method: method}]; ok {
		return op(ctx, req)
	}

	// Prefix split for identifier segments: /detail/p1 -> /detail/{id}
	if idx := strings.LastIndex(endpoint, "/"); idx > 0 {
		prefix, id := endpoint[:idx], endpoint[idx+1:]
		if id != "" {
			if op, ok := routes[routeKey{endpoint: prefix + "/{id}", method: method}]; ok {
				req.Param = id
				return op(ctx, req)
			}
		}
	}

	return nil, &RoutingError{Service: service, Endpoint: endpoint, Method: method, Kind: EndpointNotFound}
}
