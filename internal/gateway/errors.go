package gateway

import "fmt"

// RoutingErrorKind separates the two unresolvable-triple conditions
type RoutingErrorKind int

const (
	ServiceNotRegistered RoutingErrorKind = iota
	EndpointNotFound
)

// RoutingError reports a triple the dispatch table could not resolve.
// It is a system-level condition: the HTTP adapter logs it, unlike
// business errors, which pass through to the caller unlogged.
type RoutingError struct {
	Service  string
	Endpoint string
	Method   string
	Kind     RoutingErrorKind
}

func (e *RoutingError) Error() string {
	if e.Kind == ServiceNotRegistered {
		return fmt.Sprintf("service %q is not registered in the gateway routing table", e.Service)
	}
	return fmt.Sprintf("endpoint not found: %s %s%s", e.Method, e.Service, e.Endpoint)
}
