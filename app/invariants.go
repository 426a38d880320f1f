package app

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

type invariantRoute struct {
	moduleName string
	route      string
	invar      sdk.Invariant
}

func (r invariantRoute) fullRoute() string {
	return r.moduleName + "/" + r.route
}

// invariantRegistry collects the invariants modules register and asserts them
// in registration order.
type invariantRegistry struct {
	routes []invariantRoute
}

var _ sdk.InvariantRegistry = (*invariantRegistry)(nil)

func (r *invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.routes = append(r.routes, invariantRoute{moduleName: moduleName, route: route, invar: invar})
}

// assert returns the message of the first broken invariant.
func (r *invariantRegistry) assert(ctx sdk.Context) (string, bool) {
	for _, route := range r.routes {
		if msg, broken := route.invar(ctx); broken {
			return msg, true
		}
	}
	return "", false
}
