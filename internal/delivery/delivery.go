// Package delivery defines the inbound transport abstraction.
package delivery

import "context"

// Delivery is a server that accepts external traffic. Implementations are
// collected into the "deliveries" fx group and started together.
type Delivery interface {
	Serve(ctx context.Context) error
}
