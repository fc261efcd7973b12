// Package delivery defines the contract every transport front end
// (HTTP servers, workers) fulfills so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport endpoint of the application.
type Delivery interface {
	// Serve blocks until the endpoint stops or fails.
	Serve(ctx context.Context) error
}
