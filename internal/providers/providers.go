// Package providers defines where raw offer records come from. A Source
// only retrieves bytes; parsing and validation live in the store.
package providers

import "context"

type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}
