// internal/services/common.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/resona/resona-api/internal/cache"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/utils"
)

// ListResult is a read that degrades to an empty list while the ledger is unreachable.
type ListResult[T any] struct {
	Items     []T  `json:"items"`
	Available bool `json:"available"`
}

func degrade[T any](items []T, err error) (ListResult[T], error) {
	if err != nil {
		if ledger.IsUnavailable(err) {
			return ListResult[T]{Items: []T{}, Available: false}, nil
		}
		return ListResult[T]{}, err
	}
	if items == nil {
		items = []T{}
	}
	return ListResult[T]{Items: items, Available: true}, nil
}

// cached fetches through the shared query cache. Keys are scoped to the
// caller because the ledger authorizes every read.
func cached[T any](ctx context.Context, c *cache.QueryCache, s ledger.Session, name string, fetch func(context.Context) (T, error), params ...interface{}) (T, error) {
	key := cache.Key(name, append([]interface{}{s.Principal}, params...)...)
	return cache.Fetch(ctx, c, key, fetch)
}

func validate(req interface{}) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func logMutation(s ledger.Session, action, resourceID string) {
	logrus.WithFields(logrus.Fields{
		"principal":   s.Principal,
		"action":      action,
		"resource_id": resourceID,
	}).Info("Ledger mutation succeeded")
}
