// internal/cache/cache.go
package cache

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Query names. Mutations invalidate by name.
const (
	CurrentUserProfile     = "currentUserProfile"
	Products               = "products"
	ArtistProducts         = "artistProducts"
	Certificates           = "certificates"
	VerifyProduct          = "verifyProduct"
	Orders                 = "orders"
	BuyerOrders            = "buyerOrders"
	ArtistOrders           = "artistOrders"
	ArtistOrderSummary     = "artistOrderSummary"
	FilteredArtistOrders   = "filteredArtistOrders"
	OrderDetails           = "orderDetails"
	HubOrders              = "hubOrders"
	Hubs                   = "hubs"
	AllHubs                = "allHubs"
	CallerHub              = "callerHub"
	CallerHubs             = "callerHubs"
	Payments               = "payments"
	ArtistPayments         = "artistPayments"
	ArtistDashboardSummary = "artistDashboardSummary"
	InventoryByHub         = "inventoryByHub"
	ProductInventoryByHub  = "productInventoryByHub"
	ArtistInventory        = "artistInventory"
	HubInventorySummary    = "hubInventorySummary"
	RecentHubActivity      = "recentHubActivity"
	LowStockAlerts         = "lowStockAlerts"
	Tours                  = "tours"
	ArtistTours            = "artistTours"
	TourSummary            = "tourSummary"
	FilteredTours          = "filteredTours"
	StripeConfigured       = "stripeConfigured"
)

// Key builds a cache key from a query name and already-normalized parameters.
func Key(name string, params ...interface{}) string {
	if len(params) == 0 {
		return name
	}
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, name)
	for _, p := range params {
		parts = append(parts, formatParam(p))
	}
	return strings.Join(parts, ":")
}

func formatParam(p interface{}) string {
	switch v := p.(type) {
	case nil:
		return "-"
	case string:
		return v
	case *string:
		if v == nil {
			return "-"
		}
		return *v
	case *int64:
		if v == nil {
			return "-"
		}
		return fmt.Sprint(*v)
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, k+"="+v[k])
		}
		return "{" + strings.Join(pairs, ",") + "}"
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "-"
		}
		return fmt.Sprint(rv.Elem().Interface())
	}
	return fmt.Sprint(p)
}

func nameOf(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

type entry struct {
	value     interface{}
	fetchedAt time.Time
}

// QueryCache is the single shared store of ledger query results.
type QueryCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	lastSweep time.Time
	group     singleflight.Group
	ttl       time.Duration
	now       func() time.Time
	log       *logrus.Entry
}

func New(ttl time.Duration) *QueryCache {
	return &QueryCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
		log:     logrus.WithField("component", "cache"),
	}
}

// TTL is how long a fetched result stays fresh.
func (c *QueryCache) TTL() time.Duration {
	return c.ttl
}

// Fetch returns the cached value for key or runs fetch once for all concurrent
// callers of the same key. Failed fetches are not cached.
//
// The shared fetch does not inherit ctx cancellation: a caller that goes away
// stops waiting, but the others still receive the result. Deadlines come from
// the ledger client timeout.
func Fetch[T any](ctx context.Context, c *QueryCache, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := c.get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		result, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		c.set(key, result)
		return result, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		if res.Shared {
			c.log.WithField("key", key).Debug("Coalesced query fetch")
		}
		return res.Val.(T), nil
	}
}

func (c *QueryCache) expired(e entry, now time.Time) bool {
	return c.ttl > 0 && now.Sub(e.fetchedAt) > c.ttl
}

func (c *QueryCache) get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.expired(e, c.now()) {
		return nil, false
	}
	return e.value, true
}

// set stores value and, at most once per TTL, drops expired entries.
func (c *QueryCache) set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[key] = entry{value: value, fetchedAt: now}

	if c.ttl <= 0 || now.Sub(c.lastSweep) < c.ttl {
		return
	}
	c.lastSweep = now
	for k, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, k)
		}
	}
}

// Invalidate drops every key under the given query names.
func (c *QueryCache) Invalidate(names ...string) {
	if len(names) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if _, ok := drop[nameOf(key)]; ok {
			delete(c.entries, key)
			removed++
		}
	}
	c.log.WithFields(logrus.Fields{"queries": names, "removed": removed}).Debug("Invalidated queries")
}

// Clear drops everything, e.g. when the caller identity changes.
func (c *QueryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

func (c *QueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Invalidation sets applied after successful mutations.
var (
	ProductMutation   = []string{Products, ArtistProducts, ArtistDashboardSummary}
	OrderPlaced       = []string{Orders, BuyerOrders, ArtistOrders, ArtistOrderSummary, FilteredArtistOrders, ArtistDashboardSummary}
	OrderStatusChange = []string{Orders, BuyerOrders, ArtistOrders, ArtistOrderSummary, FilteredArtistOrders, HubOrders, OrderDetails, ArtistDashboardSummary}
	HubOwnerMutation  = []string{Hubs, AllHubs, CallerHub, CallerHubs}
	HubAdminMutation  = []string{Hubs, AllHubs}
	InventoryMutation = []string{InventoryByHub, ProductInventoryByHub, ArtistInventory, HubInventorySummary, LowStockAlerts}
	TourMutation      = []string{Tours, ArtistTours, TourSummary, FilteredTours}
	ProfileMutation   = []string{CurrentUserProfile}
	CertificateMinted = []string{Certificates, VerifyProduct}
	StripeMutation    = []string{StripeConfigured}
)
