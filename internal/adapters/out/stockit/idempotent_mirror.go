package stockit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/ports"
	"donations/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace      = "donations"
	designationPrefix = "stockit_designation"
	lockPrefix        = "stockit_lock"

	DefaultLinkTTL = 24 * time.Hour
	DefaultLockTTL = 30 * time.Second
)

// ErrPackageSyncInFlight is returned while another mirror call for the same package runs.
var ErrPackageSyncInFlight = errors.New("stockit sync for package already in flight")

type cmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	SetNX(context.Context, string, any, time.Duration) *redis.BoolCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// link is what redis remembers about the last push of a package: the package mirror
// version it carried and the order it designated to (empty after an undesignation).
type link struct {
	version int64
	orderID string
}

func (l link) String() string {
	return strconv.FormatInt(l.version, 10) + ":" + l.orderID
}

func parseLink(raw string) (link, error) {
	version, orderID, ok := strings.Cut(raw, ":")
	if !ok {
		return link{}, fmt.Errorf("malformed designation link %q", raw)
	}
	v, err := strconv.ParseInt(version, 10, 64)
	if err != nil {
		return link{}, fmt.Errorf("malformed designation link %q: %w", raw, err)
	}
	return link{version: v, orderID: orderID}, nil
}

// IdempotentMirror serializes Stockit calls per package with a redis lock and remembers
// the last link pushed. Under the lock it skips pushes Stockit already holds and rejects
// pushes older than the remembered one with ports.ErrStaleMirrorPush. Redis outages
// degrade to plain pass-through.
type IdempotentMirror struct {
	next    ports.InventoryMirror
	store   cmdable
	linkTTL time.Duration
	lockTTL time.Duration
	log     *logger.Logger
}

var _ ports.InventoryMirror = (*IdempotentMirror)(nil)

func NewIdempotentMirror(next ports.InventoryMirror, client *redis.Client, linkTTL time.Duration, log *logger.Logger) *IdempotentMirror {
	return newIdempotentMirror(next, client, linkTTL, DefaultLockTTL, log)
}

func newIdempotentMirror(next ports.InventoryMirror, store cmdable, linkTTL, lockTTL time.Duration, log *logger.Logger) *IdempotentMirror {
	if linkTTL <= 0 {
		linkTTL = DefaultLinkTTL
	}
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &IdempotentMirror{next: next, store: store, linkTTL: linkTTL, lockTTL: lockTTL, log: log}
}

func (m *IdempotentMirror) DesignateToStockitOrder(ctx context.Context, pkg *donation.Package, order ports.StockitOrderRef) error {
	ctx = m.log.WithPackageID(ctx, pkg.ID().String())
	want := link{version: pkg.MirrorVersion(), orderID: order.OrderID.String()}

	return m.withLock(ctx, pkg, func(current *link) error {
		if current != nil {
			if current.version >= want.version && current.orderID == want.orderID {
				m.log.Debug(ctx, "stockit already holds designation, skipping")
				return nil
			}
			if current.version > want.version {
				return fmt.Errorf("%w: pushing version %d, stockit has %d",
					ports.ErrStaleMirrorPush, want.version, current.version)
			}
		}
		if err := m.next.DesignateToStockitOrder(ctx, pkg, order); err != nil {
			return err
		}
		m.remember(ctx, pkg, want)
		return nil
	})
}

func (m *IdempotentMirror) UndesignateFromStockitOrder(ctx context.Context, pkg *donation.Package) error {
	ctx = m.log.WithPackageID(ctx, pkg.ID().String())
	want := link{version: pkg.MirrorVersion()}

	return m.withLock(ctx, pkg, func(current *link) error {
		if current != nil {
			if current.version >= want.version && current.orderID == "" {
				m.log.Debug(ctx, "stockit holds no designation, skipping")
				return nil
			}
			if current.version > want.version {
				return fmt.Errorf("%w: clearing version %d, stockit has %d",
					ports.ErrStaleMirrorPush, want.version, current.version)
			}
		}
		if err := m.next.UndesignateFromStockitOrder(ctx, pkg); err != nil {
			return err
		}
		m.remember(ctx, pkg, want)
		return nil
	})
}

func (m *IdempotentMirror) remember(ctx context.Context, pkg *donation.Package, l link) {
	linkKey := buildKey(designationPrefix, pkg.ID().String())
	if err := m.store.Set(ctx, linkKey, l.String(), m.linkTTL).Err(); err != nil {
		m.log.Warn(ctx, "designation cache not updated", err)
	}
}

// withLock runs fn under the package lock with the link read after the lock was granted.
// current is nil when no link is remembered or redis could not be read.
func (m *IdempotentMirror) withLock(ctx context.Context, pkg *donation.Package, fn func(current *link) error) error {
	lockKey := buildKey(lockPrefix, pkg.ID().String())

	acquired, err := m.store.SetNX(ctx, lockKey, "1", m.lockTTL).Result()
	if err != nil {
		m.log.Warn(ctx, "stockit lock unavailable, calling without it", err)
		return fn(nil)
	}
	if !acquired {
		return ErrPackageSyncInFlight
	}
	defer func() {
		if err := m.store.Del(ctx, lockKey).Err(); err != nil {
			m.log.Warn(ctx, "stockit lock not released", err)
		}
	}()

	return fn(m.currentLink(ctx, pkg))
}

func (m *IdempotentMirror) currentLink(ctx context.Context, pkg *donation.Package) *link {
	raw, err := m.store.Get(ctx, buildKey(designationPrefix, pkg.ID().String())).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return nil
	case err != nil:
		m.log.Warn(ctx, "designation cache unavailable", err)
		return nil
	}

	l, err := parseLink(raw)
	if err != nil {
		m.log.Warn(ctx, "designation cache entry ignored", err)
		return nil
	}
	return &l
}

func buildKey(parts ...string) string {
	return keyNamespace + ":" + strings.Join(parts, ":")
}
