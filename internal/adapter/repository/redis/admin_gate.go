package redis

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/user/project-roster/internal/adapter/metrics"
	"github.com/user/project-roster/internal/domain"
)

const adminKeyPrefix = "roster:admin:"

// AdminGate implements domain.AdminGate with PostgreSQL as the source
// of truth and a Redis read-through cache in front. Cache failures
// degrade to direct database reads; they are never fatal.
type AdminGate struct {
	db      *sql.DB
	client  *redis.Client
	logger  *slog.Logger
	ttl     time.Duration
	metrics *metrics.RosterMetrics
}

// NewAdminGate creates a new admin gate. client may be nil, in which
// case every check goes to the database.
func NewAdminGate(db *sql.DB, client *redis.Client, logger *slog.Logger, ttl time.Duration, m *metrics.RosterMetrics) *AdminGate {
	return &AdminGate{
		db:      db,
		client:  client,
		logger:  logger,
		ttl:     ttl,
		metrics: m,
	}
}

// IsAdmin reports whether userID holds the super-admin flag.
func (g *AdminGate) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	key := adminKeyPrefix + userID.String()

	if g.client != nil {
		val, err := g.client.Get(ctx, key).Result()
		switch {
		case err == nil:
			if g.metrics != nil {
				g.metrics.AdminCacheHits.Inc()
			}
			return val == "1", nil
		case !errors.Is(err, redis.Nil):
			g.logger.Warn("admin cache read failed, falling back to database", "error", err)
		}
	}
	if g.metrics != nil {
		g.metrics.AdminCacheMisses.Inc()
	}

	var isAdmin bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND super_admin = true)`
	if err := g.db.QueryRowContext(ctx, query, userID).Scan(&isAdmin); err != nil {
		return false, domain.NewStorageError(err, "check admin privilege")
	}

	if g.client != nil {
		val := "0"
		if isAdmin {
			val = "1"
		}
		if err := g.client.Set(ctx, key, val, g.ttl).Err(); err != nil {
			g.logger.Warn("admin cache write failed", "error", err)
		}
	}
	return isAdmin, nil
}

var _ domain.AdminGate = (*AdminGate)(nil)
