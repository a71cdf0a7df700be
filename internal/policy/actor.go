package policy

import (
	"context"
	"time"

	"github.com/diewo77/go-tms/gate"
	"github.com/diewo77/go-tms/internal/models"
	"gorm.io/gorm"
)

// DBActorResolver loads the acting user for a session id, with the
// structure preloaded so scope checks need no further queries.
type DBActorResolver struct {
	DB *gorm.DB
}

// Resolve implements gate.Resolver.
func (r *DBActorResolver) Resolve(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Preload("Structure").First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// NewActorResolver wraps the DB resolver with a TTL cache. Invalidate a
// user after any change to their state, role or structure.
func NewActorResolver(db *gorm.DB, ttl time.Duration) *gate.CachedResolver[uint, *models.User] {
	return gate.NewCachedResolver[uint, *models.User](&DBActorResolver{DB: db}, ttl)
}
