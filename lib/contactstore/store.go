// Package contactstore persists contact messages and owner push subscriptions.
package contactstore

import (
	"context"

	_ "github.com/ncruces/go-sqlite3/embed"
	sqlite "github.com/ncruces/go-sqlite3/gormlite"
	"github.com/oliverisaac/portfolio/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	s := &Store{db: db}
	if err := s.Migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Migrate() error {
	err := s.db.AutoMigrate(&types.ContactMessage{}, &types.PushSubscription{})
	return errors.Wrap(err, "Failed to migrate")
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "getting sql db")
	}
	return sqlDB.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "getting sql db")
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) SaveMessage(ctx context.Context, msg *types.ContactMessage) error {
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return errors.Wrap(err, "Saving contact message to db")
	}
	return nil
}

func (s *Store) RecentMessages(ctx context.Context, limit int) ([]types.ContactMessage, error) {
	ret := []types.ContactMessage{}
	result := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&ret)
	if result.Error != nil {
		return nil, errors.Wrapf(result.Error, "Looking for the last %d contact messages", limit)
	}
	return ret, nil
}

// SaveSubscription stores sub, replacing the keys of an existing subscription with the same endpoint.
func (s *Store) SaveSubscription(ctx context.Context, sub *types.PushSubscription) error {
	var existing types.PushSubscription
	err := s.db.WithContext(ctx).First(&existing, "endpoint = ?", sub.Endpoint).Error
	switch {
	case err == nil:
		sub.ID = existing.ID
		sub.CreatedAt = existing.CreatedAt
		err = s.db.WithContext(ctx).Save(sub).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = s.db.WithContext(ctx).Create(sub).Error
	}
	return errors.Wrap(err, "saving subscription")
}

func (s *Store) DeleteSubscription(ctx context.Context, endpoint string) error {
	err := s.db.WithContext(ctx).Unscoped().Where("endpoint = ?", endpoint).Delete(&types.PushSubscription{}).Error
	return errors.Wrap(err, "removing subscription")
}

func (s *Store) Subscriptions(ctx context.Context) ([]types.PushSubscription, error) {
	var subs []types.PushSubscription
	err := s.db.WithContext(ctx).Find(&subs).Error
	return subs, errors.Wrap(err, "listing subscriptions")
}
