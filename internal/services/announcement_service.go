package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfu-im/internship-service/internal/cache"
	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
)

const (
	announcementCacheKey = "announcements:visible"
	announcementCacheTTL = time.Minute
)

type AnnouncementService interface {
	ListVisible(ctx context.Context) ([]*models.Announcement, error)
}

type announcementService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
}

func NewAnnouncementService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger) AnnouncementService {
	return &announcementService{
		repo:   repo,
		cache:  cacheService,
		logger: logger,
	}
}

// ListVisible serves the announcement board. The list is the same for
// every visitor within the cache window, so it is cached briefly;
// identity data never goes through here.
func (s *announcementService) ListVisible(ctx context.Context) ([]*models.Announcement, error) {
	if s.cache != nil {
		var cached []*models.Announcement
		err := s.cache.Get(ctx, announcementCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("announcement cache read failed", "error", err)
		}
	}

	announcements, err := s.repo.Announcement().ListVisible(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, announcementCacheKey, announcements, announcementCacheTTL); err != nil {
			s.logger.Warn("announcement cache write failed", "error", err)
		}
	}
	return announcements, nil
}
