package serviceimpl

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"rsvp-backend/domain/models"
	"rsvp-backend/domain/repositories"
	"rsvp-backend/domain/services"
	"rsvp-backend/pkg/logger"
)

type GuestServiceImpl struct {
	guestRepo   repositories.GuestRepository
	searchCache repositories.GuestSearchCache
}

// NewGuestService builds the public lookup service. searchCache may be nil.
func NewGuestService(guestRepo repositories.GuestRepository, searchCache repositories.GuestSearchCache) services.GuestService {
	return &GuestServiceImpl{
		guestRepo:   guestRepo,
		searchCache: searchCache,
	}
}

func (s *GuestServiceImpl) SearchGuests(ctx context.Context, query string) ([]services.GuestWithFamily, error) {
	term := strings.TrimSpace(query)
	if utf8.RuneCountInString(term) < services.MinSearchQueryLength {
		return []services.GuestWithFamily{}, nil
	}

	matches, err := s.findMatches(ctx, term)
	if err != nil {
		return nil, err
	}

	results := make([]services.GuestWithFamily, 0, len(matches))
	for i := range matches {
		family, err := s.ResolveFamily(ctx, &matches[i])
		if err != nil {
			return nil, err
		}
		results = append(results, services.GuestWithFamily{
			Guest:         matches[i],
			FamilyMembers: family,
		})
	}

	return results, nil
}

func (s *GuestServiceImpl) findMatches(ctx context.Context, term string) ([]models.Guest, error) {
	cacheKey := strings.ToLower(term)

	// The version is read before the store so a mutation committed in between
	// makes our write unreachable.
	cacheable := false
	var version int64
	if s.searchCache != nil {
		cached, v, ok, err := s.searchCache.Get(ctx, cacheKey)
		if err != nil {
			logger.Warn(logger.CategoryGuest, "search_cache_read_failed", "Search cache unavailable, falling back to store", map[string]interface{}{
				"error": err.Error(),
			})
		} else if ok {
			return cached, nil
		} else {
			cacheable = true
			version = v
		}
	}

	matches, err := s.guestRepo.Search(ctx, term, services.MaxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("failed to search guests: %w", err)
	}

	if cacheable {
		if err := s.searchCache.Set(ctx, version, cacheKey, matches); err != nil {
			logger.Warn(logger.CategoryGuest, "search_cache_write_failed", "Failed to cache search results", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return matches, nil
}

func (s *GuestServiceImpl) ResolveFamily(ctx context.Context, guest *models.Guest) ([]models.Guest, error) {
	headID := guest.HeadID()

	family, err := s.guestRepo.GetFamily(ctx, headID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve family: %w", err)
	}

	// A dangling head reference leaves the guest on its own.
	headFound := false
	selfFound := false
	for _, member := range family {
		if member.ID == headID {
			headFound = true
		}
		if member.ID == guest.ID {
			selfFound = true
		}
	}
	if !headFound {
		return []models.Guest{*guest}, nil
	}
	if !selfFound {
		family = append(family, *guest)
	}

	return family, nil
}

// invalidateSearchCache drops cached search hits after any roster mutation.
func invalidateSearchCache(ctx context.Context, cache repositories.GuestSearchCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		logger.Warn(logger.CategoryGuest, "search_cache_invalidate_failed", "Failed to invalidate search cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
