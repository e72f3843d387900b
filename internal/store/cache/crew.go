// Package cache puts an in-process cache in front of the crew repository.
// Crew profiles are read on every profile view and invoice run but change
// rarely.
package cache

import (
	"context"
	"strconv"

	goCache "github.com/patrickmn/go-cache"

	"github.com/angelofallars/crewdesk/internal/config"
	"github.com/angelofallars/crewdesk/internal/domain"
)

const (
	keyCrewList   = "crew:list"
	keyCrewPrefix = "crew:"
)

type CrewRepository struct {
	next  domain.CrewRepository
	cache *goCache.Cache
}

// WrapCrew returns next unchanged when caching is disabled.
func WrapCrew(cfg *config.Configuration, next domain.CrewRepository) domain.CrewRepository {
	if !cfg.Cache.Enabled {
		return next
	}
	return &CrewRepository{
		next:  next,
		cache: goCache.New(cfg.Cache.TTL, 2*cfg.Cache.TTL),
	}
}

func (r *CrewRepository) List(ctx context.Context) ([]*domain.CrewMember, error) {
	if cached, ok := r.cache.Get(keyCrewList); ok {
		return cached.([]*domain.CrewMember), nil
	}
	members, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(keyCrewList, members)
	for _, m := range members {
		r.cache.SetDefault(crewKey(m.ID), m)
	}
	return members, nil
}

func (r *CrewRepository) Get(ctx context.Context, id int64) (*domain.CrewMember, error) {
	if cached, ok := r.cache.Get(crewKey(id)); ok {
		return cached.(*domain.CrewMember), nil
	}
	member, err := r.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(crewKey(id), member)
	return member, nil
}

func (r *CrewRepository) Create(ctx context.Context, m *domain.CrewMember) (*domain.CrewMember, error) {
	created, err := r.next.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	r.cache.Delete(keyCrewList)
	r.cache.SetDefault(crewKey(created.ID), created)
	return created, nil
}

func crewKey(id int64) string {
	return keyCrewPrefix + strconv.FormatInt(id, 10)
}
