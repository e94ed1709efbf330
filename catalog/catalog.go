// Package catalog is the narrow read-side collaborator the booking engine
// uses to resolve optional game references. Catalog administration lives
// elsewhere; this package only looks games up.
package catalog

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

var ErrGameNotFound = errors.New("game not found")

type Game struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Platform        string `json:"platform"`
	MaxPlayers      int    `json:"maxPlayers"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies int    `json:"availableCopies"`
}

type GameRepository interface {
	GetGameByID(ctx context.Context, id int) (Game, error)
}

type Service struct {
	repo  GameRepository
	cache *cache.Cache
}

func NewService(repo GameRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(1*time.Minute, 5*time.Minute),
	}
}

func (s *Service) GameByID(ctx context.Context, id int) (Game, error) {
	key := strconv.Itoa(id)

	if cached, ok := s.cache.Get(key); ok {
		return cached.(Game), nil
	}

	game, err := s.repo.GetGameByID(ctx, id)

	if err != nil {
		return Game{}, err
	}

	s.cache.Set(key, game, cache.DefaultExpiration)

	return game, nil
}

// GameExists satisfies the booking engine's GameCatalog contract.
func (s *Service) GameExists(ctx context.Context, id int) (bool, error) {
	_, err := s.GameByID(ctx, id)

	if errors.Is(err, ErrGameNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}
