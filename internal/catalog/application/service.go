package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pixelmart/storefront/internal/catalog/domain"
)

type Service struct {
	log   *slog.Logger
	repo  ProductRepository
	cache Cache
}

func NewService(log *slog.Logger, repo ProductRepository, cache Cache) *Service {
	return &Service{log: log, repo: repo, cache: cache}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	if p, ok, err := s.cache.Get(ctx, id); err != nil {
		// Cache trouble must not take product reads down.
		s.log.Warn("product cache read failed", "id", id, "err", err)
	} else if ok {
		return p, nil
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.cache.Set(ctx, p); err != nil {
		s.log.Warn("product cache write failed", "id", id, "err", err)
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.ID = uuid.NewString()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if len(p.Platforms) == 0 {
		p.Platforms = []string{"PC"}
	}
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// UpdateParams carries the admin patch; nil fields keep their current value.
type UpdateParams struct {
	Title       *string
	Description *string
	Price       *float64
	Stock       *int
	Category    *string
	Platforms   []string
	Rating      *float64
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (domain.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if params.Title != nil {
		p.Title = *params.Title
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
	if params.Price != nil {
		p.Price = *params.Price
	}
	if params.Stock != nil {
		p.Stock = *params.Stock
	}
	if params.Category != nil {
		p.Category = *params.Category
	}
	if params.Platforms != nil {
		p.Platforms = params.Platforms
	}
	if params.Rating != nil {
		p.Rating = *params.Rating
	}
	p.UpdatedAt = time.Now().UTC()

	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return domain.Product{}, err
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn("product cache invalidate failed", "id", id, "err", err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn("product cache invalidate failed", "id", id, "err", err)
	}
	return nil
}
