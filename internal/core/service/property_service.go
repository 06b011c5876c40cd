package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/staynest/rental-platform/internal/core/domain"
	"github.com/staynest/rental-platform/internal/core/ports"
)

// ListingCache abstracts the read-through cache for single-listing lookups.
// All cache failures are non-fatal: the store remains the source of truth.
type ListingCache interface {
	Get(ctx context.Context, id string) (*domain.Property, bool)
	Set(ctx context.Context, p *domain.Property)
	Invalidate(ctx context.Context, id string)
}

// PropertyService orchestrates the listing lifecycle: policy check first,
// then store mutation. No store write happens after a denial.
//
// Concurrent updates to the same listing are last-write-wins; there is no
// optimistic concurrency token. See the race note in property_service_test.go.
type PropertyService struct {
	repo   ports.PropertyRepository
	cache  ListingCache
	logger zerolog.Logger
}

func NewPropertyService(repo ports.PropertyRepository, cache ListingCache, logger zerolog.Logger) *PropertyService {
	return &PropertyService{repo: repo, cache: cache, logger: logger}
}

func (s *PropertyService) Create(ctx context.Context, actor *domain.User, input ports.CreatePropertyInput) (*domain.Property, error) {
	if err := domain.Decide(actor, domain.ActionCreateProperty, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Property{
		Title:         input.Title,
		Price:         input.Price,
		Location:      input.Location,
		Description:   input.Description,
		Images:        input.Images,
		Amenities:     input.Amenities,
		PropertyType:  domain.PropertyType(input.PropertyType),
		Bedrooms:      input.Bedrooms,
		Bathrooms:     input.Bathrooms,
		Elevator:      input.Elevator,
		SqFeet:        input.SqFeet,
		AvailableFrom: input.AvailableFrom,
		OwnerID:       actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", actor.ID).Msg("failed to create listing")
		return nil, err
	}

	s.logger.Info().Str("property_id", created.ID).Str("owner_id", actor.ID).Msg("listing created")
	return created, nil
}

func (s *PropertyService) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	if s.cache != nil {
		if p, ok := s.cache.Get(ctx, id); ok {
			return p, nil
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, p)
	}
	return p, nil
}

func (s *PropertyService) Update(ctx context.Context, actor *domain.User, id string, input ports.UpdatePropertyInput) (*domain.Property, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.Decide(actor, domain.ActionUpdateProperty, existing.OwnerID); err != nil {
		return nil, err
	}

	fields, err := buildPatch(input)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return existing, nil
	}
	fields["updated_at"] = time.Now().UTC()

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	s.logger.Info().Str("property_id", id).Str("actor_id", actor.ID).Msg("listing updated")
	return updated, nil
}

func (s *PropertyService) Delete(ctx context.Context, actor *domain.User, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := domain.Decide(actor, domain.ActionDeleteProperty, existing.OwnerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	s.logger.Info().Str("property_id", id).Str("actor_id", actor.ID).Msg("listing deleted")
	return nil
}

func (s *PropertyService) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Property, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, fmt.Errorf("%w: min price exceeds max price", domain.ErrInvalidInput)
	}

	return s.repo.Search(ctx, filter)
}

// buildPatch converts the partial update input into store field assignments.
// It rejects a patch that would leave the listing without images.
func buildPatch(input ports.UpdatePropertyInput) (map[string]any, error) {
	fields := map[string]any{}

	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, domain.ErrInvalidInput
		}
		fields["price"] = *input.Price
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Images != nil {
		if len(input.Images) == 0 {
			return nil, domain.ErrInvalidInput
		}
		fields["images"] = input.Images
	}
	if input.Amenities != nil {
		fields["amenities"] = input.Amenities
	}
	if input.PropertyType != nil {
		if !domain.ValidPropertyType(domain.PropertyType(*input.PropertyType)) {
			return nil, domain.ErrInvalidInput
		}
		fields["property_type"] = *input.PropertyType
	}
	if input.Bedrooms != nil {
		fields["bedrooms"] = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		fields["bathrooms"] = *input.Bathrooms
	}
	if input.Elevator != nil {
		fields["elevator"] = *input.Elevator
	}
	if input.SqFeet != nil {
		fields["sqfeet"] = *input.SqFeet
	}
	if input.AvailableFrom != nil {
		fields["available_from"] = *input.AvailableFrom
	}
	if input.BookingStatus != nil {
		fields["booking_status"] = *input.BookingStatus
	}

	return fields, nil
}
