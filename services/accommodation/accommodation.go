package accommodation

import (
	"fmt"

	accommodationRepo "stayhub/database/repository/accommodation"
	"stayhub/errs"
	"stayhub/models"
	"stayhub/services/notification"

	"github.com/google/uuid"
)

// AccommodationService handles accommodation CRUD.
type AccommodationService interface {
	Create(req models.AccommodationRequest) (*models.Accommodation, error)
	GetAll(page, size int) ([]models.Accommodation, error)
	GetByID(id string) (*models.Accommodation, error)
	Update(id string, req models.AccommodationRequest) (*models.Accommodation, error)
	Delete(id string) error
}

// DefaultAccommodationService is the production implementation.
// Cache is optional; nil disables read-through caching.
type DefaultAccommodationService struct {
	Repo      accommodationRepo.AccommodationRepository
	Publisher notification.Publisher
	Cache     Cache
}

// Create persists a new accommodation and queues a creation notice.
func (s *DefaultAccommodationService) Create(req models.AccommodationRequest) (*models.Accommodation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	a := &models.Accommodation{
		ID:           uuid.New().String(),
		Type:         req.Type,
		Location:     req.Location,
		Size:         req.Size,
		Amenities:    req.Amenities,
		DailyRate:    req.DailyRate,
		Availability: req.Availability,
	}
	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}

	s.Publisher.Publish(models.EventAccommodationCreated,
		fmt.Sprintf("Accommodation created: %s at %s (id %s)", a.Type, a.Location, a.ID))

	return a, nil
}

// GetAll returns a page of accommodations.
func (s *DefaultAccommodationService) GetAll(page, size int) ([]models.Accommodation, error) {
	return s.Repo.GetAll(page, size)
}

// GetByID returns a single accommodation, serving repeated reads from
// the cache.
func (s *DefaultAccommodationService) GetByID(id string) (*models.Accommodation, error) {
	if s.Cache != nil {
		if a, ok := s.Cache.Get(id); ok {
			return a, nil
		}
	}

	a, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Set(a)
	}
	return a, nil
}

// Update applies changes to an existing accommodation.
func (s *DefaultAccommodationService) Update(id string, req models.AccommodationRequest) (*models.Accommodation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	a, err := s.find(id)
	if err != nil {
		return nil, err
	}

	a.Type = req.Type
	a.Location = req.Location
	a.Size = req.Size
	a.Amenities = req.Amenities
	a.DailyRate = req.DailyRate
	a.Availability = req.Availability
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.Invalidate(id)
	}
	return a, nil
}

// Delete removes an accommodation.
func (s *DefaultAccommodationService) Delete(id string) error {
	if _, err := s.find(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	if s.Cache != nil {
		s.Cache.Invalidate(id)
	}
	return nil
}

func (s *DefaultAccommodationService) find(id string) (*models.Accommodation, error) {
	a, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errs.NewNotFound("accommodation", id)
	}
	return a, nil
}

func validateRequest(req models.AccommodationRequest) error {
	if !models.ValidAccommodationType(req.Type) {
		return errs.NewValidation("unknown accommodation type: %s", req.Type)
	}
	if req.DailyRate <= 0 {
		return errs.NewValidation("daily rate must be positive")
	}
	if req.Availability < 0 {
		return errs.NewValidation("availability must not be negative")
	}
	return nil
}
