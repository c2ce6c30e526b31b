package accommodationRepo

import "stayhub/models"

// AccommodationRepository defines persistence operations for accommodations.
type AccommodationRepository interface {
	Create(a *models.Accommodation) error
	Update(a *models.Accommodation) error
	Delete(id string) error
	GetByID(id string) (*models.Accommodation, error)
	GetAll(page, size int) ([]models.Accommodation, error)
}
