package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fakturabok/billing/internal/models"
)

// CompanyProfileStore manages the single issuer profile row.
type CompanyProfileStore struct {
	db *gorm.DB
}

// Get returns the profile, or nil when none has been configured yet.
func (s *CompanyProfileStore) Get() (*models.CompanyProfile, error) {
	var p models.CompanyProfile
	if err := s.db.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Save creates the profile on first call and updates it afterwards,
// keeping exactly one row.
func (s *CompanyProfileStore) Save(p *models.CompanyProfile) error {
	if p == nil {
		return errNilEntity()
	}
	if err := p.Validate(); err != nil {
		return err
	}
	existing, err := s.Get()
	if err != nil {
		return err
	}
	if existing != nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}
	return s.db.Save(p).Error
}
