package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fakturabok/billing/internal/models"
)

type ProjectStore struct {
	db *gorm.DB
}

func (s *ProjectStore) Add(p *models.Project) error {
	if p == nil {
		return errNilEntity()
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return s.db.Create(p).Error
}

// GetByUUID loads a project with its client preloaded.
func (s *ProjectStore) GetByUUID(id string) (*models.Project, error) {
	if blank(id) {
		return nil, errBlankID()
	}
	var p models.Project
	if err := s.db.Preload("Client").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Kind: "project", ID: id}
		}
		return nil, err
	}
	return &p, nil
}

func (s *ProjectStore) GetAll() ([]models.Project, error) {
	var ps []models.Project
	if err := s.db.Order("created_at").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (s *ProjectStore) ListByClient(clientID string) ([]models.Project, error) {
	if blank(clientID) {
		return nil, errBlankID()
	}
	var ps []models.Project
	if err := s.db.Where("client_id = ?", clientID).Order("created_at").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (s *ProjectStore) Update(p *models.Project) error {
	if p == nil {
		return errNilEntity()
	}
	if blank(p.ID) {
		return errBlankID()
	}
	if err := p.Validate(); err != nil {
		return err
	}
	// Save without re-writing associations; earnings and expenses are
	// persisted through their own stores.
	return s.db.Omit("Client", "Earnings", "Expenses").Save(p).Error
}

// Delete removes a project and cascades to its earnings and expenses.
func (s *ProjectStore) Delete(id string) error {
	if blank(id) {
		return errBlankID()
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Earning{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Expense{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Project{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &models.NotFoundError{Kind: "project", ID: id}
		}
		return nil
	})
}
