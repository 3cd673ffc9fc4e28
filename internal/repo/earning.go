package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fakturabok/billing/internal/models"
)

type EarningStore struct {
	db *gorm.DB
}

func (s *EarningStore) Add(e *models.Earning) error {
	if e == nil {
		return errNilEntity()
	}
	if err := e.Validate(); err != nil {
		return err
	}
	return s.db.Create(e).Error
}

func (s *EarningStore) GetByUUID(id string) (*models.Earning, error) {
	if blank(id) {
		return nil, errBlankID()
	}
	var e models.Earning
	if err := s.db.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Kind: "earning", ID: id}
		}
		return nil, err
	}
	return &e, nil
}

func (s *EarningStore) GetAll() ([]models.Earning, error) {
	var es []models.Earning
	if err := s.db.Order("date").Find(&es).Error; err != nil {
		return nil, err
	}
	return es, nil
}

func (s *EarningStore) ListByProject(projectID string) ([]models.Earning, error) {
	if blank(projectID) {
		return nil, errBlankID()
	}
	var es []models.Earning
	if err := s.db.Where("project_id = ?", projectID).Order("date").Find(&es).Error; err != nil {
		return nil, err
	}
	return es, nil
}

// ListUnsettledByProject returns the earnings eligible for billing.
func (s *EarningStore) ListUnsettledByProject(projectID string) ([]models.Earning, error) {
	if blank(projectID) {
		return nil, errBlankID()
	}
	var es []models.Earning
	if err := s.db.Where("project_id = ? AND is_settled = ?", projectID, false).Order("date").Find(&es).Error; err != nil {
		return nil, err
	}
	return es, nil
}

func (s *EarningStore) Update(e *models.Earning) error {
	if e == nil {
		return errNilEntity()
	}
	if blank(e.ID) {
		return errBlankID()
	}
	if err := e.Validate(); err != nil {
		return err
	}
	return s.db.Save(e).Error
}

// Delete refuses to remove settled earnings; they back issued invoices.
func (s *EarningStore) Delete(id string) error {
	if blank(id) {
		return errBlankID()
	}
	e, err := s.GetByUUID(id)
	if err != nil {
		return err
	}
	if e.IsSettled {
		return &models.StateConflictError{Msg: "settled earnings cannot be deleted"}
	}
	return s.db.Delete(&models.Earning{}, "id = ?", id).Error
}
