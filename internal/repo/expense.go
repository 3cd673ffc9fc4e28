package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fakturabok/billing/internal/models"
)

type ExpenseStore struct {
	db *gorm.DB
}

func (s *ExpenseStore) Add(x *models.Expense) error {
	if x == nil {
		return errNilEntity()
	}
	if err := x.Validate(); err != nil {
		return err
	}
	return s.db.Create(x).Error
}

func (s *ExpenseStore) GetByUUID(id string) (*models.Expense, error) {
	if blank(id) {
		return nil, errBlankID()
	}
	var x models.Expense
	if err := s.db.First(&x, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Kind: "expense", ID: id}
		}
		return nil, err
	}
	return &x, nil
}

func (s *ExpenseStore) GetAll() ([]models.Expense, error) {
	var xs []models.Expense
	if err := s.db.Order("date").Find(&xs).Error; err != nil {
		return nil, err
	}
	return xs, nil
}

func (s *ExpenseStore) ListByProject(projectID string) ([]models.Expense, error) {
	if blank(projectID) {
		return nil, errBlankID()
	}
	var xs []models.Expense
	if err := s.db.Where("project_id = ?", projectID).Order("date").Find(&xs).Error; err != nil {
		return nil, err
	}
	return xs, nil
}

func (s *ExpenseStore) Update(x *models.Expense) error {
	if x == nil {
		return errNilEntity()
	}
	if blank(x.ID) {
		return errBlankID()
	}
	if err := x.Validate(); err != nil {
		return err
	}
	return s.db.Save(x).Error
}

func (s *ExpenseStore) Delete(id string) error {
	if blank(id) {
		return errBlankID()
	}
	res := s.db.Delete(&models.Expense{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &models.NotFoundError{Kind: "expense", ID: id}
	}
	return nil
}
