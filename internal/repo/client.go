package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fakturabok/billing/internal/models"
)

type ClientStore struct {
	db *gorm.DB
}

func (s *ClientStore) Add(c *models.Client) error {
	if c == nil {
		return errNilEntity()
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return s.db.Create(c).Error
}

func (s *ClientStore) GetByUUID(id string) (*models.Client, error) {
	if blank(id) {
		return nil, errBlankID()
	}
	var c models.Client
	if err := s.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Kind: "client", ID: id}
		}
		return nil, err
	}
	return &c, nil
}

func (s *ClientStore) GetAll() ([]models.Client, error) {
	var cs []models.Client
	if err := s.db.Order("created_at").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (s *ClientStore) Update(c *models.Client) error {
	if c == nil {
		return errNilEntity()
	}
	if blank(c.ID) {
		return errBlankID()
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return s.db.Save(c).Error
}

// Delete removes a client. A client that still owns projects cannot be
// deleted.
func (s *ClientStore) Delete(id string) error {
	if blank(id) {
		return errBlankID()
	}
	var projects int64
	if err := s.db.Model(&models.Project{}).Where("client_id = ?", id).Count(&projects).Error; err != nil {
		return err
	}
	if projects > 0 {
		return &models.StateConflictError{Msg: fmt.Sprintf("client owns %d project(s) and cannot be deleted", projects)}
	}
	res := s.db.Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &models.NotFoundError{Kind: "client", ID: id}
	}
	return nil
}
