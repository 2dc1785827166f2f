package services

import (
	"fmt"
	"time"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/models"

	"gorm.io/gorm"
)

// ListService is the thin list surface sessions bind to. Catalog search and
// richer list management live in other services of the product; voting only
// needs ordered items with display metadata.
type ListService struct {
	db *gorm.DB
}

func NewListService(db *gorm.DB) *ListService {
	return &ListService{db: db}
}

func (s *ListService) CreateList(ownerID uint, name, description string) (*models.List, error) {
	list := models.List{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}
	if err := s.db.Create(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *ListService) GetList(listID uint) (*models.List, error) {
	var list models.List
	if err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_num ASC")
	}).First(&list, listID).Error; err != nil {
		return nil, fmt.Errorf("%w: list %d", ErrNotFound, listID)
	}
	return &list, nil
}

func (s *ListService) GetUserLists(ownerID uint) ([]models.List, error) {
	var lists []models.List
	if err := s.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (s *ListService) AddItem(listID, userID uint, itemType, name, imageURL, notes string) (*models.ListItem, error) {
	var list models.List
	if err := s.db.First(&list, listID).Error; err != nil {
		return nil, fmt.Errorf("%w: list %d", ErrNotFound, listID)
	}

	var count int64
	s.db.Model(&models.ListItem{}).Where("list_id = ?", listID).Count(&count)

	item := models.ListItem{
		ListID:   listID,
		ItemType: itemType,
		Name:     name,
		ImageURL: imageURL,
		OrderNum: int(count),
		Notes:    notes,
		AddedBy:  userID,
		AddedAt:  time.Now(),
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}

	s.db.Model(&list).Update("updated_at", time.Now())
	return &item, nil
}
