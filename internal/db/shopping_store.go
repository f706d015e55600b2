package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mirepoix/internal/shopping"
	"mirepoix/models"
)

// ShoppingStore is the gorm-backed persistence for shopping lists.
type ShoppingStore struct {
	db *gorm.DB
}

// NewShoppingStore wraps a gorm handle in the shopping.Store contract.
func NewShoppingStore(database *gorm.DB) *ShoppingStore {
	return &ShoppingStore{db: database}
}

var _ shopping.Store = (*ShoppingStore)(nil)

// CreateList inserts the list together with its items.
func (s *ShoppingStore) CreateList(ctx context.Context, list *models.ShoppingList) error {
	return s.db.WithContext(ctx).Create(list).Error
}

// ReadListByToken loads a list and its items, scoped to the owner. Returns
// (nil, nil) when no list matches.
func (s *ShoppingStore) ReadListByToken(ctx context.Context, ownerID uint, token string) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("owner_id = ? AND token = ?", ownerID, token).
		First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// SaveItem persists a single item's state.
func (s *ShoppingStore) SaveItem(ctx context.Context, item *models.ShoppingItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}
