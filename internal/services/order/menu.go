package order

import (
	"context"
	"fmt"

	"food-corner/internal/cart"
	"food-corner/internal/models"
)

// Menu catalog operations exposed by the order service. The catalog lives in
// the same database as the orders, so the Postgres binding serves both.

// ListMenuItems returns the full menu.
func (s *Service) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.store.ListMenuItems(ctx)
}

// AddMenuItem validates and inserts a new menu item.
func (s *Service) AddMenuItem(ctx context.Context, item *models.MenuItem, requestID string) (*models.MenuItem, error) {
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}

	id, err := s.store.AddMenuItem(ctx, item)
	if err != nil {
		return nil, err
	}

	s.logger.Info("menu_item_added", fmt.Sprintf("Menu item %d added", id), requestID, map[string]interface{}{
		"menu_item_id": id,
		"name":         item.Name,
	})
	return item, nil
}

// UpdateMenuItem validates and replaces a menu item.
func (s *Service) UpdateMenuItem(ctx context.Context, item *models.MenuItem, requestID string) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	if err := s.store.UpdateMenuItem(ctx, item); err != nil {
		return err
	}

	s.logger.Info("menu_item_updated", fmt.Sprintf("Menu item %d updated", item.ID), requestID, nil)
	return nil
}

// DeleteMenuItem removes a menu item.
func (s *Service) DeleteMenuItem(ctx context.Context, id int64, requestID string) error {
	if err := s.store.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	s.logger.Info("menu_item_deleted", fmt.Sprintf("Menu item %d deleted", id), requestID, nil)
	return nil
}

// ToggleAvailability flips a menu item's availability flag.
func (s *Service) ToggleAvailability(ctx context.Context, id int64, requestID string) error {
	if err := s.store.ToggleAvailability(ctx, id); err != nil {
		return err
	}
	s.logger.Info("menu_item_toggled", fmt.Sprintf("Menu item %d availability toggled", id), requestID, nil)
	return nil
}

func validateMenuItem(item *models.MenuItem) error {
	if item.Name == "" {
		return &cart.ValidationError{Field: "name", Message: "item name is required"}
	}
	if item.Price < 0 {
		return &cart.ValidationError{Field: "price", Message: "item price must not be negative"}
	}
	return nil
}
