package services

import (
	"metalic-backend/models"

	"gorm.io/gorm"
)

// StockService owns the append-only stock entry ledger and the per-item
// cached quantities derived from it.
type StockService struct {
	db *gorm.DB
}

func NewStockService(db *gorm.DB) *StockService {
	return &StockService{db: db}
}

// recordStockMovement appends one ledger entry and patches the item's cached
// weight inside the caller's transaction. The StockItem row is auto-created
// on first reference.
func recordStockMovement(tx *gorm.DB, itemName string, amount float64, movementType, description string) error {
	if movementType != models.StockAdd && movementType != models.StockDeduct {
		return invalid("transaction_type must be add or deduct")
	}

	entry := models.StockEntry{
		ItemName:        itemName,
		Amount:          amount,
		TransactionType: movementType,
		Description:     description,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	var item models.StockItem
	err := tx.Where("item_name = ?", itemName).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		item = models.StockItem{
			ItemName:    itemName,
			Description: "Auto-created for " + itemName,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	delta := amount
	if movementType == models.StockDeduct {
		delta = -amount
	}
	return tx.Model(&models.StockItem{}).Where("id = ?", item.ID).
		Update("current_weight", gorm.Expr("current_weight + ?", delta)).Error
}

// applySignedStockEffect records a single movement for a signed quantity:
// positive adds, negative deducts.
func applySignedStockEffect(tx *gorm.DB, itemName string, effect float64, description string) error {
	if effect >= 0 {
		return recordStockMovement(tx, itemName, effect, models.StockAdd, description)
	}
	return recordStockMovement(tx, itemName, -effect, models.StockDeduct, description)
}

// RecordMovement is the standalone entry point used by the manual stock
// endpoint; it runs in its own transaction.
func (s *StockService) RecordMovement(itemName string, amount float64, movementType, description string) (*models.StockItem, error) {
	if itemName == "" {
		return nil, invalid("item_name is required")
	}
	if amount < 0 {
		return nil, invalid("amount must not be negative")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return recordStockMovement(tx, itemName, amount, movementType, description)
	})
	if err != nil {
		return nil, err
	}

	var item models.StockItem
	if err := s.db.Where("item_name = ?", itemName).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *StockService) Entries() ([]models.StockEntry, error) {
	var entries []models.StockEntry
	err := s.db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (s *StockService) Items() ([]models.StockItem, error) {
	var items []models.StockItem
	err := s.db.Order("item_name").Find(&items).Error
	return items, err
}

// CurrentTotal is the live aggregate across all items, computed from the
// entry ledger rather than the caches.
func (s *StockService) CurrentTotal() (float64, error) {
	var added, deducted float64
	if err := s.db.Model(&models.StockEntry{}).
		Where("transaction_type = ?", models.StockAdd).
		Select("COALESCE(SUM(amount), 0)").Scan(&added).Error; err != nil {
		return 0, err
	}
	if err := s.db.Model(&models.StockEntry{}).
		Where("transaction_type = ?", models.StockDeduct).
		Select("COALESCE(SUM(amount), 0)").Scan(&deducted).Error; err != nil {
		return 0, err
	}
	return added - deducted, nil
}
