package cart

import (
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/junaidrashid-git/marketplace-client/models"
)

// Gorm persists the cart in a database table, one row per line item.
type Gorm struct {
	db *gorm.DB
}

// Open connects to the cart database. A non-empty databaseURL selects
// postgres (shared kiosk setups); otherwise the cart lives in a local
// sqlite file, scoped to one profile.
func Open(databaseURL, sqlitePath string) (*Gorm, error) {
	var dialector gorm.Dialector
	if databaseURL != "" {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = sqlite.Open(sqlitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.CartItem{}); err != nil {
		return nil, err
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Load() ([]models.CartItem, error) {
	var items []models.CartItem
	if err := g.db.Order("position ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save replaces the whole table with the current item list. The cart
// is small and single-owner, so a full rewrite is simpler than diffing.
func (g *Gorm) Save(items []models.CartItem) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].Position = i
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
