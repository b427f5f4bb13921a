package db

import (
	"tableside/internal/domain/model"

	"gorm.io/gorm"
)

// Seed はデモデータを投入する。店舗が1件でもあれば何もしない。
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		r1 := model.Restaurant{Name: "Demo Resto", Slug: "demo"}
		if err := tx.Create(&r1).Error; err != nil {
			return err
		}
		tables1 := []model.DiningTable{
			{RestaurantID: r1.ID, Code: "T1", Seats: 2},
			{RestaurantID: r1.ID, Code: "T2", Seats: 4},
		}
		if err := tx.Create(&tables1).Error; err != nil {
			return err
		}

		c1 := model.MenuCategory{RestaurantID: r1.ID, Name: "Starters", SortOrder: 1}
		c2 := model.MenuCategory{RestaurantID: r1.ID, Name: "Mains", SortOrder: 2}
		if err := tx.Create(&c1).Error; err != nil {
			return err
		}
		if err := tx.Create(&c2).Error; err != nil {
			return err
		}

		items1 := []model.MenuItem{
			{MenuCategoryID: c1.ID, RestaurantID: r1.ID, Name: "Bruschetta", PriceCents: 1800, IsAvailable: true},
			{MenuCategoryID: c1.ID, RestaurantID: r1.ID, Name: "Soup", PriceCents: 1500, IsAvailable: true},
			{MenuCategoryID: c2.ID, RestaurantID: r1.ID, Name: "Grilled Chicken", PriceCents: 4500, IsAvailable: true},
			{MenuCategoryID: c2.ID, RestaurantID: r1.ID, Name: "Pasta Alfredo", PriceCents: 3900, IsAvailable: true},
		}
		if err := tx.Create(&items1).Error; err != nil {
			return err
		}

		r2 := model.Restaurant{Name: "Hotel Bistro", Slug: "bistro"}
		if err := tx.Create(&r2).Error; err != nil {
			return err
		}
		tables2 := []model.DiningTable{
			{RestaurantID: r2.ID, Code: "H1", Seats: 2},
			{RestaurantID: r2.ID, Code: "H2", Seats: 6},
		}
		if err := tx.Create(&tables2).Error; err != nil {
			return err
		}

		c3 := model.MenuCategory{RestaurantID: r2.ID, Name: "Breakfast", SortOrder: 1}
		if err := tx.Create(&c3).Error; err != nil {
			return err
		}

		items2 := []model.MenuItem{
			{MenuCategoryID: c3.ID, RestaurantID: r2.ID, Name: "Omelette", PriceCents: 2000, IsAvailable: true},
			{MenuCategoryID: c3.ID, RestaurantID: r2.ID, Name: "Pancakes", PriceCents: 2200, IsAvailable: true},
		}
		return tx.Create(&items2).Error
	})
}
