package main

import (
	"flag"

	"github.com/petmart-next/internal/config"
	"github.com/petmart-next/internal/logger"
	"github.com/petmart-next/internal/models"
)

// 演示数据填充：建表、默认管理员和一批宠物用品示例数据。
func main() {
	var force bool
	flag.BoolVar(&force, "force", false, "已有商品数据时仍然写入示例数据")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Fatalf("初始化默认管理员失败: %v", err)
	}

	var productCount int64
	if err := models.DB.Model(&models.Product{}).Count(&productCount).Error; err != nil {
		stdLog.Fatalf("检查商品数据失败: %v", err)
	}
	if productCount > 0 && !force {
		stdLog.Printf("已存在 %d 条商品数据，跳过填充（使用 -force 强制写入）", productCount)
		return
	}

	if err := seedCatalog(); err != nil {
		stdLog.Fatalf("示例数据写入失败: %v", err)
	}
	stdLog.Printf("示例数据填充完成")
}

func seedCatalog() error {
	categories := []models.Category{
		{Slug: "dog-food", Name: "狗粮", Description: "犬用主粮与湿粮", Icon: "dog", SortOrder: 10},
		{Slug: "cat-food", Name: "猫粮", Description: "猫用主粮与罐头", Icon: "cat", SortOrder: 20},
		{Slug: "toys", Name: "玩具", Description: "猫狗互动玩具", Icon: "toy", SortOrder: 30},
		{Slug: "grooming", Name: "清洁护理", Description: "洗护与美容用品", Icon: "brush", SortOrder: 40},
	}
	if err := models.DB.Create(&categories).Error; err != nil {
		return err
	}
	bySlug := make(map[string]uint, len(categories))
	for _, category := range categories {
		bySlug[category.Slug] = category.ID
	}

	products := []models.Product{
		{
			CategoryID:  bySlug["dog-food"],
			Slug:        "premium-adult-dog-food-10kg",
			Name:        "成犬粮 10kg",
			Description: "鸡肉配方，适合中大型成犬。",
			Price:       models.MoneyFromCents(189000),
			Stock:       120,
			Images:      models.StringArray{"/uploads/demo/dog-food-10kg.jpg"},
			Brand:       "PetMart Select",
			PetKind:     "dog",
			SortOrder:   10,
		},
		{
			CategoryID:  bySlug["dog-food"],
			Slug:        "puppy-food-3kg",
			Name:        "幼犬粮 3kg",
			Description: "高蛋白配方，帮助幼犬发育。",
			Price:       models.MoneyFromCents(98000),
			Stock:       80,
			Images:      models.StringArray{"/uploads/demo/puppy-food-3kg.jpg"},
			Brand:       "PetMart Select",
			PetKind:     "dog",
			SortOrder:   20,
		},
		{
			CategoryID:  bySlug["cat-food"],
			Slug:        "salmon-cat-food-5kg",
			Name:        "三文鱼猫粮 5kg",
			Description: "深海三文鱼，低敏配方。",
			Price:       models.MoneyFromCents(152000),
			Stock:       90,
			Images:      models.StringArray{"/uploads/demo/salmon-cat-food.jpg"},
			Brand:       "Nordic Paws",
			PetKind:     "cat",
			SortOrder:   10,
		},
		{
			CategoryID:  bySlug["cat-food"],
			Slug:        "tuna-cat-cans-12pack",
			Name:        "金枪鱼猫罐头 12 罐",
			Description: "无谷物，整块金枪鱼。",
			Price:       models.MoneyFromCents(76000),
			Stock:       200,
			Images:      models.StringArray{"/uploads/demo/tuna-cans.jpg"},
			Brand:       "Nordic Paws",
			PetKind:     "cat",
			SortOrder:   20,
		},
		{
			CategoryID:  bySlug["toys"],
			Slug:        "rope-tug-toy",
			Name:        "棉绳拉扯玩具",
			Description: "耐咬棉绳，清洁牙齿。",
			Price:       models.MoneyFromCents(25000),
			Stock:       150,
			Images:      models.StringArray{"/uploads/demo/rope-toy.jpg"},
			Brand:       "HappyTail",
			PetKind:     "dog",
			SortOrder:   10,
		},
		{
			CategoryID:  bySlug["toys"],
			Slug:        "feather-wand",
			Name:        "逗猫羽毛棒",
			Description: "可替换羽毛头。",
			Price:       models.MoneyFromCents(18000),
			Stock:       3,
			Images:      models.StringArray{"/uploads/demo/feather-wand.jpg"},
			Brand:       "HappyTail",
			PetKind:     "cat",
			SortOrder:   20,
		},
		{
			CategoryID:  bySlug["grooming"],
			Slug:        "oatmeal-shampoo-500ml",
			Name:        "燕麦洗毛液 500ml",
			Description: "温和无泪配方，敏感皮肤适用。",
			Price:       models.MoneyFromCents(42000),
			Stock:       60,
			Images:      models.StringArray{"/uploads/demo/oatmeal-shampoo.jpg"},
			Brand:       "PetMart Select",
			PetKind:     "dog",
			SortOrder:   10,
		},
	}
	if err := models.DB.Create(&products).Error; err != nil {
		return err
	}

	banners := []models.Banner{
		{
			Name:      "首页主推-狗粮",
			Title:     "新客立减",
			Subtitle:  "全场狗粮第二件半价",
			Image:     "/uploads/demo/banner-dog-food.jpg",
			LinkType:  "category",
			LinkValue: "dog-food",
			SortOrder: 10,
		},
		{
			Name:      "首页主推-猫罐头",
			Title:     "猫罐头上新",
			Subtitle:  "整块金枪鱼，猫咪的最爱",
			Image:     "/uploads/demo/banner-cat-cans.jpg",
			LinkType:  "product",
			LinkValue: "tuna-cat-cans-12pack",
			SortOrder: 20,
		},
	}
	return models.DB.Create(&banners).Error
}
