package main

import (
	"storefront/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.CartModel{},
		model.CartItemModel{},
		model.ProductModel{},
		model.AddressModel{},
		model.PaymentMethodModel{},
		model.OrderModel{},
		model.OrderDetailModel{},
		model.OrderTimelineEventModel{},
		model.PromotionModel{},
		model.OrderPromotionModel{},
		model.ProductPromotionModel{},
		model.RevenueReportModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
