package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	MetricUnit       *string          `json:"metricUnit"`
	Weight           float64          `json:"weight"`
	Price            decimal.Decimal  `json:"price"`
	Stock            int              `json:"stock"`
	Category         *string          `json:"category"`
	Barcode          string           `json:"barcode"`
	ImageBase64      *string          `json:"imageBase64"`
	IsActive         bool             `json:"isActive"`
	CreatedAt        string           `json:"createdAt"`
	UpdatedAt        string           `json:"updatedAt"`
	CategoryID       int64            `json:"categoryId"`
	CategoryName     string           `json:"categoryName"`
	MetricUnitID     int64            `json:"metricUnitId"`
	MetricUnitName   string           `json:"metricUnitName"`
	SKU              string           `json:"sku"`
	BrandID          int64            `json:"brandId"`
	BrandName        string           `json:"brandName"`
	ModelID          int64            `json:"modelId"`
	ModelName        string           `json:"modelName"`
	ProductCondition string           `json:"productCondition"`
	Specs            json.RawMessage  `json:"specs,omitempty"`
	PricePerMonth    *decimal.Decimal `json:"pricePerMonth"`
	DeviceID         *int64           `json:"deviceId"`
}
