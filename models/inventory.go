package models

type InventoryItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name" gorm:"not null;index:idx_inventory_name_hsn,priority:1"`
	HSN       string  `json:"hsn" gorm:"column:hsn;index:idx_inventory_name_hsn,priority:2"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Stock     int     `json:"stock"`
	Color     string  `json:"color"`
	ColorCode string  `json:"color_code"`
	Price     float64 `json:"price" gorm:"type:decimal(10,2)"`
	GST       float64 `json:"gst" gorm:"column:gst;default:18"`

	// Generated column: price * (1 + gst/100). Written by the database only.
	TaxedPrice float64 `json:"taxed_price" gorm:"->;-:migration"`
}

func (InventoryItem) TableName() string {
	return "inventory"
}
