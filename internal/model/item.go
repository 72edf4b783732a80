// File: internal/model/item.go
package model

import "time"

type Item struct {
	ID           int       `db:"id" json:"id"`
	ItemName     string    `db:"item_name" json:"item_name"`
	PartNumber   string    `db:"part_number" json:"part_number"`
	Category     string    `db:"category" json:"category"`
	WorkingGroup string    `db:"working_group" json:"working_group"`
	Quantity     int       `db:"quantity" json:"quantity"`
	Barcode      string    `db:"barcode" json:"barcode"`
	LastUpdated  time.Time `db:"last_updated" json:"last_updated"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
