package api

// swagger:model api.AddItemRequest
type AddItemRequest struct {
	ItemName     string `json:"item_name" validate:"required" example:"Meter reader"`
	PartNumber   string `json:"part_number" validate:"required" example:"PN-100"`
	Category     string `json:"category" validate:"required,category" example:"Handheld"`
	WorkingGroup string `json:"working_group" validate:"required,working_group" example:"F.E."`
	Quantity     *int   `json:"quantity" validate:"required,min=0,max=2147483647" example:"10"`
	Barcode      string `json:"barcode,omitempty" example:"SHV123456789"`
}

// UpdateItemRequest 只有 item_name、category、working_group、quantity 可更新；
// part_number 與 barcode 一旦出現即回 400
// swagger:model api.UpdateItemRequest
type UpdateItemRequest struct {
	ItemName     *string `json:"item_name,omitempty" example:"Meter reader v2"`
	Category     *string `json:"category,omitempty" example:"RPM"`
	WorkingGroup *string `json:"working_group,omitempty" example:"Customs"`
	Quantity     *int    `json:"quantity,omitempty" example:"3"`
	PartNumber   *string `json:"part_number,omitempty" swaggerignore:"true"`
	Barcode      *string `json:"barcode,omitempty" swaggerignore:"true"`
}
