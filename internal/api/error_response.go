package api

import "shv-inventory/internal/service"

// ErrorResponse 全域錯誤響應模型
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	// message 錯誤描述
	Message string `json:"message"`
	// ref 相關的 email、品項 id 或品名
	Ref string `json:"ref,omitempty"`
	// results best-effort 出庫失敗前已提交的項目
	Results []service.CheckoutResult `json:"results,omitempty"`
}
