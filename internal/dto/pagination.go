package dto

import "github.com/SscSPs/org_banking/internal/utils/pagination"

// PageParams are the shared page/limit query parameters.
type PageParams struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// PaginationResponse describes the page returned alongside a list.
type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ToPaginationResponse builds page metadata for a resolved window.
func ToPaginationResponse(w pagination.Window, total int) PaginationResponse {
	return PaginationResponse{
		Page:       w.Page,
		Limit:      w.Limit,
		Total:      total,
		TotalPages: pagination.TotalPages(total, w.Limit),
	}
}
