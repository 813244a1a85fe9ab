package service

import "gorm.io/gorm"

// PageSize is fixed for every listing endpoint.
const PageSize = 10

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`        // Current page, 1-based
	PageSize   int   `json:"page_size"`   // Rows per page
	Total      int64 `json:"total"`       // Total matching rows
	TotalPages int   `json:"total_pages"` // Total pages
}

// paginate counts the rows matching query, then loads one page into out,
// ordered by id descending. query must already carry its model and filters.
func paginate(query *gorm.DB, page int, out any) (*Pagination, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}
	offset := (page - 1) * PageSize
	err := query.Session(&gorm.Session{}).
		Order("id desc").
		Offset(offset).
		Limit(PageSize).
		Find(out).Error
	if err != nil {
		return nil, err
	}
	totalPages := (int(total) + PageSize - 1) / PageSize
	return &Pagination{Page: page, PageSize: PageSize, Total: total, TotalPages: totalPages}, nil
}
