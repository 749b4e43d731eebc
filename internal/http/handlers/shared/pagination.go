package shared

import (
	"strconv"
	"strings"

	"github.com/vms-next/internal/http/response"
)

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// ParsePageQuery 从 query 读取 page/page_size 并归一化。
func ParsePageQuery(pageRaw, pageSizeRaw string) (int, int) {
	page, _ := strconv.Atoi(strings.TrimSpace(pageRaw))
	pageSize, _ := strconv.Atoi(strings.TrimSpace(pageSizeRaw))
	return NormalizePagination(page, pageSize)
}

// BuildPagination 构建分页响应信息。
func BuildPagination(page, pageSize int, total int64) response.Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
