package repository

import "gorm.io/gorm"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page 页码从 1 开始；用 NewPage 构造以保证取值合法
type Page struct {
	Number int
	Size   int
}

// NewPage 页码小于 1 取第一页，条数缺省 20、上限 100
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	switch {
	case size <= 0:
		size = defaultPageSize
	case size > maxPageSize:
		size = maxPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset 跳过的行数
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages total 条记录按当前条数可分几页
func (p Page) TotalPages(total int64) int64 {
	if p.Size <= 0 || total <= 0 {
		return 0
	}
	return (total + int64(p.Size) - 1) / int64(p.Size)
}

// 零值 Page 不分页
func (p Page) scope(query *gorm.DB) *gorm.DB {
	if p.Size <= 0 {
		return query
	}
	return query.Offset(p.Offset()).Limit(p.Size)
}
