package query

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return 50
	}
	if f.PageSize > 500 {
		return 500
	}
	return f.PageSize
}
