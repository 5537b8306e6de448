package domain

type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}

	return (p.Number - 1) * p.Size
}

type Paginated[T any] struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Results  []T   `json:"results"`
}

func NewPaginated[T any](items []T, count int64, page Page) Paginated[T] {
	if items == nil {
		items = []T{}
	}

	return Paginated[T]{
		Count:    count,
		Page:     page.Number,
		PageSize: page.Size,
		Results:  items,
	}
}
