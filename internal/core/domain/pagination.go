package domain

// Pagination - конверт пагинации, который возвращает сервер. Клиент его не вычисляет.
type Pagination struct {
	CurrentPage     int
	TotalPages      int
	HasNextPage     bool
	HasPrevPage     bool
	TotalProperties int
}

// Contains - страница лежит в диапазоне [1, TotalPages].
func (p Pagination) Contains(page int) bool {
	return page >= 1 && page <= p.TotalPages
}

func (p Pagination) PrevDisabled() bool { return !p.HasPrevPage }

func (p Pagination) NextDisabled() bool { return !p.HasNextPage }

// PageWindow - номера страниц вокруг текущей для отрисовки ссылок.
func (p Pagination) PageWindow(radius int) []int {
	if p.TotalPages < 1 {
		return nil
	}
	start := p.CurrentPage - radius
	if start < 1 {
		start = 1
	}
	end := p.CurrentPage + radius
	if end > p.TotalPages {
		end = p.TotalPages
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}
