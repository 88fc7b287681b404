package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type FilterKey string

const (
	FilterPage      FilterKey = "page"
	FilterLimit     FilterKey = "limit"
	FilterSearch    FilterKey = "search"
	FilterType      FilterKey = "type"
	FilterMinPrice  FilterKey = "minPrice"
	FilterMaxPrice  FilterKey = "maxPrice"
	FilterBedrooms  FilterKey = "bedrooms"
	FilterBathrooms FilterKey = "bathrooms"
	FilterStatus    FilterKey = "status"
	FilterCity      FilterKey = "city"
	FilterState     FilterKey = "state"
	FilterFeatured  FilterKey = "isFeatured"
)

// FilterKeys - все ключи, которые понимает список объявлений.
var FilterKeys = []FilterKey{
	FilterPage, FilterLimit, FilterSearch, FilterType, FilterMinPrice, FilterMaxPrice,
	FilterBedrooms, FilterBathrooms, FilterStatus, FilterCity, FilterState, FilterFeatured,
}

// formFilterKeys - поля, которые может прислать форма фильтров.
var formFilterKeys = []FilterKey{
	FilterSearch, FilterType, FilterMinPrice, FilterMaxPrice,
	FilterBedrooms, FilterBathrooms, FilterStatus, FilterCity, FilterState,
}

// DefaultPageSize - размер страницы списка объявлений.
const DefaultPageSize = 12

// Filters - отображение "ключ фильтра -> значение". Источник истины - query-параметры URL;
// отдельного клиентского состояния фильтров нет.
type Filters map[FilterKey]string

// ParseFilters берет из query только известные ключи с непустыми значениями.
// page и limit остаются, только если это положительные целые, и приводятся к каноническому виду.
func ParseFilters(q url.Values) Filters {
	f := make(Filters)
	for _, key := range FilterKeys {
		v := strings.TrimSpace(q.Get(string(key)))
		if v == "" {
			continue
		}
		if key == FilterPage || key == FilterLimit {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				continue
			}
			v = strconv.Itoa(n)
		}
		f[key] = v
	}
	return f
}

// ParseFiltersQuery - то же самое для закодированной строки запроса.
func ParseFiltersQuery(raw string) Filters {
	q, err := url.ParseQuery(raw)
	if err != nil {
		return make(Filters)
	}
	return ParseFilters(q)
}

func (f Filters) Get(key FilterKey) string { return f[key] }

func (f Filters) Clone() Filters {
	cp := make(Filters, len(f))
	for k, v := range f {
		cp[k] = v
	}
	return cp
}

func (f Filters) Values() url.Values {
	q := make(url.Values, len(f))
	for k, v := range f {
		if v != "" {
			q.Set(string(k), v)
		}
	}
	return q
}

// Encode - каноническое представление (ключи отсортированы), пригодное для URL.
func (f Filters) Encode() string {
	return f.Values().Encode()
}

// Page - текущая страница; отсутствующее или некорректное значение означает 1.
func (f Filters) Page() int {
	page, err := strconv.Atoi(f[FilterPage])
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// HasActive сообщает, задан ли хоть один фильтр помимо пагинации.
func (f Filters) HasActive() bool {
	for k, v := range f {
		if k != FilterPage && k != FilterLimit && v != "" {
			return true
		}
	}
	return false
}

// APIQuery - параметры запроса к списку объявлений: фильтры, страница (по умолчанию 1) и limit.
// Его каноническая кодировка служит ключом кэша.
func (f Filters) APIQuery(limit int) url.Values {
	q := f.Values()
	if q.Get(string(FilterPage)) == "" {
		q.Set(string(FilterPage), "1")
	}
	if q.Get(string(FilterLimit)) == "" && limit > 0 {
		q.Set(string(FilterLimit), strconv.Itoa(limit))
	}
	return q
}

// QuickSearch - отправка строки поиска из верхней панели.
// Пустой ввод ничего не меняет; остальные фильтры сохраняются, страница сбрасывается на 1.
func QuickSearch(current Filters, input string) Filters {
	search := strings.TrimSpace(input)
	if search == "" {
		return current.Clone()
	}
	next := current.Clone()
	next[FilterSearch] = search
	next[FilterPage] = "1"
	return next
}

// SubmitFilterForm строит отображение с нуля по полям формы: только непустые значения
// плюс page=1. Фильтры, которых нет в форме, отбрасываются.
func SubmitFilterForm(form url.Values) Filters {
	next := make(Filters)
	for _, key := range formFilterKeys {
		if v := strings.TrimSpace(form.Get(string(key))); v != "" {
			next[key] = v
		}
	}
	next[FilterPage] = "1"
	return next
}

// ClearSearch удаляет только ключ search.
func ClearSearch(current Filters) Filters {
	next := current.Clone()
	delete(next, FilterSearch)
	return next
}

func ClearAll() Filters {
	return make(Filters)
}

// GoToPage переключает страницу в пределах [1, totalPages] последнего конверта пагинации.
func GoToPage(current Filters, page int, p Pagination) (Filters, error) {
	if !p.Contains(page) {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrPageOutOfRange, page, p.TotalPages)
	}
	next := current.Clone()
	next[FilterPage] = strconv.Itoa(page)
	return next, nil
}

func NextPage(current Filters, p Pagination) (Filters, error) {
	if !p.HasNextPage {
		return nil, fmt.Errorf("%w: no next page", ErrPageOutOfRange)
	}
	return GoToPage(current, p.CurrentPage+1, p)
}

func PrevPage(current Filters, p Pagination) (Filters, error) {
	if !p.HasPrevPage {
		return nil, fmt.Errorf("%w: no previous page", ErrPageOutOfRange)
	}
	return GoToPage(current, p.CurrentPage-1, p)
}
