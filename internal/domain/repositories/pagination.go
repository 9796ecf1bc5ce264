package repositories

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Normalize aplica os limites de paginação e retorna (page, pageSize, offset)
func Normalize(page, pageSize int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize, (page - 1) * pageSize
}

// Pages calcula o número de páginas (ceil(total / pageSize))
func Pages(total int64, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
