package models

// All lists every persisted model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Follow{},
		&Post{},
		&Comment{},
		&Like{},
		&Notification{},
	}
}

// Page is a normalized limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

// Pagination defaults.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// NewPage clamps limit into [1, MaxLimit] (0 means DefaultLimit) and offset to >= 0.
func NewPage(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}
