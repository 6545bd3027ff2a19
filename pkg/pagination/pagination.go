package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 15
	// MaxLimit caps how many rows any page query can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage treats missing or negative pages as the first page.
func NormalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// Normalize returns a copy of the params with page and limit clamped.
func Normalize(params Params) Params {
	return Params{
		Page:  NormalizePage(params.Page),
		Limit: NormalizeLimit(params.Limit),
	}
}

// Offset converts the normalized page and limit into a row offset.
func (p Params) Offset() int {
	normalized := Normalize(p)
	return (normalized.Page - 1) * normalized.Limit
}

// TotalPages derives the page count for a result set of the given size.
func TotalPages(totalCount int64, limit int) int {
	limit = NormalizeLimit(limit)
	if totalCount <= 0 {
		return 0
	}
	pages := int(totalCount) / limit
	if int(totalCount)%limit != 0 {
		pages++
	}
	return pages
}
