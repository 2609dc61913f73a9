package pagination

import "strconv"

// OffsetRequest represents an offset-based pagination request.
// A zero Size means "no limit", which keeps unpaginated listings backwards compatible.
type OffsetRequest struct {
	Page int `json:"page" query:"page"`
	Size int `json:"size" query:"size"`
}

// ParseOffsetRequest reads page and size query values; invalid values fall back to defaults.
func ParseOffsetRequest(page, size string) OffsetRequest {
	var r OffsetRequest
	if page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			r.Page = p
		}
	}
	if size != "" {
		if s, err := strconv.Atoi(size); err == nil {
			r.Size = s
		} else {
			r.Size = PageDefaultSize
		}
	}
	r.Validate()
	return r
}

// Validate normalizes offset pagination parameters
func (r *OffsetRequest) Validate() {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size < 0 {
		r.Size = PageDefaultSize
	}
	if r.Size > PageMaxSize {
		r.Size = PageMaxSize
	}
	if r.Page > PageMaxNumber {
		r.Page = PageMaxNumber
	}
}

// Limited reports whether a page size was requested.
func (r OffsetRequest) Limited() bool {
	return r.Size > 0
}

func (r OffsetRequest) Offset() int {
	if !r.Limited() {
		return 0
	}
	return (r.Page - 1) * r.Size
}
