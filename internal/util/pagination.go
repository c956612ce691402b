package util

// Calculate turns 1-based page/size query values into an offset and
// limit. The archive dashboard loads in windows of 50, capped at 200
// per request.
func Calculate(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	switch {
	case size <= 0:
		size = 50
	case size > 200:
		size = 200
	}
	return (page - 1) * size, size
}
