package client

// page is the backend's paginated listing envelope.
type page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// collectPages aggregates a paginated listing into one ordered slice. It
// requests pages strictly in order starting at start and stops once
// page*size covers the reported total, preserving backend item order. An
// explicit loop, not recursion, so a large total costs memory for the
// items only.
func collectPages[T any](start, size int, fetch func(pageNum, size int) (page[T], error)) ([]T, error) {
	var items []T
	for p := start; ; p++ {
		res, err := fetch(p, size)
		if err != nil {
			return nil, err
		}
		items = append(items, res.Items...)
		if p*size >= res.Total || len(res.Items) == 0 {
			return items, nil
		}
	}
}
