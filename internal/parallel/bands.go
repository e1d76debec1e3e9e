package parallel

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// SplitRows cuts [y0, y1) into at most parts bands of nearly equal height,
// never thinner than minRows (except the last). An empty range yields no
// bands.
func SplitRows(y0, y1, parts, minRows int) []Band {
	total := y1 - y0
	if total <= 0 {
		return nil
	}
	parts = max(parts, 1)
	minRows = max(minRows, 1)
	if total/parts < minRows {
		parts = max(total/minRows, 1)
	}

	bands := make([]Band, 0, parts)
	base, extra := total/parts, total%parts
	y := y0
	for i := range parts {
		h := base
		if i < extra {
			h++
		}
		bands = append(bands, Band{Y0: y, Y1: y + h})
		y += h
	}
	return bands
}

// ForBands splits [y0, y1) into bands sized for the pool and runs fn on
// each band concurrently. Bands never overlap, so fn may write its rows
// without locking.
func (p *WorkerPool) ForBands(y0, y1, minRows int, fn func(Band)) {
	bands := SplitRows(y0, y1, p.Workers()*2, minRows)
	if len(bands) == 1 {
		fn(bands[0])
		return
	}
	jobs := make([]func(), len(bands))
	for i, b := range bands {
		jobs[i] = func() { fn(b) }
	}
	p.ExecuteAll(jobs)
}
