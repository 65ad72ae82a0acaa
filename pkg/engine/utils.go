package engine

// Chunk is the half-open index range [Low, High).
type Chunk struct {
	Low  int
	High int
}

// Chunks splits total items into at most workers ranges of equal size, the
// last one possibly shorter.
func Chunks(total int, workers int) []Chunk {
	if total <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	chunkSize := (total + workers - 1) / workers
	chunks := make([]Chunk, 0, workers)
	for i := 0; i < total; i += chunkSize {
		end := i + chunkSize
		if end > total {
			end = total
		}
		chunks = append(chunks, Chunk{Low: i, High: end})
	}
	return chunks
}
