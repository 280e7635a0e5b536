package transport

// Chunk is a bounded window into an encoded frame.
type Chunk struct {
	Off int
	Len int
}

// Chunks partitions total bytes into ascending windows of at most size
// bytes, with no gaps or overlaps.
func Chunks(total, size int) []Chunk {
	if total <= 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}

	cs := make([]Chunk, 0, (total+size-1)/size)
	for off := 0; off < total; off += size {
		n := size
		if off+n > total {
			n = total - off
		}
		cs = append(cs, Chunk{Off: off, Len: n})
	}
	return cs
}
