package index

// Stats summarizes the cluster distribution of a built index. MeanSize is
// Entries divided by Clusters; a MaxSize far above MeanSize signals skew from
// repeated expansion and suggests a rebuild.
type Stats struct {
	Entries  int
	Clusters int
	Sizes    []int
	MinSize  int
	MaxSize  int
	MeanSize float64
}

// Stats returns the cluster distribution, or the zero value for an unbuilt
// index.
func (ix *Index) Stats() Stats {
	if !ix.Built() {
		return Stats{}
	}
	sizes := make([]int, ix.model.K())
	for _, a := range ix.assignments {
		sizes[a]++
	}
	s := Stats{
		Entries:  len(ix.names),
		Clusters: ix.model.K(),
		Sizes:    sizes,
		MeanSize: float64(len(ix.names)) / float64(ix.model.K()),
	}
	for i, n := range sizes {
		if i == 0 || n < s.MinSize {
			s.MinSize = n
		}
		if n > s.MaxSize {
			s.MaxSize = n
		}
	}
	return s
}
