package newsextract

// Stats summarizes a batch result. It is derived on demand and never stored.
type Stats struct {
	Total       int            `json:"total"`
	Successful  int            `json:"successful"`
	Failed      int            `json:"failed"`
	SuccessRate float64        `json:"success_rate"`
	Methods     map[Method]int `json:"methods"`
}

// Summarize computes Stats for a batch. SuccessRate is a percentage and is
// zero for an empty batch. Methods counts successes only.
func Summarize(b *BatchResult) Stats {
	stats := Stats{Methods: make(map[Method]int)}
	if b == nil {
		return stats
	}

	stats.Total = b.Len()
	for _, url := range b.URLs {
		r := b.Results[url]
		if !r.OK() {
			continue
		}
		stats.Successful++
		stats.Methods[r.Article.Method]++
	}
	stats.Failed = stats.Total - stats.Successful

	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.Successful) / float64(stats.Total) * 100
	}
	return stats
}
