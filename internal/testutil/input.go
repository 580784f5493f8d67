package testutil

import (
	"fmt"
	"strings"
)

// BenchInput returns a JSON document describing n episodes of a fictional
// series, for use as benchmark input.
func BenchInput(n int) string {
	var sb strings.Builder
	sb.WriteString(`{"series": "The Paper Hour", "episodes": [`)
	for i := range n {
		if i > 0 {
			sb.WriteString(",\n")
		}
		fmt.Fprintf(&sb, `  {"episode": %d, "title": "Episode number %d", "rating": %.2f, `+
			`"hasDetail": %v, "summary": "Things happen in episode %d, and then other things.", `+
			`"tags": ["news", "talk", null]}`, i+1, i+1, float64(i%50)/10, i%2 == 0, i+1)
	}
	sb.WriteString("]}\n")
	return sb.String()
}
