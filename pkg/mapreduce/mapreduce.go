// Package mapreduce aggregates tag frequencies across the recipes of one run.
package mapreduce

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dtnitsch/recipe-web-parser/models"
)

// Map counts the tags of a single recipe. Tags are compared case-insensitively
// and reported lowercased.
func Map(r *models.Recipe) map[string]int {
	counts := make(map[string]int, len(r.Tags))
	for _, t := range r.Tags {
		key := strings.ToLower(strings.TrimSpace(t.Value))
		if key == "" {
			continue
		}
		counts[key]++
	}
	return counts
}

// Reduce aggregates a slice of frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for tag, count := range counts {
			finalResults[tag] += count
		}
	}

	return finalResults
}

// Top returns the n most frequent entries formatted as "tag:count", ties
// broken alphabetically.
func Top(counts map[string]int, n int) []string {
	type kv struct {
		Key   string
		Value int
	}

	ss := make([]kv, 0, len(counts))
	for k, v := range counts {
		ss = append(ss, kv{k, v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	limit := min(max(n, 0), len(ss))
	top := make([]string, limit)
	for i := 0; i < limit; i++ {
		top[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}
	return top
}
