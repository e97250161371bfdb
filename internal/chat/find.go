package chat

import (
	"iter"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match 是一条命中的记录及其匹配字符位置（rune 下标）。
type Match struct {
	Entry      Entry
	Highlights []int
	score      int
}

// Find 在记录中做模糊搜索，按得分降序返回；得分相同时按序号升序。
// query 裁剪后为空时返回 nil。
func Find(entries iter.Seq[Entry], query string) []Match {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}
	var all []Entry
	var keys []string
	for e := range entries {
		all = append(all, e)
		keys = append(keys, strings.ToLower(e.Text))
	}
	if len(all) == 0 {
		return nil
	}
	results := fuzzy.Find(strings.ToLower(trimmed), keys)
	matches := make([]Match, 0, len(results))
	for _, res := range results {
		matches = append(matches, Match{
			Entry:      all[res.Index],
			Highlights: runeIndexes(keys[res.Index], res.MatchedIndexes),
			score:      res.Score,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score == matches[j].score {
			return matches[i].Entry.Sequence < matches[j].Entry.Sequence
		}
		return matches[i].score > matches[j].score
	})
	return matches
}

// runeIndexes 将 fuzzy 返回的字节下标换算为 rune 下标。
// strings.ToLower 逐 rune 映射，小写键与原文的 rune 下标一致。
func runeIndexes(s string, byteIdx []int) []int {
	if len(byteIdx) == 0 {
		return nil
	}
	pos := make(map[int]int, len(s))
	r := 0
	for i := range s {
		pos[i] = r
		r++
	}
	out := make([]int, 0, len(byteIdx))
	for _, b := range byteIdx {
		if idx, ok := pos[b]; ok {
			out = append(out, idx)
		}
	}
	return out
}
