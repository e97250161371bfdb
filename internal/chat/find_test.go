package chat

import "testing"

func TestFind(t *testing.T) {
	var tr Transcript
	tr.Append("hello world")
	tr.Append("goodbye")
	tr.Append("Hello again")

	cases := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "blank query", query: "  ", want: nil},
		{name: "case insensitive", query: "HELLO", want: []int{0, 2}},
		{name: "no match", query: "zzz", want: nil},
		{name: "single", query: "bye", want: []int{1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			matches := Find(tr.Entries(), tc.query)
			if len(matches) != len(tc.want) {
				t.Fatalf("Find(%q) returned %d matches, want %d", tc.query, len(matches), len(tc.want))
			}
			seen := map[int]bool{}
			for _, m := range matches {
				seen[m.Entry.Sequence] = true
				if len(m.Highlights) == 0 {
					t.Fatalf("match %+v has no highlights", m.Entry)
				}
			}
			for _, seq := range tc.want {
				if !seen[seq] {
					t.Fatalf("Find(%q) missing sequence %d", tc.query, seq)
				}
			}
		})
	}
}

func TestFind_EmptyTranscript(t *testing.T) {
	var tr Transcript
	if got := Find(tr.Entries(), "a"); got != nil {
		t.Fatalf("Find on empty transcript = %+v, want nil", got)
	}
}

func TestFind_HighlightsAreRuneIndexes(t *testing.T) {
	var tr Transcript
	tr.Append("héllo")

	matches := Find(tr.Entries(), "éo")
	if len(matches) != 1 {
		t.Fatalf("Find returned %d matches, want 1", len(matches))
	}
	got := matches[0].Highlights
	if len(got) != 2 || got[0] != 1 || got[1] != 4 {
		t.Fatalf("Highlights = %v, want [1 4]", got)
	}
}
