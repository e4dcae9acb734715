package cmd

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		s    string
		max  int
		want string
	}{
		{name: "short stays", s: "SELECT 1", max: 80, want: "SELECT 1"},
		{name: "exact length stays", s: "abcde", max: 5, want: "abcde"},
		{name: "long gets ellipsis", s: "abcdef", max: 5, want: "abcde..."},
		// A comment holding multi-byte characters must not be cut
		// mid-rune.
		{name: "multi byte boundary", s: "SELECT '受注テーブル全件'", max: 10, want: "SELECT '受注..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.s, tt.max)
			require.Equal(t, tt.want, got)
			require.True(t, utf8.ValidString(got))
		})
	}
}
