package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		line string
		want Record
	}{
		"plain commit": {
			line: "a1b2c3d||init|",
			want: Record{ID: "a1b2c3d", Subject: "init"},
		},
		"single parent": {
			line: "b2c3d4e||add parser|a1b2c3d",
			want: Record{ID: "b2c3d4e", Subject: "add parser", Parents: []string{"a1b2c3d"}},
		},
		"merge commit": {
			line: "c3d4e5f||merge dev|a1b2c3d b2c3d4e",
			want: Record{ID: "c3d4e5f", Subject: "merge dev", Parents: []string{"a1b2c3d", "b2c3d4e"}},
		},
		"decorated commit": {
			line: "d4e5f6a| (HEAD -> main, origin/main, tag: v1.0)|release|c3d4e5f",
			want: Record{
				ID:          "d4e5f6a",
				Decorations: []string{"HEAD -> main", "origin/main", "tag: v1.0"},
				Subject:     "release",
				Parents:     []string{"c3d4e5f"},
			},
		},
		"empty subject": {
			line: "e5f6a7b|||d4e5f6a",
			want: Record{ID: "e5f6a7b", Parents: []string{"d4e5f6a"}},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseRecord(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseRecordMalformed(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		line   string
		fields int
	}{
		"too few fields":       {line: "a1b2c3d|subject", fields: 2},
		"delimiter in subject": {line: "a1b2c3d||fix: handle a|b split|", fields: 5},
		"empty line":           {line: "", fields: 1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseRecord(tc.line)
			var malformed *MalformedRecordError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tc.fields, malformed.Fields)
			assert.Equal(t, tc.line, malformed.Line)
		})
	}
}

func TestParseRecords(t *testing.T) {
	t.Parallel()

	t.Run("skips blank lines", func(t *testing.T) {
		t.Parallel()
		records, err := ParseRecords([]string{
			"a1||first|",
			"",
			"a2||second|a1",
			"   ",
		})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "a1", records[0].ID)
		assert.Equal(t, "a2", records[1].ID)
	})

	t.Run("first malformed line aborts", func(t *testing.T) {
		t.Parallel()
		_, err := ParseRecords([]string{
			"a1||first|",
			"broken line",
		})
		var malformed *MalformedRecordError
		assert.True(t, errors.As(err, &malformed))
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		records, err := ParseRecords(nil)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
