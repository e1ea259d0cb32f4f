package schema

import (
	"errors"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseRowKey(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input       string
		expected    RowKey
		expectedErr error
	}{
		"valid key": {
			input:    "MTA/M86-SBS/1496275200000/NYCT_5824",
			expected: RowKey{Line: "M86-SBS", Bucket: "1496275200000", Vehicle: "NYCT_5824"},
		},
		"wrong root": {
			input:       "NJT/M86-SBS/1496275200000/NYCT_5824",
			expectedErr: errMalformedKey,
		},
		"missing vehicle": {
			input:       "MTA/M86-SBS/1496275200000",
			expectedErr: errMalformedKey,
		},
		"empty vehicle": {
			input:       "MTA/M86-SBS/1496275200000/",
			expectedErr: errMalformedKey,
		},
		"short bucket": {
			input:       "MTA/M86-SBS/149627520000/NYCT_5824",
			expectedErr: errBucketWidth,
		},
		"non decimal bucket": {
			input:       "MTA/M86-SBS/14962752000x0/NYCT_5824",
			expectedErr: errBucketWidth,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			got, err := ParseRowKey(tc.input)
			if tc.expectedErr != nil {
				req.True(errors.Is(err, tc.expectedErr), "expected %v to wrap %v", err,
					tc.expectedErr)
				return
			}

			req.NoError(err)
			req.Equal(tc.expected, got)
			req.Equal(tc.input, got.String())
		})
	}
}

func TestPrefixes(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	req.Equal("MTA/M86-SBS/", LinePrefix("M86-SBS"))
	req.Equal("MTA/M86-SBS/1496275200000", BucketPrefix("M86-SBS", ExampleBucket))
	req.Equal("MTA/N", PrefixLimit("MTA/M"))
	req.Equal("b", PrefixLimit("a\xff\xff"))
	req.Equal("", PrefixLimit("\xff"))
}

func TestBucketRange(t *testing.T) {
	t.Parallel()
	t.Run("successor of the example bucket", func(t *testing.T) {
		req := require.New(t)
		r, err := BucketRange("M1", ExampleBucket)
		req.NoError(err)
		req.Equal("MTA/M1/1496275200000", r.Start)
		req.Equal("MTA/M1/1496275200001", r.End)

		req.True(r.Contains("MTA/M1/1496275200000/v1"))
		req.True(r.Contains("MTA/M1/1496275200000"))
		req.False(r.Contains("MTA/M1/1496275200500/v2"))
		req.False(r.Contains("MTA/M1/1496275200001/v1"))
		req.False(r.Contains("MTA/M10/1496275200000/v1"))
	})

	t.Run("bucket must be fixed width", func(t *testing.T) {
		_, err := BucketRange("M1", "14962752000")
		require.ErrorIs(t, err, errBucketWidth)
	})

	t.Run("last digit nine would carry", func(t *testing.T) {
		_, err := BucketRange("M1", "1496275200009")
		require.ErrorIs(t, err, errBucketCarry)
	})
}

func TestRowRange_Intersect(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		a, b     RowRange
		expected RowRange
		empty    bool
	}{
		"inner range": {
			a:        PrefixRange("MTA/M"),
			b:        RowRange{Start: "MTA/M1/1", End: "MTA/M1/2"},
			expected: RowRange{Start: "MTA/M1/1", End: "MTA/M1/2"},
		},
		"disjoint ranges": {
			a:        PrefixRange("MTA/M"),
			b:        RowRange{Start: "MTA/Q1/1", End: "MTA/Q1/2"},
			expected: RowRange{Start: "MTA/Q1/1", End: "MTA/N"},
			empty:    true,
		},
		"unbounded end": {
			a:        RowRange{Start: "a"},
			b:        RowRange{Start: "b", End: "c"},
			expected: RowRange{Start: "b", End: "c"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := tc.a.Intersect(tc.b)
			require.Equal(t, tc.expected, got)
			require.Equal(t, tc.empty, got.Empty())
		})
	}
}

func TestManhattanBusLines(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	req.Len(ManhattanBusLines, 41)
	req.Equal("M1", ManhattanBusLines[0])
	req.Equal("M86-SBS", ManhattanBusLines[len(ManhattanBusLines)-1])

	seen := make(map[string]bool)
	for _, line := range ManhattanBusLines {
		req.False(seen[line], "duplicate line %s", line)
		seen[line] = true
	}
}
