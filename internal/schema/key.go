package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errMalformedKey = errors.New("malformed row key")
	errBucketWidth  = errors.New("bucket is not a fixed-width decimal")
	errBucketCarry  = errors.New("bucket successor would change width")
)

// RowKey is a decoded MTA/<busLine>/<epochMillis>/<vehicleId> key.
type RowKey struct {
	Line    string
	Bucket  string
	Vehicle string
}

func (k RowKey) String() string {
	return strings.Join([]string{KeyRoot, k.Line, k.Bucket, k.Vehicle}, keySeparator)
}

// ParseRowKey decodes a row key. The bucket must be a fixed-width decimal.
func ParseRowKey(key string) (RowKey, error) {
	parts := strings.Split(key, keySeparator)
	if len(parts) != 4 || parts[0] != KeyRoot {
		return RowKey{}, fmt.Errorf("%w: %q", errMalformedKey, key)
	}
	if parts[1] == "" || parts[3] == "" {
		return RowKey{}, fmt.Errorf("%w: %q has an empty segment", errMalformedKey, key)
	}
	if !IsBucket(parts[2]) {
		return RowKey{}, fmt.Errorf("%w: %q", errBucketWidth, parts[2])
	}

	return RowKey{Line: parts[1], Bucket: parts[2], Vehicle: parts[3]}, nil
}

// IsBucket reports whether s is a BucketWidth digit decimal.
func IsBucket(s string) bool {
	if len(s) != BucketWidth {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// LinePrefix returns the prefix shared by every row of a bus line: MTA/<line>/.
func LinePrefix(line string) string {
	return KeyRoot + keySeparator + line + keySeparator
}

// BucketPrefix returns MTA/<line>/<bucket>, the prefix of a line's rows in one bucket.
func BucketPrefix(line, bucket string) string {
	return KeyRoot + keySeparator + line + keySeparator + bucket
}

// RowRange is a half-open [Start, End) interval of row keys. An empty End is unbounded.
type RowRange struct {
	Start string
	End   string
}

// Contains reports whether key falls inside the range.
func (r RowRange) Contains(key string) bool {
	return key >= r.Start && (r.End == "" || key < r.End)
}

// Empty reports whether no key can fall inside the range.
func (r RowRange) Empty() bool {
	return r.End != "" && r.Start >= r.End
}

// Intersect returns the keys contained in both ranges.
func (r RowRange) Intersect(o RowRange) RowRange {
	out := r
	if o.Start > out.Start {
		out.Start = o.Start
	}
	if o.End != "" && (out.End == "" || o.End < out.End) {
		out.End = o.End
	}
	return out
}

// PrefixRange returns the range of every key starting with prefix.
func PrefixRange(prefix string) RowRange {
	return RowRange{Start: prefix, End: PrefixLimit(prefix)}
}

// PrefixLimit returns the smallest key greater than every key starting with prefix. An empty
// result means there is no upper bound.
func PrefixLimit(prefix string) string {
	x := []byte(prefix)
	for len(x) > 0 {
		if x[len(x)-1] == 0xff {
			x = x[:len(x)-1]
			continue
		}
		x[len(x)-1]++
		break
	}
	return string(x)
}

// BucketRange returns [MTA/<line>/<bucket>, MTA/<line>/<bucket+1>), built by incrementing the
// final digit of the bucket. Buckets have a fixed width, so the range holds exactly the rows
// whose bucket segment equals bucket.
func BucketRange(line, bucket string) (RowRange, error) {
	if !IsBucket(bucket) {
		return RowRange{}, fmt.Errorf("%w: %q", errBucketWidth, bucket)
	}
	last := bucket[len(bucket)-1]
	if last == '9' {
		return RowRange{}, fmt.Errorf("%w: %q", errBucketCarry, bucket)
	}
	next := bucket[:len(bucket)-1] + string(last+1)

	return RowRange{
		Start: BucketPrefix(line, bucket),
		End:   BucketPrefix(line, next),
	}, nil
}
