package catalog

import (
	"context"
	"github.com/litetable/mta-bus-queries/internal/schema"
	"github.com/rs/zerolog/log"
	"io"
	"time"
)

//go:generate mockgen -destination=./reader_mock.go -package=catalog -source=run.go

// Reader executes a read and calls fn for each row in ascending key order until fn returns
// false. A lookup of a missing row calls fn zero times.
type Reader interface {
	Read(ctx context.Context, spec *ReadSpec, fn func(row *schema.Row) bool) error
}

// Run prints the query header followed by the location pairs of every row the read returns.
// The header carries no trailing newline: the first pair continues on the header line.
func Run(ctx context.Context, reader Reader, q *Query, w io.Writer) error {
	now := time.Now()
	if _, err := io.WriteString(w, q.Header); err != nil {
		return err
	}

	var (
		rows     int
		writeErr error
	)
	err := reader.Read(ctx, q.Spec, func(row *schema.Row) bool {
		rows++
		if writeErr = WritePairs(w, row); writeErr != nil {
			return false
		}
		return true
	})
	if writeErr != nil {
		return writeErr
	}
	if err != nil {
		return err
	}

	log.Debug().
		Str("query", q.Name).
		Int("rows", rows).
		Dur("latency", time.Since(now)).
		Msg("query complete")
	return nil
}
