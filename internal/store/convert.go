package store

import (
	"cloud.google.com/go/bigtable"
	"github.com/litetable/mta-bus-queries/internal/schema"
	"strings"
)

// convertRow maps a Bigtable row onto the schema row model, keeping the store's cell order
// within each qualifier (newest first).
func convertRow(key string, row bigtable.Row) *schema.Row {
	out := &schema.Row{
		Key:     key,
		Columns: make(map[string]schema.VersionedQualifier, len(row)),
	}

	for family, items := range row {
		qualifiers := make(schema.VersionedQualifier)
		for _, item := range items {
			// ReadItem.Column is "family:qualifier"
			qualifier := strings.TrimPrefix(item.Column, family+":")
			qualifiers[qualifier] = append(qualifiers[qualifier], schema.Cell{
				Value:     item.Value,
				Timestamp: item.Timestamp.Time(),
			})
		}
		out.Columns[family] = qualifiers
	}

	return out
}
