package catalog

import (
	"bytes"
	"context"
	"errors"
	"github.com/litetable/mta-bus-queries/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"testing"
)

func TestRun(t *testing.T) {
	t.Parallel()
	q, err := scanBusLineInGivenHour()
	require.NoError(t, err)

	tests := map[string]struct {
		rows        []*schema.Row
		readErr     error
		expected    string
		expectedErr error
	}{
		"no rows prints the header only": {
			expected: q.Header,
		},
		"rows follow the header on the same line": {
			rows: []*schema.Row{
				locationRow("MTA/M86-SBS/1496275200000/NYCT_1", []string{"40.1"}, []string{"-73.1"}),
				locationRow("MTA/M86-SBS/1496275200000/NYCT_2", []string{"40.2"}, []string{"-73.2"}),
			},
			expected: q.Header + "40.1,-73.1\n40.2,-73.2\n",
		},
		"read failure": {
			readErr:     assert.AnError,
			expected:    q.Header,
			expectedErr: assert.AnError,
		},
		"unpaired cells stop the scan": {
			rows: []*schema.Row{
				locationRow("MTA/M86-SBS/1496275200000/NYCT_1", []string{"40.1", "40.0"}, []string{"-73.1"}),
				locationRow("MTA/M86-SBS/1496275200000/NYCT_2", []string{"40.2"}, []string{"-73.2"}),
			},
			expected:    q.Header,
			expectedErr: ErrUnpairedCells,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := NewMockReader(ctrl)
			reader.
				EXPECT().
				Read(gomock.Any(), q.Spec, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *ReadSpec, fn func(*schema.Row) bool) error {
					for _, row := range tc.rows {
						if !fn(row) {
							return nil
						}
					}
					return tc.readErr
				}).
				Times(1)

			var out bytes.Buffer
			err := Run(context.Background(), reader, q, &out)
			if tc.expectedErr != nil {
				require.True(t, errors.Is(err, tc.expectedErr))
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.expected, out.String())
		})
	}
}
