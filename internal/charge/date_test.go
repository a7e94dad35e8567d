package charge_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sagehenstudio/cap-one-wave/internal/charge"
)

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input     string
		expected  string
		expectErr bool
	}{
		"end of month":          {input: "1/31/2021", expected: "2021-01-31"},
		"single digit day":      {input: "12/5/2023", expected: "2023-12-05"},
		"single digit both":     {input: "3/1/2022", expected: "2022-03-01"},
		"already ISO formatted": {input: "2021-01-31", expectErr: true},
		"empty":                 {input: "", expectErr: true},
		"impossible date":       {input: "13/45/2021", expectErr: true},
		"day out of range":      {input: "2/30/2021", expectErr: true},
		"trailing garbage":      {input: "1/31/2021 ", expectErr: true},
		"missing year":          {input: "1/31", expectErr: true},
	}
	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			normalized, err := charge.NormalizeDate(test.input)

			if test.expectErr {
				require.Error(t, err)

				var dateErr charge.DateFormatError
				require.ErrorAs(t, err, &dateErr)
				require.Equal(t, test.input, dateErr.Input)
				require.Empty(t, normalized)
			} else {
				require.NoError(t, err)
				require.Equal(t, test.expected, normalized)
			}
		})
	}
}
