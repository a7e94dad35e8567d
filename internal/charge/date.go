package charge

import (
	"fmt"
	"time"
)

// sourceDateFormat is how Capital One alert dates arrive (M/D/YYYY,
// non-zero-padded month and day permitted).
const (
	sourceDateFormat = "1/2/2006"
	waveDateFormat   = "2006-01-02"
)

type DateFormatError struct {
	Input string
}

func (e DateFormatError) Error() string {
	return fmt.Sprintf("date %q does not match the M/D/YYYY format", e.Input)
}

// NormalizeDate converts a source-format date (e.g. "1/31/2021") into the
// ISO form Wave requires ("2021-01-31"). Anything that does not parse
// strictly against the source pattern is fatal for the current charge;
// there is no fallback guessing.
func NormalizeDate(date string) (string, error) {
	parsed, err := time.Parse(sourceDateFormat, date)
	if err != nil {
		return "", DateFormatError{Input: date}
	}

	return parsed.Format(waveDateFormat), nil
}
