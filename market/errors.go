package market

import "fmt"

// DataError reports malformed or inconsistent input data. Stage names the
// dataset that failed (stock history or option quotes) so a failed calibration
// run points at the offending file.
type DataError struct {
	Stage string
	Msg   string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%s data: %s", e.Stage, e.Msg)
}

func dataErrf(stage, format string, args ...any) error {
	return &DataError{Stage: stage, Msg: fmt.Sprintf(format, args...)}
}
