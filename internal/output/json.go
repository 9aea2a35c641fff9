package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/prscore/internal/diff"
	"github.com/dshills/prscore/internal/review"
)

// JSONWriter outputs the report document.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, report *review.Report, _ diff.PullRequest) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
