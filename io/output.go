/*package io handles the configuration files, point tables, and text reports
of the butterfly command.
*/
package io

import (
	"fmt"
	"io"

	"github.com/phil-mansfield/butterfly/analyze"
)

// WritePairs writes one "computed\texact" line per target.
func WritePairs(w io.Writer, result, exact []complex128) error {
	for i := range result {
		_, err := fmt.Fprintf(w, "%v\t%v\n", result[i], exact[i])
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteReport writes the summary statistics of rep.
func WriteReport(w io.Writer, rep *analyze.Report) error {
	_, err := fmt.Fprintf(w,
		"Vector  relative error: %g\n"+
			"Average relative error: %g\n"+
			"Maximum relative error: %g\n",
		rep.Aggregate, rep.Average, rep.Maximum,
	)
	return err
}
