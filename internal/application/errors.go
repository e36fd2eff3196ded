package application

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/e-stacy/lebanon-property-tax-map/internal/core"
)

// PrintError logs err and writes the coded line a failed run ends with.
// Errors without a specific code also print the technical text, since the
// log level may hide it.
func PrintError(w io.Writer, err error) {
	userErr := core.NewUserError(err)
	if userErr == nil {
		return
	}
	slog.Error("command failed", "error", userErr.Technical, "code", userErr.User.Code)

	fmt.Fprintln(w, core.FormatUserError(userErr.Technical))
	if !core.IsUserFacing(userErr.Technical) {
		fmt.Fprintf(w, "Details: %v\n", userErr.Technical)
	}
}
