package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"lingo/internal/domain"
	"lingo/internal/gateway"
)

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// prompt prints label and reads one trimmed line from the command's input.
func prompt(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), label)
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return strings.TrimSpace(line), nil
}

func parseRange(s string) (domain.TimeRange, error) {
	tr := domain.TimeRange(s)
	if !tr.Valid() {
		return "", fmt.Errorf("unknown range %q: use week, month, year or all", s)
	}
	return tr, nil
}

func parseLevel(s string) (domain.Level, error) {
	l := domain.Level(strings.ToUpper(s))
	if !l.Valid() {
		return "", fmt.Errorf("unknown level %q: use A1, A2, B1, B2, C1 or C2", s)
	}
	return l, nil
}

// apiError replaces err with the text shown in the error banner.
func apiError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(gateway.UserMessage(err))
}
