package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fekuna/bao-console/internal/auth"
	"github.com/fekuna/bao-console/internal/model"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const viewAnnotation = "bao.view"

// Annotate marks cmd (and, through ViewOf, its children) as belonging to a gated view.
func Annotate(cmd *cobra.Command, v auth.View) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[viewAnnotation] = string(v)
	return cmd
}

// ViewOf walks up from cmd to the nearest annotated command.
func ViewOf(cmd *cobra.Command) auth.View {
	for c := cmd; c != nil; c = c.Parent() {
		if v, ok := c.Annotations[viewAnnotation]; ok {
			return auth.View(v)
		}
	}
	return ""
}

type identityResolver interface {
	Current(ctx context.Context) (*model.User, error)
}

// Gate is a PersistentPreRunE that enforces the role gate for annotated commands and puts
// the caller on the command context.
func Gate(resolver identityResolver) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		view := ViewOf(cmd)
		if view == "" {
			return nil
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		u, err := resolver.Current(ctx)
		if err != nil {
			return err
		}
		if err := auth.Allowed(u, view); err != nil {
			return err
		}
		cmd.SetContext(auth.WithUser(ctx, u))
		return nil
	}
}

// Confirm asks a yes/no question. assumeYes skips the prompt.
func Confirm(in io.Reader, out io.Writer, prompt string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, "read answer")
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ReadPassword reads without echo on a terminal, or a plain line otherwise.
func ReadPassword(cmd *cobra.Command, prompt string) (string, error) {
	out := cmd.ErrOrStderr()
	fmt.Fprint(out, prompt)
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", errors.Wrap(err, "read password")
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "read password")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ParseID accepts the loosely typed ids users paste ("12", " 12 ", "012", "12.0").
// Ids are always decimal.
func ParseID(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		f, ferr := cast.ToFloat64E(trimmed)
		if ferr != nil || f != float64(int64(f)) {
			return 0, errors.Errorf("invalid id %q", s)
		}
		id = int64(f)
	}
	if id <= 0 {
		return 0, errors.Errorf("invalid id %q", s)
	}
	return id, nil
}

// NewTable returns a tabwriter; callers must Flush.
func NewTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// Row writes tab-separated cells followed by a newline.
func Row(w io.Writer, cells ...interface{}) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}

// FormatDate renders a timestamp for tables, "-" when absent.
func FormatDate(ts *model.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04")
}

// OptString renders a nil pointer as "-".
func OptString(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// Changed returns &value when flag was given on the command line, nil otherwise.
func Changed[T any](cmd *cobra.Command, flag string, value T) *T {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &value
}
