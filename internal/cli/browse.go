package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gymstack/gymctl/internal/listview"
)

// screenField is one inline-editable field of a browse screen. Composite
// fields are edited as comma-separated text; the per-entity draft
// converters split them back at the collaborator boundary.
type screenField[T any] struct {
	name string
	get  func(T) string
}

// screen wires one entity type into the interactive browse loop: a
// listview session plus rendering and edit metadata. This is the single
// implementation behind the members, trainers, activities, equipment and
// plans management screens.
type screen[T any] struct {
	title   string
	session *listview.Session[T]
	headers []string
	row     func(T) []string
	fields  []screenField[T]

	in  *bufio.Reader
	out io.Writer
}

func newScreen[T any](title string, session *listview.Session[T], headers []string, row func(T) []string, fields []screenField[T]) *screen[T] {
	return &screen[T]{
		title:   title,
		session: session,
		headers: headers,
		row:     row,
		fields:  fields,
		in:      bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// run drives the screen until quit, EOF or session expiry.
func (sc *screen[T]) run(ctx context.Context) error {
	fmt.Fprintf(sc.out, "%s: /text to search, n/p pages, e <id> edit, d <id> delete, q quit\n", sc.title)
	for {
		sc.renderPage()
		fmt.Fprint(sc.out, "> ")
		line, err := sc.in.ReadString('\n')
		if err != nil {
			return nil
		}

		op, arg := parseScreenInput(line)
		switch op {
		case "":
			continue
		case "q":
			return nil
		case "n":
			sc.session.NextPage()
		case "p":
			sc.session.PrevPage()
		case "g":
			n, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintln(sc.out, "usage: g <page>")
				continue
			}
			sc.session.GoToPage(n)
		case "/":
			sc.session.Search(arg)
		case "e":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				fmt.Fprintln(sc.out, "usage: e <id>")
				continue
			}
			if expired := sc.edit(ctx, id); expired {
				return nil
			}
		case "d":
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				fmt.Fprintln(sc.out, "usage: d <id>")
				continue
			}
			if expired := sc.delete(ctx, id); expired {
				return nil
			}
		default:
			fmt.Fprintf(sc.out, "unknown command %q (try /text, n, p, g, e, d, q)\n", op)
		}
	}
}

func (sc *screen[T]) renderPage() {
	if q := sc.session.Query(); q != "" {
		fmt.Fprintf(sc.out, "\n%s (search: %q, %d match(es))\n", sc.title, q, sc.session.Len())
	} else {
		fmt.Fprintf(sc.out, "\n%s (%d item(s))\n", sc.title, sc.session.Len())
	}

	t := &Table{headers: sc.headers, writer: sc.out}
	for _, item := range sc.session.PageItems() {
		t.AddRow(sc.row(item)...)
	}
	t.Render()
	fmt.Fprintln(sc.out, sc.session.PageLabel())
}

// edit runs the inline editor for one row: snapshot, per-field prompts
// against the draft only, then a save/cancel loop. A failed save keeps
// the draft and the editing state, exactly like the row editor it
// replaces. Returns true when the session expired mid-save.
func (sc *screen[T]) edit(ctx context.Context, id int64) bool {
	if err := sc.session.StartEdit(id); err != nil {
		fmt.Fprintln(sc.out, err)
		return false
	}

	item, _ := sc.session.Item(id)
	fmt.Fprintf(sc.out, "Editing %d (enter keeps the current value)\n", id)
	for _, f := range sc.fields {
		fmt.Fprintf(sc.out, "  %s [%s]: ", f.name, f.get(item))
		line, err := sc.in.ReadString('\n')
		if err != nil {
			sc.session.CancelEdit()
			return false
		}
		if line = strings.TrimRight(line, "\r\n"); line != "" {
			sc.session.SetField(f.name, line)
		}
	}

	for {
		fmt.Fprint(sc.out, "[s]ave or [c]ancel: ")
		line, err := sc.in.ReadString('\n')
		if err != nil {
			sc.session.CancelEdit()
			return false
		}
		switch strings.TrimSpace(strings.ToLower(line)) {
		case "s", "save":
			if err := sc.session.SaveEdit(ctx); err != nil {
				if expired := notifyFailure("save "+sc.title, err); expired {
					return true
				}
				// Draft and editing state survive; offer another go.
				continue
			}
			notifySuccess("saved")
			return false
		case "c", "cancel":
			sc.session.CancelEdit()
			return false
		}
	}
}

// delete confirms, then removes the row through the delete collaborator.
// Returns true when the session expired.
func (sc *screen[T]) delete(ctx context.Context, id int64) bool {
	fmt.Fprintf(sc.out, "Delete %d? This cannot be undone. [y/N]: ", id)
	line, err := sc.in.ReadString('\n')
	if err != nil {
		return false
	}
	if answer := strings.TrimSpace(strings.ToLower(line)); answer != "y" && answer != "yes" {
		fmt.Fprintln(sc.out, "aborted")
		return false
	}

	if err := sc.session.Delete(ctx, id); err != nil {
		return notifyFailure("delete from "+sc.title, err)
	}
	notifySuccess("deleted")
	return false
}

// confirm asks a destructive-action question on stdin and returns whether
// the user answered yes.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.TrimSpace(strings.ToLower(line))
	if answer != "y" && answer != "yes" {
		fmt.Println("aborted")
		return false
	}
	return true
}

// parseScreenInput splits one line of screen input into an operation and
// its argument. A leading "/" starts a search; anything else is a
// single-letter command with an optional argument.
func parseScreenInput(line string) (op, arg string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	if strings.HasPrefix(line, "/") {
		return "/", strings.TrimSpace(line[1:])
	}
	parts := strings.SplitN(line, " ", 2)
	op = strings.ToLower(parts[0])
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return op, arg
}
