package cli

import (
	"bufio"
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/gymstack/gymctl/internal/listview"
)

func TestParseScreenInput(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantOp  string
		wantArg string
	}{
		{name: "empty", line: "\n", wantOp: "", wantArg: ""},
		{name: "quit", line: "q\n", wantOp: "q", wantArg: ""},
		{name: "next page", line: "n\n", wantOp: "n", wantArg: ""},
		{name: "goto page", line: "g 3\n", wantOp: "g", wantArg: "3"},
		{name: "edit", line: "e 42\n", wantOp: "e", wantArg: "42"},
		{name: "delete with spaces", line: "  d  7 \n", wantOp: "d", wantArg: "7"},
		{name: "search", line: "/yoga\n", wantOp: "/", wantArg: "yoga"},
		{name: "search with space", line: "/ morning yoga\n", wantOp: "/", wantArg: "morning yoga"},
		{name: "clear search", line: "/\n", wantOp: "/", wantArg: ""},
		{name: "uppercase command", line: "N\n", wantOp: "n", wantArg: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, arg := parseScreenInput(tt.line)
			if op != tt.wantOp || arg != tt.wantArg {
				t.Errorf("parseScreenInput(%q) = (%q, %q), want (%q, %q)", tt.line, op, arg, tt.wantOp, tt.wantArg)
			}
		})
	}
}

type fakeItem struct {
	ID   int64
	Name string
}

func fakeScreen(items []fakeItem, update func(context.Context, fakeItem, map[string]string) (fakeItem, error), del func(context.Context, int64) error, input string) (*screen[fakeItem], *bytes.Buffer) {
	session := listview.NewSession(listview.Config[fakeItem]{
		PageSize:     listview.SmallPageSize,
		ID:           func(f fakeItem) int64 { return f.ID },
		SearchFields: func(f fakeItem) []string { return []string{f.Name} },
		Update:       update,
		Delete:       del,
	}, items)

	out := &bytes.Buffer{}
	sc := &screen[fakeItem]{
		title:   "Items",
		session: session,
		headers: []string{"ID", "NAME"},
		row:     func(f fakeItem) []string { return []string{strconv.FormatInt(f.ID, 10), f.Name} },
		fields: []screenField[fakeItem]{
			{name: "name", get: func(f fakeItem) string { return f.Name }},
		},
		in:  bufio.NewReader(strings.NewReader(input)),
		out: out,
	}
	return sc, out
}

func TestScreenSearchAndQuit(t *testing.T) {
	items := []fakeItem{{1, "Yoga"}, {2, "Spin"}, {3, "Morning Yoga"}}
	sc, out := fakeScreen(items, nil, nil, "/yoga\nq\n")

	if err := sc.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got := sc.session.Len(); got != 2 {
		t.Errorf("after search, Len() = %d, want 2", got)
	}
	if !strings.Contains(out.String(), "2 match(es)") {
		t.Errorf("output missing match count:\n%s", out.String())
	}
}

func TestScreenEditSaveCallsCollaborator(t *testing.T) {
	var gotDraft map[string]string
	update := func(ctx context.Context, f fakeItem, draft map[string]string) (fakeItem, error) {
		gotDraft = draft
		f.Name = draft["name"]
		return f, nil
	}

	// Edit row 1, type a new name, save, quit.
	sc, _ := fakeScreen([]fakeItem{{1, "Yoga"}}, update, nil, "e 1\nPilates\ns\nq\n")
	if err := sc.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if gotDraft["name"] != "Pilates" {
		t.Errorf("update draft = %v, want name=Pilates", gotDraft)
	}
	item, ok := sc.session.Item(1)
	if !ok || item.Name != "Pilates" {
		t.Errorf("item after save = %+v, want Name=Pilates", item)
	}
}

func TestScreenEditEnterKeepsValue(t *testing.T) {
	called := false
	update := func(ctx context.Context, f fakeItem, draft map[string]string) (fakeItem, error) {
		called = true
		if len(draft) != 0 {
			t.Errorf("draft = %v, want empty when every prompt was skipped", draft)
		}
		return f, nil
	}

	// Empty line at the field prompt keeps the current value.
	sc, _ := fakeScreen([]fakeItem{{1, "Yoga"}}, update, nil, "e 1\n\ns\nq\n")
	if err := sc.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !called {
		t.Error("update collaborator was not called")
	}
}

func TestScreenEditCancelDiscardsDraft(t *testing.T) {
	update := func(ctx context.Context, f fakeItem, draft map[string]string) (fakeItem, error) {
		t.Error("update collaborator must not be called on cancel")
		return f, nil
	}

	sc, _ := fakeScreen([]fakeItem{{1, "Yoga"}}, update, nil, "e 1\nPilates\nc\nq\n")
	if err := sc.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	item, _ := sc.session.Item(1)
	if item.Name != "Yoga" {
		t.Errorf("item after cancel = %+v, want original name", item)
	}
}

func TestScreenDeleteConfirmed(t *testing.T) {
	var deleted int64
	del := func(ctx context.Context, id int64) error {
		deleted = id
		return nil
	}

	sc, _ := fakeScreen([]fakeItem{{1, "Yoga"}, {2, "Spin"}}, nil, del, "d 2\ny\nq\n")
	if err := sc.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted id = %d, want 2", deleted)
	}
	if sc.session.Len() != 1 {
		t.Errorf("Len() after delete = %d, want 1", sc.session.Len())
	}
}

func TestScreenDeleteDeclined(t *testing.T) {
	del := func(ctx context.Context, id int64) error {
		t.Error("delete collaborator must not be called when declined")
		return nil
	}

	sc, _ := fakeScreen([]fakeItem{{1, "Yoga"}}, nil, del, "d 1\nn\nq\n")
	if err := sc.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if sc.session.Len() != 1 {
		t.Errorf("Len() = %d, want 1", sc.session.Len())
	}
}

func TestScreenUnknownCommand(t *testing.T) {
	sc, out := fakeScreen([]fakeItem{{1, "Yoga"}}, nil, nil, "zz\nq\n")
	if err := sc.run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("output missing unknown-command notice:\n%s", out.String())
	}
}
