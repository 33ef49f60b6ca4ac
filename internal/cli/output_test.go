package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short string unchanged", input: "abc", maxLen: 10, want: "abc"},
		{name: "exact length unchanged", input: "abcde", maxLen: 5, want: "abcde"},
		{name: "long string gets ellipsis", input: "abcdefghij", maxLen: 8, want: "abcde..."},
		{name: "tiny max hard-cuts", input: "abcdefghij", maxLen: 3, want: "abc"},
		{name: "empty string", input: "", maxLen: 5, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"available", "[+] available"},
		{"active", "[+] active"},
		{"upcoming", "[+] upcoming"},
		{"retired", "[-] retired"},
		{"canceled", "[-] canceled"},
		{"inactive", "[-] inactive"},
		{"maintenance", "[*] maintenance"},
		{"in_use", "[*] in_use"},
		{"something_else", "something_else"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := formatStatus(tt.status); got != tt.want {
				t.Errorf("formatStatus(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	if got := formatPrice(49.9); got != "49.90" {
		t.Errorf("formatPrice(49.9) = %q, want %q", got, "49.90")
	}
	if got := formatPrice(0); got != "0.00" {
		t.Errorf("formatPrice(0) = %q, want %q", got, "0.00")
	}
}

func TestTableRender(t *testing.T) {
	var buf bytes.Buffer
	table := &Table{headers: []string{"ID", "NAME"}, writer: &buf}
	table.AddRow("1", "Yoga")
	table.AddRow("2", "Spin")
	table.Render()

	out := buf.String()
	for _, want := range []string{"ID", "NAME", "--", "Yoga", "Spin"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q:\n%s", want, out)
		}
	}
}
