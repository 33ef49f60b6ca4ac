package listview

import (
	"reflect"
	"testing"
)

func TestSplitCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "plain list", input: "mat,band", want: []string{"mat", "band"}},
		{name: "trims whitespace", input: " mat , band ", want: []string{"mat", "band"}},
		{name: "drops empty entries", input: "mat,,band,", want: []string{"mat", "band"}},
		{name: "empty input", input: "", want: nil},
		{name: "only separators", input: " , ,", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitCSV(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitCSV(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestJoinCSV(t *testing.T) {
	if got := JoinCSV([]string{"mat", "band"}); got != "mat, band" {
		t.Errorf("JoinCSV() = %q, want %q", got, "mat, band")
	}
	if got := JoinCSV(nil); got != "" {
		t.Errorf("JoinCSV(nil) = %q, want empty", got)
	}
}
