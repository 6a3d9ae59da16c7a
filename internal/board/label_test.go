package board_test

import (
	"encoding/json"
	"testing"

	"github.com/calvinalkan/gh-board/internal/board"

	"github.com/google/go-cmp/cmp"
)

func Test_Item_Decodes_Labels_When_Given_Strings_Or_Objects(t *testing.T) {
	t.Parallel()

	data := `{"title":"AB-1","status":"To Do","labels":["bug",{"name":"priority-low"}]}`

	var item board.Item

	err := json.Unmarshal([]byte(data), &item)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []board.Label{{Name: "bug"}, {Name: "priority-low"}}
	if diff := cmp.Diff(want, item.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	if item.Milestone != nil {
		t.Errorf("milestone=%v, want nil", item.Milestone)
	}
}

func Test_Item_Drops_Labels_When_Shape_Unknown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want []board.Label
	}{
		{name: "number element", data: `{"title":"AB-1","labels":[42]}`},
		{name: "object without name", data: `{"title":"AB-1","labels":[{"nodes":["high"]}]}`},
		{name: "not an array", data: `{"title":"AB-1","labels":{"nodes":["high"]}}`},
		{name: "null", data: `{"title":"AB-1","labels":null}`},
		{
			name: "keeps usable labels",
			data: `{"title":"AB-1","labels":[42,"high",{"name":7},{"name":"bug"}]}`,
			want: []board.Label{{Name: "high"}, {Name: "bug"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var item board.Item

			err := json.Unmarshal([]byte(tt.data), &item)
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			if got, want := item.Title, "AB-1"; got != want {
				t.Errorf("title=%q, want %q", got, want)
			}

			if diff := cmp.Diff(tt.want, item.Labels); diff != "" {
				t.Errorf("labels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_Item_Has_No_Priority_When_Labels_Malformed(t *testing.T) {
	t.Parallel()

	var item board.Item

	err := json.Unmarshal([]byte(`{"title":"AB-1","status":"To Do","labels":[42]}`), &item)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got, want := board.FormatItem(board.StatusTag(item.Status), item), "- [todo] AB-1"; got != want {
		t.Errorf("line=%q, want %q", got, want)
	}
}

func Test_Item_Drops_Milestone_When_Shape_Unknown(t *testing.T) {
	t.Parallel()

	var item board.Item

	err := json.Unmarshal([]byte(`{"title":"AB-1","milestone":"v1.2","status":"QA"}`), &item)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if item.Milestone != nil {
		t.Errorf("milestone=%v, want nil", item.Milestone)
	}

	if got, want := item.Status, "QA"; got != want {
		t.Errorf("status=%q, want %q", got, want)
	}
}

func Test_Item_Returns_Error_When_Title_Not_String(t *testing.T) {
	t.Parallel()

	var item board.Item

	err := json.Unmarshal([]byte(`{"title":12}`), &item)
	if err == nil {
		t.Fatal("expected error")
	}
}
