// Package board turns a GitHub Projects snapshot into a text digest.
//
// The package is pure: it never touches the network, the filesystem or the
// environment. A run looks like this:
//
//	statuses, err := board.ResolveStatuses(snap.Fields)
//	if err != nil {
//	    return err // no Status field, nothing to render
//	}
//
//	lanes := board.Classify(statuses, snap.Items)
//	fmt.Println(board.Render(lanes))
//
// [Build] wraps the first two steps.
package board

import "encoding/json"

// StatusOption is one selectable value of the project's Status field.
type StatusOption struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Field is a project field definition as reported by `gh project field-list`.
type Field struct {
	ID      string         `json:"id,omitempty"`
	Name    string         `json:"name"`
	Type    string         `json:"type,omitempty"`
	Options []StatusOption `json:"options,omitempty"`
}

// Fields is the field definition set of a project.
type Fields []Field

// Lookup returns the field with the given name. Names are matched exactly.
func (f Fields) Lookup(name string) (Field, bool) {
	for _, field := range f {
		if field.Name == name {
			return field, true
		}
	}

	return Field{}, false
}

// Milestone is the milestone attached to an item.
type Milestone struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueOn       string `json:"dueOn,omitempty"`
}

// Label is a label attached to an item's underlying issue.
type Label struct {
	Name string `json:"name"`
}

// UnmarshalJSON accepts both `{"name": "bug"}` and a bare `"bug"`.
// The gh CLI emits the latter, saved snapshots may carry either. Any
// other shape leaves the label empty.
func (l *Label) UnmarshalJSON(data []byte) error {
	var name string

	if err := json.Unmarshal(data, &name); err == nil {
		l.Name = name

		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}

	if err := json.Unmarshal(data, &obj); err == nil {
		l.Name = obj.Name

		return nil
	}

	l.Name = ""

	return nil
}

// Item is one project card.
type Item struct {
	ID        string     `json:"id,omitempty"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	Milestone *Milestone `json:"milestone,omitempty"`
	Labels    []Label    `json:"labels,omitempty"`
}

// UnmarshalJSON decodes an item with lenient optional fields: a milestone
// or labels value of the wrong shape is dropped instead of failing the
// whole snapshot.
func (i *Item) UnmarshalJSON(data []byte) error {
	type plainItem Item

	var raw struct {
		plainItem
		Milestone json.RawMessage `json:"milestone,omitempty"`
		Labels    json.RawMessage `json:"labels,omitempty"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*i = Item(raw.plainItem)
	i.Milestone = decodeMilestone(raw.Milestone)
	i.Labels = decodeLabels(raw.Labels)

	return nil
}

func decodeMilestone(data json.RawMessage) *Milestone {
	if len(data) == 0 {
		return nil
	}

	var m *Milestone

	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}

	return m
}

// decodeLabels keeps the labels that carry a name. Anything but an array
// yields no labels.
func decodeLabels(data json.RawMessage) []Label {
	if len(data) == 0 {
		return nil
	}

	var elems []json.RawMessage

	if err := json.Unmarshal(data, &elems); err != nil {
		return nil
	}

	var labels []Label

	for _, elem := range elems {
		var label Label

		_ = json.Unmarshal(elem, &label)

		if label.Name != "" {
			labels = append(labels, label)
		}
	}

	return labels
}

// Lane is the group of items sharing one active status.
type Lane struct {
	Status string `json:"status"`
	Items  []Item `json:"items"`
}

// Snapshot is the complete input of one run.
type Snapshot struct {
	Fields Fields `json:"fields"`
	Items  []Item `json:"items"`
}

// Build resolves the active statuses of snap and classifies its items.
func Build(snap Snapshot) ([]Lane, error) {
	statuses, err := ResolveStatuses(snap.Fields)
	if err != nil {
		return nil, err
	}

	return Classify(statuses, snap.Items), nil
}
