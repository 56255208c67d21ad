package model

// Item is the domain model for a todo entry.
// Two items with the same fields are indistinguishable; position in a List
// is the only identity an item has.
type Item struct {
	Title   string `json:"title" yaml:"title"`
	Checked bool   `json:"checked" yaml:"checked"`
}

// Record is the dynamic row shape exchanged with a view:
// {"title": string, "checked": bool}.
type Record map[string]any

const (
	fieldTitle   = "title"
	fieldChecked = "checked"
)

// NewRecord builds the row a view expects for a todo entry.
func NewRecord(title string, checked bool) Record {
	return Record{fieldTitle: title, fieldChecked: checked}
}

// Record converts the item to its row form.
func (it Item) Record() Record { return NewRecord(it.Title, it.Checked) }

// TryDecode extracts an Item from a row. It reports false for anything that
// is not a record carrying a string title and a bool checked flag.
func TryDecode(v any) (Item, bool) {
	var fields map[string]any
	switch r := v.(type) {
	case Item:
		return r, true
	case *Item:
		if r == nil {
			return Item{}, false
		}
		return *r, true
	case Record:
		fields = r
	case map[string]any:
		fields = r
	default:
		return Item{}, false
	}

	title, okTitle := fields[fieldTitle].(string)
	checked, okChecked := fields[fieldChecked].(bool)
	if !okTitle || !okChecked {
		return Item{}, false
	}
	return Item{Title: title, Checked: checked}, true
}

// Seed returns the rows the application starts with.
func Seed() []any {
	return []any{
		NewRecord("Implement the .60 file", true),
		NewRecord("Do the Rust part", true),
		NewRecord("Make the C++ code", false),
		NewRecord("Write some JavaScript code", false),
		NewRecord("Test the application", false),
		NewRecord("Ship to customer", false),
		NewRecord("???", false),
		NewRecord("Profit", false),
	}
}
