// Package table describes how records project into rows of cells and
// renders a collection through that description.
//
// A Model is plain data: an ordered list of columns, each either an
// Accessor (reads one field and formats it) or an Action (exposes the
// operations available on the whole row). Rendering is a fold over the
// columns and never touches the network or mutates its inputs.
package table

// Row is what a column model can project. RowID is the row identity used
// for reconciliation, never the position.
type Row interface {
	RowID() string
	Field(key string) string
}

// Kind tags a Column variant.
type Kind int

const (
	KindAccessor Kind = iota
	KindAction
)

func (k Kind) String() string {
	switch k {
	case KindAccessor:
		return "accessor"
	case KindAction:
		return "action"
	default:
		return "unknown"
	}
}

// Action is one operation a row offers, such as "edit".
type Action struct {
	Name     string
	Label    string
	Key      string
	Disabled bool
}

// Column is a tagged variant: Key and Format apply to accessors, ID and
// Actions to action columns.
type Column[R Row] struct {
	Kind    Kind
	Header  string
	Key     string
	Format  func(value string) string
	ID      string
	Actions func(row R) []Action
}

// Model is an ordered column list.
type Model[R Row] []Column[R]

// Accessor builds a column that pulls field key from the row.
// A nil format shows the raw value.
func Accessor[R Row](key, header string, format func(string) string) Column[R] {
	return Column[R]{Kind: KindAccessor, Key: key, Header: header, Format: format}
}

// ActionColumn builds a column exposing row operations.
func ActionColumn[R Row](id, header string, actions func(R) []Action) Column[R] {
	return Column[R]{Kind: KindAction, ID: id, Header: header, Actions: actions}
}

// Name identifies the column: the field key for accessors, the id for actions.
func (c Column[R]) Name() string {
	if c.Kind == KindAction {
		return c.ID
	}
	return c.Key
}

// Headers returns the header labels in column order.
func (m Model[R]) Headers() []string {
	out := make([]string, len(m))
	for i, c := range m {
		out[i] = c.Header
	}
	return out
}

// Index returns the position of the column with the given name, or -1.
func (m Model[R]) Index(name string) int {
	for i, c := range m {
		if c.Name() == name {
			return i
		}
	}
	return -1
}

func (c Column[R]) render(row R) Cell {
	switch c.Kind {
	case KindAction:
		var actions []Action
		if c.Actions != nil {
			actions = c.Actions(row)
		}
		return Cell{Column: c.ID, Actions: actions, Text: actionLabels(actions)}
	default:
		value := row.Field(c.Key)
		if c.Format != nil {
			value = c.Format(value)
		}
		return Cell{Column: c.Key, Text: value}
	}
}
