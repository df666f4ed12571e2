package dom

// Kind names a mutation.
type Kind string

const (
	SetText     Kind = "set-text"
	SetAttr     Kind = "set-attr"
	Append      Kind = "append"
	Move        Kind = "move"
	AddClass    Kind = "add-class"
	RemoveClass Kind = "remove-class"
	SetStyle    Kind = "set-style"
	ScrollTo    Kind = "scroll-to"
)

// Op is one mutation against the element(s) matched by Target, a CSS selector.
//
// Field use by kind:
//   - SetText: Value
//   - SetAttr, SetStyle: Name, Value
//   - Append: Node (appended to Target)
//   - Move: Into (Target is moved to the end of Into)
//   - AddClass, RemoveClass: Value
//   - ScrollTo: Top, Behavior (no Target)
type Op struct {
	Kind     Kind    `json:"kind"`
	Target   string  `json:"target,omitempty"`
	Name     string  `json:"name,omitempty"`
	Value    string  `json:"value,omitempty"`
	Node     *Node   `json:"node,omitempty"`
	Into     string  `json:"into,omitempty"`
	Top      float64 `json:"top,omitempty"`
	Behavior string  `json:"behavior,omitempty"`
}

func TextOp(target, text string) Op {
	return Op{Kind: SetText, Target: target, Value: text}
}

func AttrOp(target, name, value string) Op {
	return Op{Kind: SetAttr, Target: target, Name: name, Value: value}
}

func AppendOp(target string, n Node) Op {
	return Op{Kind: Append, Target: target, Node: &n}
}

func MoveOp(target, into string) Op {
	return Op{Kind: Move, Target: target, Into: into}
}

func AddClassOp(target, class string) Op {
	return Op{Kind: AddClass, Target: target, Value: class}
}

func RemoveClassOp(target, class string) Op {
	return Op{Kind: RemoveClass, Target: target, Value: class}
}

func StyleOp(target, property, value string) Op {
	return Op{Kind: SetStyle, Target: target, Name: property, Value: value}
}

// ScrollOp asks the viewport to scroll to top. Only a client can carry it out.
func ScrollOp(top float64, behavior string) Op {
	return Op{Kind: ScrollTo, Top: top, Behavior: behavior}
}

// ID returns the selector for an element id.
func ID(id string) string {
	return "#" + id
}
