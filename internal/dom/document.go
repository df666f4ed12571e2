package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ApplyError reports an operation that could not be carried out against the
// document, usually because its target is missing from the page shell.
type ApplyError struct {
	Op      Op
	Message string
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("apply %s %q: %s", e.Op.Kind, e.Op.Target, e.Message)
}

// Document is a parsed page that operations are applied to.
type Document struct {
	doc *goquery.Document
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Find exposes the underlying selection for inspection.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Apply runs ops in order and stops at the first failure.
func (d *Document) Apply(ops ...Op) error {
	for _, op := range ops {
		if err := d.apply(op); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) apply(op Op) error {
	if op.Kind == ScrollTo {
		// viewport only; nothing to change in markup
		return nil
	}

	sel := d.doc.Find(op.Target)
	if sel.Length() == 0 {
		return &ApplyError{Op: op, Message: "no element matches target"}
	}

	switch op.Kind {
	case SetText:
		sel.SetText(op.Value)
	case SetAttr:
		sel.SetAttr(op.Name, op.Value)
	case Append:
		if op.Node == nil {
			return &ApplyError{Op: op, Message: "append without node"}
		}
		sel.AppendNodes(op.Node.toHTML())
	case Move:
		into := d.doc.Find(op.Into)
		if into.Length() == 0 {
			return &ApplyError{Op: op, Message: fmt.Sprintf("no element matches %q", op.Into)}
		}
		into.First().AppendSelection(sel)
	case AddClass:
		sel.AddClass(op.Value)
	case RemoveClass:
		sel.RemoveClass(op.Value)
	case SetStyle:
		sel.Each(func(_ int, s *goquery.Selection) {
			style, _ := s.Attr("style")
			s.SetAttr("style", setStyleProperty(style, op.Name, op.Value))
		})
	default:
		return &ApplyError{Op: op, Message: "unknown operation"}
	}
	return nil
}

// HTML renders the whole document.
func (d *Document) HTML() (string, error) {
	return goquery.OuterHtml(d.doc.Selection)
}

// setStyleProperty replaces or appends one declaration in an inline style.
func setStyleProperty(style, property, value string) string {
	var decls []string
	replaced := false
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, _ := strings.Cut(decl, ":")
		if strings.TrimSpace(name) == property {
			decl = property + ": " + value
			replaced = true
		}
		decls = append(decls, decl)
	}
	if !replaced {
		decls = append(decls, property+": "+value)
	}
	return strings.Join(decls, "; ") + ";"
}
