package sim

import (
	"slices"
	"strings"

	"github.com/wippyai/vhpi/abi"
)

// object is one node of the elaborated design: the tool, a region, a
// signal or port, a type declaration, an enum literal or an index range.
type object struct {
	kind   abi.ClassKind
	name   string
	parent *object

	regions []*object
	decls   []*object // ports first, then signals, in declaration order

	typ   *typeDecl
	mode  abi.Mode
	rng   indexRange
	value []int64

	forced bool
	pos    int64 // enum literal position
	line   int32

	constraint *object
}

func (o *object) isSignal() bool {
	return o.kind == abi.SigDeclK || o.kind == abi.PortDeclK
}

func (o *object) isRegion() bool {
	return o.kind == abi.RootInstK || o.kind == abi.CompInstStmtK
}

// upperName is the name as VHDL reports it: basic identifiers in upper case.
func (o *object) upperName() string {
	return strings.ToUpper(o.name)
}

// fullName joins upper-case names from the root down, e.g. ":TOP:U1:CLK".
func (o *object) fullName(upper bool) string {
	var b strings.Builder
	for _, name := range o.path(upper) {
		b.WriteByte(':')
		b.WriteString(name)
	}
	return b.String()
}

// path lists the names from the root instance down to o.
func (o *object) path(upper bool) []string {
	var parts []string
	for p := o; p != nil && p.kind != abi.ToolK; p = p.parent {
		name := p.name
		if upper {
			name = p.upperName()
		}
		parts = append(parts, name)
	}
	slices.Reverse(parts)
	return parts
}

// lookup resolves one path element below a region.
func (o *object) lookup(name string) *object {
	for _, d := range o.decls {
		if strings.EqualFold(d.name, name) {
			return d
		}
	}
	for _, r := range o.regions {
		if strings.EqualFold(r.name, name) {
			return r
		}
	}
	return nil
}

// resolve walks a hierarchical name. Elements are separated by ':' or '.';
// a leading ':' anchors the path at root.
func resolve(root, scope *object, path string) *object {
	abs := strings.HasPrefix(path, ":")
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == ':' || r == '.' })
	if len(parts) == 0 {
		return nil
	}

	cur := scope
	if abs || cur == nil {
		cur = root
		if strings.EqualFold(parts[0], root.name) {
			parts = parts[1:]
		} else if abs {
			return nil
		}
	}
	for _, p := range parts {
		if cur == nil || !cur.isRegion() {
			return nil
		}
		cur = cur.lookup(p)
	}
	return cur
}

// declsOf returns the declarations of region o matching kind.
func (o *object) declsOf(kind abi.ClassKind) []*object {
	var out []*object
	for _, d := range o.decls {
		if d.kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// typeObject returns the declaration object for a type, creating it on
// first use.
func typeObject(t *typeDecl, root *object) *object {
	if t.obj == nil {
		t.obj = &object{kind: t.classKind(), name: t.name, parent: root, typ: t}
		if t.kind == enumType {
			for i, lit := range t.literals {
				t.obj.decls = append(t.obj.decls, &object{
					kind:   abi.EnumLiteralK,
					name:   lit,
					parent: t.obj,
					typ:    t,
					pos:    int64(i),
				})
			}
		}
	}
	return t.obj
}

// constraintObject returns the index range object of an array signal.
func (o *object) constraintObject() *object {
	if o.constraint == nil {
		o.constraint = &object{kind: abi.IntRangeK, name: o.rng.String(), parent: o, rng: o.rng}
	}
	return o.constraint
}
