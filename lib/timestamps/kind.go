package timestamps

import (
	"strings"

	"github.com/donutnomad/stampkit/lib/resource"
	"github.com/samber/lo"
)

// Kind is one of the four managed timestamp properties.
type Kind uint8

const (
	CreatedAt Kind = iota
	CreatedOn
	UpdatedAt
	UpdatedOn
)

type rule uint8

const (
	// 仅在新记录且未赋值时写入
	onCreate rule = iota
	// 每次钩子执行都刷新
	onUpdate
)

type descriptor struct {
	name string
	typ  resource.Type
	rule rule
}

// descriptors is indexed by Kind and never mutated.
var descriptors = [...]descriptor{
	CreatedAt: {name: "created_at", typ: resource.TypeDateTime, rule: onCreate},
	CreatedOn: {name: "created_on", typ: resource.TypeDate, rule: onCreate},
	UpdatedAt: {name: "updated_at", typ: resource.TypeDateTime, rule: onUpdate},
	UpdatedOn: {name: "updated_on", typ: resource.TypeDate, rule: onUpdate},
}

var allKinds = []Kind{CreatedAt, CreatedOn, UpdatedAt, UpdatedOn}

// aliases maps group names to the kinds they declare, in declaration order.
var aliases = map[string][]Kind{
	"at": {CreatedAt, UpdatedAt},
	"on": {CreatedOn, UpdatedOn},
}

func (k Kind) Name() string { return descriptors[k].name }

// Type is the semantic property type: DateTime for *_at, Date for *_on.
func (k Kind) Type() resource.Type { return descriptors[k].typ }

func (k Kind) String() string { return k.Name() }

// Lookup resolves a concrete property name such as "updated_on".
func Lookup(name string) (Kind, bool) {
	return lo.Find(allKinds, func(k Kind) bool { return k.Name() == name })
}

// Set is a bitmask of kinds.
type Set uint8

// Updates holds the kinds refreshed on every stamped save and by Touch.
const Updates = Set(1<<UpdatedAt | 1<<UpdatedOn)

func SetOf(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

func (s Set) Add(k Kind) Set { return s | 1<<k }

func (s Set) Remove(k Kind) Set { return s &^ (1 << k) }

func (s Set) Has(k Kind) bool { return s&(1<<k) != 0 }

func (s Set) Intersect(o Set) Set { return s & o }

func (s Set) Empty() bool { return s == 0 }

// Kinds lists the members in table order.
func (s Set) Kinds() []Kind {
	return lo.Filter(allKinds, func(k Kind, _ int) bool { return s.Has(k) })
}

func (s Set) String() string {
	names := lo.Map(s.Kinds(), func(k Kind, _ int) string { return k.Name() })
	return "{" + strings.Join(names, ",") + "}"
}

// Expand turns declaration names into concrete kinds. Group aliases are
// replaced by their members through the alias table; duplicates are kept
// so that every name is re-registered.
func Expand(names ...string) ([]Kind, error) {
	if len(names) == 0 {
		return nil, ErrInvalidArgument
	}

	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		if group, ok := aliases[name]; ok {
			kinds = append(kinds, group...)
			continue
		}
		k, ok := Lookup(name)
		if !ok {
			return nil, &InvalidTimestampNameError{Name: name}
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
