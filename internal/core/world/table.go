package world

// Table is the set of component types one world class stores. A derived
// world's switch statements only list its own table and fall back to the base
// class for everything else.
type Table struct {
	Owner string
	types map[string]struct{}
	order []string
}

func NewTable(owner string, types ...string) Table {
	t := Table{Owner: owner, types: make(map[string]struct{}, len(types))}
	for _, typ := range types {
		if _, ok := t.types[typ]; ok {
			continue
		}
		t.types[typ] = struct{}{}
		t.order = append(t.order, typ)
	}
	return t
}

func (t Table) Has(typ string) bool {
	_, ok := t.types[typ]
	return ok
}

// Types returns the component types in declaration order.
func (t Table) Types() []string { return t.order }
