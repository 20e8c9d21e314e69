package jsonv

// Object is a JSON object that remembers key order.
//
// Keys keep the position of their first insertion. Set on an existing key
// replaces the value in place; Delete drops the key and its slot.
type Object struct {
	keys   []string
	values map[string]any
}

func NewObject() *Object {
	return &Object{values: map[string]any{}}
}

func (o *Object) Len() int { return len(o.keys) }

// Keys returns a copy of the keys in order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

func (o *Object) Set(key string, v any) {
	if o.values == nil {
		o.values = map[string]any{}
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if _, ok := o.values[key]; !ok {
		return false
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Rename moves the value under from to to. When to is new it takes the slot
// of from; when to already exists its value is overwritten where it stands
// and from is dropped. Reports whether from was present.
func (o *Object) Rename(from, to string) bool {
	v, ok := o.values[from]
	if !ok {
		return false
	}
	if from == to {
		return true
	}
	if _, exists := o.values[to]; exists {
		o.values[to] = v
		o.Delete(from)
		return true
	}
	delete(o.values, from)
	o.values[to] = v
	for i, k := range o.keys {
		if k == from {
			o.keys[i] = to
			break
		}
	}
	return true
}

// Range calls fn for every member in order until fn returns false.
func (o *Object) Range(fn func(key string, v any) bool) {
	for _, k := range o.keys {
		if !fn(k, o.values[k]) {
			return
		}
	}
}
