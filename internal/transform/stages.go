package transform

import (
	"fmt"

	"launchfeed/internal/jsonv"
	"launchfeed/internal/spec"
)

type Scope string

const (
	ScopeEnvelope Scope = "envelope"
	ScopeRecord   Scope = "record"
)

// prune drops keys from the envelope or from every record. Missing keys are
// ignored.
type prune struct {
	name  string
	scope Scope
	keys  []string
}

func NewPrune(name string, scope Scope, keys ...string) Stage {
	return &prune{name: name, scope: scope, keys: keys}
}

func (p *prune) Name() string { return p.name }

func (p *prune) Apply(env *jsonv.Object) error {
	if p.scope == ScopeEnvelope {
		dropKeys(env, p.keys)
		return nil
	}
	return (&perRecord{name: p.name, fn: func(rec *jsonv.Object) { dropKeys(rec, p.keys) }}).Apply(env)
}

func dropKeys(o *jsonv.Object, keys []string) {
	for _, k := range keys {
		o.Delete(k)
	}
}

// NewRename moves from to to on every record that has from.
func NewRename(name, from, to string) Stage {
	return &perRecord{name: name, fn: func(rec *jsonv.Object) { rec.Rename(from, to) }}
}

// NewFlatten replaces an object-valued field with that object's key member,
// or "" when the member is absent. Non-object values are left alone.
func NewFlatten(name, field, key string) Stage {
	return &perRecord{name: name, fn: func(rec *jsonv.Object) {
		v, ok := rec.Get(field)
		if !ok {
			return
		}
		nested, ok := v.(*jsonv.Object)
		if !ok || nested == nil {
			return
		}
		inner, ok := nested.Get(key)
		if !ok {
			inner = ""
		}
		rec.Set(field, inner)
	}}
}

// NewStrip removes keys from every record and from every object nested
// beneath it.
func NewStrip(name string, keys ...string) Stage {
	return &perRecord{name: name, fn: func(rec *jsonv.Object) { StripKeys(rec, keys...) }}
}

// StripKeys deletes keys from o and recurses into object members and into
// object elements of array members. Arrays nested directly in arrays and
// other non-object elements are not visited.
func StripKeys(o *jsonv.Object, keys ...string) {
	dropKeys(o, keys)
	o.Range(func(_ string, v any) bool {
		switch t := v.(type) {
		case *jsonv.Object:
			if t != nil {
				StripKeys(t, keys...)
			}
		case []any:
			for _, e := range t {
				if nested, ok := e.(*jsonv.Object); ok && nested != nil {
					StripKeys(nested, keys...)
				}
			}
		}
		return true
	})
}

// Build turns a stage description from the pipeline file into a Stage.
func Build(s spec.TransformerSpec) (Stage, error) {
	name := s.Name
	if name == "" {
		name = s.Type
	}
	switch s.Type {
	case "prune":
		scope := Scope(s.Scope)
		if scope == "" {
			scope = ScopeRecord
		}
		if scope != ScopeEnvelope && scope != ScopeRecord {
			return nil, fmt.Errorf("transform %s: unknown prune scope %q", name, s.Scope)
		}
		if len(s.Keys) == 0 {
			return nil, fmt.Errorf("transform %s: prune needs keys", name)
		}
		return NewPrune(name, scope, s.Keys...), nil
	case "rename":
		if s.From == "" || s.To == "" {
			return nil, fmt.Errorf("transform %s: rename needs from and to", name)
		}
		return NewRename(name, s.From, s.To), nil
	case "flatten":
		if s.Field == "" {
			return nil, fmt.Errorf("transform %s: flatten needs field", name)
		}
		key := s.Key
		if key == "" {
			key = "name"
		}
		return NewFlatten(name, s.Field, key), nil
	case "strip":
		if len(s.Keys) == 0 {
			return nil, fmt.Errorf("transform %s: strip needs keys", name)
		}
		return NewStrip(name, s.Keys...), nil
	default:
		return nil, fmt.Errorf("unsupported transformer type %q for %s", s.Type, name)
	}
}
