package transform

import (
	"errors"
	"fmt"

	"launchfeed/internal/jsonv"
)

// RecordsKey is the envelope member holding the launch records.
const RecordsKey = "result"

var ErrNoRecords = errors.New("transform: envelope has no " + RecordsKey + " member")

// Stage mutates a decoded envelope in place.
type Stage interface {
	Name() string
	Apply(env *jsonv.Object) error
}

// Records returns the envelope's records. The envelope must carry a
// RecordsKey array whose elements are all objects.
func Records(env *jsonv.Object) ([]*jsonv.Object, error) {
	raw, ok := env.Get(RecordsKey)
	if !ok {
		return nil, ErrNoRecords
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("transform: %s is %s, want array", RecordsKey, jsonv.TypeName(raw))
	}
	out := make([]*jsonv.Object, 0, len(arr))
	for i, v := range arr {
		rec, ok := v.(*jsonv.Object)
		if !ok || rec == nil {
			return nil, fmt.Errorf("transform: %s[%d] is %s, want object", RecordsKey, i, jsonv.TypeName(v))
		}
		out = append(out, rec)
	}
	return out, nil
}

// Chain applies stages in order and stops at the first failure.
func Chain(env *jsonv.Object, stages ...Stage) error {
	for _, s := range stages {
		if err := s.Apply(env); err != nil {
			return fmt.Errorf("transform %s: %w", s.Name(), err)
		}
	}
	return nil
}

// perRecord adapts a record-level mutation to a Stage.
type perRecord struct {
	name string
	fn   func(rec *jsonv.Object)
}

func (p *perRecord) Name() string { return p.name }

func (p *perRecord) Apply(env *jsonv.Object) error {
	recs, err := Records(env)
	if err != nil {
		return err
	}
	for _, r := range recs {
		p.fn(r)
	}
	return nil
}
