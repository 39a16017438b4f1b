package value

import (
	"fmt"
	"slices"

	"github.com/wippyai/candid/errors"
	"github.com/wippyai/candid/types"
)

// Args is the ordered argument list exchanged in a single call or reply.
type Args struct {
	values []Value
}

// NewArgs returns an argument list holding vs.
func NewArgs(vs ...Value) Args {
	return Args{values: slices.Clone(vs)}
}

// Len returns the number of arguments.
func (a Args) Len() int { return len(a.values) }

// At returns the i-th argument. It panics if i is out of range.
func (a Args) At(i int) Value { return a.values[i] }

// Values returns a copy of the arguments.
func (a Args) Values() []Value { return slices.Clone(a.values) }

// Equal compares argument lists element-wise.
func (a Args) Equal(o Args) bool {
	return slices.EqualFunc(a.values, o.values, Value.Equal)
}

// Types infers the type of every argument.
func (a Args) Types() ([]*types.Type, error) {
	out := make([]*types.Type, len(a.values))
	for i, v := range a.values {
		t, err := v.infer([]string{itoa(i)})
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// Annotate coerces every argument to the matching declared type.
func (a Args) Annotate(ts []*types.Type) (Args, error) {
	if len(ts) != len(a.values) {
		return Args{}, errors.New(errors.PhaseAnnotate, errors.KindTypeMismatch).
			Want(fmt.Sprintf("%d arguments", len(ts))).
			Got(fmt.Sprintf("%d arguments", len(a.values))).
			Build()
	}
	out := make([]Value, len(a.values))
	for i, v := range a.values {
		av, err := annotate(v, ts[i], []string{itoa(i)})
		if err != nil {
			return Args{}, err
		}
		out[i] = av
	}
	return Args{values: out}, nil
}

// String returns the canonical tuple text of the arguments.
func (a Args) String() string {
	return DefaultPrinter.Args(a)
}
