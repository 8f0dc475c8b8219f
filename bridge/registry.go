package bridge

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Kind is the declared type of an op argument.
type Kind int

const (
	// KindInt accepts integers, integral floats and numeric strings.
	KindInt Kind = iota
	// KindFloat accepts any number and numeric strings.
	KindFloat
	// KindBool accepts booleans, the numbers 0 and 1, and boolean strings.
	KindBool
)

// String returns the name used in op signatures.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Arg declares one positional argument of an op.
type Arg struct {
	Name string
	Kind Kind
}

// Args are the converted arguments handed to a handler: int, float64 or bool per the declared kinds.
type Args []any

// Int returns argument i as an int.
func (a Args) Int(i int) int { return a[i].(int) }

// Float returns argument i as a float64.
func (a Args) Float(i int) float64 { return a[i].(float64) }

// Float32 returns argument i as a float32.
func (a Args) Float32(i int) float32 { return float32(a[i].(float64)) }

// Bool returns argument i as a bool.
func (a Args) Bool(i int) bool { return a[i].(bool) }

// Op is a named operation callable across the boundary.
type Op struct {
	Name    string
	Doc     string
	Args    []Arg
	Handler func(args Args) (any, error)
}

// Signature renders the op as Name(arg kind, ...).
func (o Op) Signature() string {
	parts := make([]string, len(o.Args))
	for i, a := range o.Args {
		parts[i] = a.Name + " " + a.Kind.String()
	}
	return o.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Registry maps op names to handlers.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Op
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Op)}
}

// Register adds op under op.Name.
//
// Parameters:
//   - op: the op; Name and Handler are required
//
// Returns:
//   - error: ErrDuplicateOp if the name is taken
func (r *Registry) Register(op Op) error {
	if op.Name == "" || op.Handler == nil {
		return fmt.Errorf("bridge: op needs a name and a handler")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ops[op.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateOp, op.Name)
	}
	r.ops[op.Name] = op
	return nil
}

// Lookup returns the op registered under name.
func (r *Registry) Lookup(name string) (Op, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	return op, ok
}

// Ops returns every registered op sorted by name.
func (r *Registry) Ops() []Op {
	r.mu.RLock()
	ops := make([]Op, 0, len(r.ops))
	for _, op := range r.ops {
		ops = append(ops, op)
	}
	r.mu.RUnlock()

	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

// Call converts args to the declared kinds and invokes the named op.
//
// Parameters:
//   - name: the op name
//   - args: positional arguments
//
// Returns:
//   - any: the handler result
//   - error: ErrUnknownOp, ErrArgCount, ErrArgType, or the handler error
func (r *Registry) Call(name string, args ...any) (any, error) {
	op, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOp, name)
	}
	if len(args) != len(op.Args) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArgCount, op.Signature(), len(op.Args), len(args))
	}
	converted := make(Args, len(args))
	for i, decl := range op.Args {
		v, err := convert(args[i], decl.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: %s argument %q: %v", ErrArgType, name, decl.Name, err)
		}
		converted[i] = v
	}
	logger.Debugf("call %s%v", name, converted)
	return op.Handler(converted)
}

func convert(v any, kind Kind) (any, error) {
	if s, ok := v.(string); ok {
		return convertString(strings.TrimSpace(s), kind)
	}
	if b, ok := v.(bool); ok {
		if kind == KindBool {
			return b, nil
		}
		return nil, fmt.Errorf("bool is not a %s", kind)
	}

	f, isInt, ok := number(v)
	if !ok {
		return nil, fmt.Errorf("%T is not a %s", v, kind)
	}
	switch kind {
	case KindFloat:
		return f, nil
	case KindInt:
		if !isInt && (f != math.Trunc(f) || math.IsInf(f, 0)) {
			return nil, fmt.Errorf("%v is not an integer", v)
		}
		if f > math.MaxInt || f < math.MinInt {
			return nil, fmt.Errorf("%v overflows int", v)
		}
		return int(f), nil
	case KindBool:
		switch f {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return nil, fmt.Errorf("%v is not 0 or 1", v)
	}
	return nil, fmt.Errorf("unknown kind %s", kind)
}

func convertString(s string, kind Kind) (any, error) {
	switch kind {
	case KindInt:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return nil, fmt.Errorf("unknown kind %s", kind)
}

// number widens any Go numeric value to float64, reporting whether it was an integer type.
func number(v any) (float64, bool, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true, true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), false, true
	}
	return 0, false, false
}
