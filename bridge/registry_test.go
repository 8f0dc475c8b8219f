package bridge

import (
	"errors"
	"testing"
)

func testRegistry(t *testing.T) (*Registry, *[]any) {
	t.Helper()
	var got []any
	r := NewRegistry()
	err := r.Register(Op{
		Name: "Paint",
		Doc:  "paint a color",
		Args: []Arg{{Name: "x", Kind: KindInt}, {Name: "alpha", Kind: KindFloat}, {Name: "visible", Kind: KindBool}},
		Handler: func(args Args) (any, error) {
			got = []any{args.Int(0), args.Float(1), args.Bool(2)}
			return "ok", nil
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return r, &got
}

func TestRegistryCall(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		args    []any
		want    []any
		wantErr error
	}{
		{name: "native types", op: "Paint", args: []any{3, 0.5, true}, want: []any{3, 0.5, true}},
		{name: "host numbers", op: "Paint", args: []any{float64(3), int32(1), 1}, want: []any{3, 1.0, true}},
		{name: "unsigned and float32", op: "Paint", args: []any{uint8(9), float32(0.25), uint(0)}, want: []any{9, 0.25, false}},
		{name: "strings", op: "Paint", args: []any{"4", " 0.75", "false"}, want: []any{4, 0.75, false}},
		{name: "unknown op", op: "Nope", wantErr: ErrUnknownOp},
		{name: "too few", op: "Paint", args: []any{1, 2.0}, wantErr: ErrArgCount},
		{name: "fractional int", op: "Paint", args: []any{1.5, 0.0, true}, wantErr: ErrArgType},
		{name: "bool out of range", op: "Paint", args: []any{1, 0.0, 2}, wantErr: ErrArgType},
		{name: "bool as number", op: "Paint", args: []any{true, 0.0, true}, wantErr: ErrArgType},
		{name: "bad string", op: "Paint", args: []any{"x", 0.0, true}, wantErr: ErrArgType},
		{name: "unsupported type", op: "Paint", args: []any{[]int{1}, 0.0, true}, wantErr: ErrArgType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, got := testRegistry(t)
			res, err := r.Call(tt.op, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Call() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if *got != nil {
					t.Error("handler ran for a rejected call")
				}
				return
			}
			if res != "ok" {
				t.Errorf("Call() = %v, want ok", res)
			}
			for i := range tt.want {
				if (*got)[i] != tt.want[i] {
					t.Errorf("arg %d = %#v, want %#v", i, (*got)[i], tt.want[i])
				}
			}
		})
	}
}

func TestRegistryRegister(t *testing.T) {
	r, _ := testRegistry(t)
	noop := func(Args) (any, error) { return nil, nil }

	if err := r.Register(Op{Name: "Paint", Handler: noop}); !errors.Is(err, ErrDuplicateOp) {
		t.Errorf("duplicate Register() = %v, want ErrDuplicateOp", err)
	}
	if err := r.Register(Op{Name: "NoHandler"}); err == nil {
		t.Error("Register without handler should fail")
	}
	if err := r.Register(Op{Name: "Apply", Handler: noop}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	ops := r.Ops()
	if len(ops) != 2 || ops[0].Name != "Apply" || ops[1].Name != "Paint" {
		t.Fatalf("Ops() not sorted by name: %v", ops)
	}
	if sig := ops[1].Signature(); sig != "Paint(x int, alpha float, visible bool)" {
		t.Errorf("Signature() = %q", sig)
	}
}
