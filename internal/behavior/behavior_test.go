package behavior

import (
	"fmt"
	"testing"

	"github.com/veldt-lang/veldt/internal/graph"
	"github.com/veldt-lang/veldt/internal/value"
)

// hostFunc adapts a Go function into a host-language function reference.
type hostFunc struct {
	fn func(args []value.Value) (value.Value, error)
}

func (h *hostFunc) Call(args []value.Value) (value.Value, error) { return h.fn(args) }

func TestTransforms(t *testing.T) {
	double := &hostFunc{fn: func(args []value.Value) (value.Value, error) {
		n, _ := args[0].AsNumber()
		return value.Number(n * 2), nil
	}}
	isNegative := &hostFunc{fn: func(args []value.Value) (value.Value, error) {
		n, ok := args[0].AsNumber()
		return value.Bool(ok && n < 0), nil
	}}

	tests := []struct {
		name string
		spec Spec
		in   value.Value
		want value.Value
	}{
		{name: "none to zero", spec: Spec{Kind: MapNoneToZero}, in: value.None(), want: value.Number(0)},
		{name: "none passthrough", spec: Spec{Kind: MapNoneToZero}, in: value.Number(3), want: value.Number(3)},
		{name: "clamp low", spec: Spec{Kind: Clamp, Min: 0, Max: 10}, in: value.Number(-4), want: value.Number(0)},
		{name: "clamp high", spec: Spec{Kind: Clamp, Min: 0, Max: 10}, in: value.Number(99), want: value.Number(10)},
		{name: "clamp in range", spec: Spec{Kind: Clamp, Min: 0, Max: 10}, in: value.Number(5), want: value.Number(5)},
		{name: "clamp ignores strings", spec: Spec{Kind: Clamp, Min: 0, Max: 10}, in: value.String("x"), want: value.String("x")},
		{name: "uppercase", spec: Spec{Kind: Uppercase}, in: value.String("abc"), want: value.String("ABC")},
		{name: "uppercase ignores numbers", spec: Spec{Kind: Uppercase}, in: value.Number(1), want: value.Number(1)},
		{name: "custom", spec: Spec{Kind: Custom, Fn: double}, in: value.Number(4), want: value.Number(8)},
		{
			name: "conditional applies on truthy predicate",
			spec: Spec{Kind: Conditional, Pred: isNegative, Inner: &Spec{Kind: Clamp, Min: 0, Max: 10}},
			in:   value.Number(-4),
			want: value.Number(0),
		},
		{
			name: "conditional skips on falsy predicate",
			spec: Spec{Kind: Conditional, Pred: isNegative, Inner: &Spec{Kind: Clamp, Min: 0, Max: 10}},
			in:   value.Number(99),
			want: value.Number(99),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.Instantiate().Apply(tt.in)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Apply() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCustomErrorPropagates(t *testing.T) {
	failing := &hostFunc{fn: func(args []value.Value) (value.Value, error) {
		return value.None(), fmt.Errorf("boom")
	}}
	_, err := Spec{Kind: Custom, Fn: failing}.Instantiate().Apply(value.Number(1))
	if err == nil {
		t.Fatalf("Apply() should propagate the host error")
	}
}

func TestProactiveApplicationOrder(t *testing.T) {
	// Behaviors compose in attachment order: none->0, then clamp.
	g := graph.New(true)
	if err := g.AttachBehavior(Spec{Kind: MapNoneToZero}.Instantiate(), graph.RetroIgnore); err != nil {
		t.Fatalf("AttachBehavior() error = %v", err)
	}
	if err := g.AttachBehavior(Spec{Kind: Clamp, Min: 1, Max: 10}.Instantiate(), graph.RetroIgnore); err != nil {
		t.Fatalf("AttachBehavior() error = %v", err)
	}

	if err := g.AddNode("a", value.None()); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	n, _ := g.Node("a")
	if !n.Value.Equal(value.Number(1)) {
		t.Errorf("stored value = %s, want 1 (none -> 0 -> clamped to 1)", n.Value)
	}
}

func TestRetroactivePolicies(t *testing.T) {
	seed := func(t *testing.T) *graph.Graph {
		t.Helper()
		g := graph.New(true)
		if err := g.AddNode("neg", value.Number(-5)); err != nil {
			t.Fatalf("AddNode() error = %v", err)
		}
		if err := g.AddNode("ok", value.Number(5)); err != nil {
			t.Fatalf("AddNode() error = %v", err)
		}
		return g
	}
	clampSpec := Spec{Kind: Clamp, Min: 0, Max: 10}

	t.Run("clean transforms existing violators", func(t *testing.T) {
		g := seed(t)
		if err := g.AttachBehavior(clampSpec.Instantiate(), graph.RetroClean); err != nil {
			t.Fatalf("AttachBehavior() error = %v", err)
		}
		n, _ := g.Node("neg")
		if !n.Value.Equal(value.Number(0)) {
			t.Errorf("neg value = %s after clean, want 0", n.Value)
		}
		ok, _ := g.Node("ok")
		if !ok.Value.Equal(value.Number(5)) {
			t.Errorf("conforming value changed by clean")
		}
	})

	t.Run("warn leaves data untouched", func(t *testing.T) {
		g := seed(t)
		if err := g.AttachBehavior(clampSpec.Instantiate(), graph.RetroWarn); err != nil {
			t.Fatalf("AttachBehavior() error = %v", err)
		}
		n, _ := g.Node("neg")
		if !n.Value.Equal(value.Number(-5)) {
			t.Errorf("warn policy modified data")
		}
		if len(g.Behaviors()) != 1 {
			t.Errorf("behavior not attached under warn")
		}
	})

	t.Run("enforce errors on violations", func(t *testing.T) {
		g := seed(t)
		if err := g.AttachBehavior(clampSpec.Instantiate(), graph.RetroEnforce); err == nil {
			t.Fatalf("AttachBehavior() should error under enforce with violations")
		}
		if len(g.Behaviors()) != 0 {
			t.Errorf("behavior attached despite enforce failure")
		}
	})

	t.Run("ignore attaches unconditionally", func(t *testing.T) {
		g := seed(t)
		if err := g.AttachBehavior(clampSpec.Instantiate(), graph.RetroIgnore); err != nil {
			t.Fatalf("AttachBehavior() error = %v", err)
		}
		n, _ := g.Node("neg")
		if !n.Value.Equal(value.Number(-5)) {
			t.Errorf("ignore policy modified data")
		}
	})
}

func TestRemoveBehavior(t *testing.T) {
	g := graph.New(true)
	g.AttachBehavior(Spec{Kind: Uppercase}.Instantiate(), graph.RetroIgnore)

	if !g.RemoveBehavior("uppercase") {
		t.Fatalf("RemoveBehavior() = false, want true")
	}
	if err := g.AddNode("a", value.String("abc")); err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	n, _ := g.Node("a")
	if !n.Value.Equal(value.String("abc")) {
		t.Errorf("detached behavior still transforming values")
	}
}
