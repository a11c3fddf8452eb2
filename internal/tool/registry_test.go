package tool

import (
	"context"
	"encoding/json"
	"testing"
)

func echoTool(name string) Tool {
	return Tool{
		Def: Def(name, "echoes its input", objectSchema(map[string]any{
			"text": stringProp("Text to echo"),
		}, "text")),
		Invoke: func(_ context.Context, raw json.RawMessage) (string, error) {
			var a struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(raw, &a); err != nil {
				return "", err
			}
			return a.Text, nil
		},
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(echoTool("echo"))

	if r.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", r.Count())
	}
	tool := r.Get("echo")
	if tool == nil {
		t.Fatal("Get(echo) returned nil")
	}
	out, err := tool.Invoke(context.Background(), json.RawMessage(`{"text":"hi"}`))
	if err != nil {
		t.Fatalf("Invoke() error: %v", err)
	}
	if out != "hi" {
		t.Errorf("Invoke() = %q, want %q", out, "hi")
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()
	if got := r.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}
}

func TestRegistryDefinitionsSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(echoTool("zeta"))
	r.Register(echoTool("alpha"))
	r.Register(echoTool("mid"))

	defs := r.Definitions()
	want := []string{"alpha", "mid", "zeta"}
	if len(defs) != len(want) {
		t.Fatalf("Definitions() returned %d defs, want %d", len(defs), len(want))
	}
	for i, d := range defs {
		if d.Name != want[i] {
			t.Errorf("Definitions()[%d].Name = %q, want %q", i, d.Name, want[i])
		}
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	r.Register(echoTool("b"))
	r.Register(echoTool("a"))

	names := r.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", names)
	}
}
