package tool

import (
	"fmt"
	"strings"
	"testing"
)

func TestLuaToolPrint(t *testing.T) {
	out := invoke(t, Lua(), `{"script":"print(1 + 2)"}`)
	if !strings.HasPrefix(out, "3") {
		t.Errorf("lua print = %q, want 3", out)
	}
}

func TestLuaToolReadBridge(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.txt", "bridged content")

	script := fmt.Sprintf("print(read(%q))", path)
	out := invoke(t, Lua(), fmt.Sprintf(`{"script":%q}`, script))
	if !strings.Contains(out, "bridged content") {
		t.Errorf("lua read = %q", out)
	}
}

func TestLuaToolGlobBridge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.go", "package x")

	script := fmt.Sprintf(`for _, f in ipairs(glob(%q, "*.go")) do print(f) end`, dir)
	out := invoke(t, Lua(), fmt.Sprintf(`{"script":%q}`, script))
	if !strings.Contains(out, "x.go") {
		t.Errorf("lua glob = %q", out)
	}
}

func TestLuaToolSyntaxError(t *testing.T) {
	out := invoke(t, Lua(), `{"script":"this is not lua"}`)
	if !strings.Contains(out, "Lua error") {
		t.Errorf("lua with bad script = %q, want error message", out)
	}
}

func TestLuaToolNoOutput(t *testing.T) {
	out := invoke(t, Lua(), `{"script":"local x = 1"}`)
	if !strings.Contains(out, "no output") {
		t.Errorf("lua without print = %q, want hint", out)
	}
}
