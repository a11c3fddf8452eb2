package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Lua returns a tool that runs a Lua script with file and search helpers
// bridged in, letting the model batch several lookups into one call.
func Lua() Tool {
	type args struct {
		Script string `json:"script"`
	}
	return Tool{
		Def: Def(
			"lua",
			"Run a Lua script. Available functions: read(path), ls(path), "+
				"glob(dir, pattern), grep(path, pattern), fetch(url), print(...). "+
				"Printed output is returned as the result.",
			objectSchema(map[string]any{
				"script": stringProp("Lua script to execute"),
			}, "script"),
		),
		Invoke: func(ctx context.Context, raw json.RawMessage) (string, error) {
			var a args
			if err := json.Unmarshal(raw, &a); err != nil {
				return "", fmt.Errorf("invalid arguments: %w", err)
			}
			out, err := runLua(ctx, a.Script)
			if err != nil {
				return fmt.Sprintf("Lua error: %v", err), nil
			}
			if out == "" {
				return "Script completed with no output. Use print() to return results.", nil
			}
			return Paginate(out, 0, DefaultNumChars), nil
		},
	}
}

func runLua(ctx context.Context, script string) (string, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: false})
	defer L.Close()
	L.SetContext(ctx)

	var out strings.Builder

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		for i := 1; i <= top; i++ {
			if i > 1 {
				out.WriteString("\t")
			}
			out.WriteString(L.ToStringMeta(L.Get(i)).String())
		}
		out.WriteString("\n")
		return 0
	}))

	L.SetGlobal("read", L.NewFunction(func(L *lua.LState) int {
		content, err := os.ReadFile(L.CheckString(1))
		if err != nil {
			return luaError(L, err)
		}
		L.Push(lua.LString(content))
		return 1
	}))

	L.SetGlobal("ls", L.NewFunction(func(L *lua.LState) int {
		var items []string
		if err := listDir(L.CheckString(1), 0, 0, "", &items); err != nil {
			return luaError(L, err)
		}
		L.Push(lua.LString(strings.Join(items, "\n")))
		return 1
	}))

	L.SetGlobal("glob", L.NewFunction(func(L *lua.LState) int {
		matches, err := GlobFiles(L.CheckString(1), L.CheckString(2))
		if err != nil {
			return luaError(L, err)
		}
		tbl := L.NewTable()
		for _, m := range matches {
			tbl.Append(lua.LString(m))
		}
		L.Push(tbl)
		return 1
	}))

	L.SetGlobal("grep", L.NewFunction(func(L *lua.LState) int {
		re, err := regexp.Compile(L.CheckString(2))
		if err != nil {
			return luaError(L, err)
		}
		matches, err := GrepFiles(L.CheckString(1), re, "")
		if err != nil {
			return luaError(L, err)
		}
		tbl := L.NewTable()
		for _, m := range matches {
			tbl.Append(lua.LString(m))
		}
		L.Push(tbl)
		return 1
	}))

	L.SetGlobal("fetch", L.NewFunction(func(L *lua.LState) int {
		content, err := FetchURL(ctx, &http.Client{Timeout: fetchTimeout}, L.CheckString(1))
		if err != nil {
			return luaError(L, err)
		}
		L.Push(lua.LString(content))
		return 1
	}))

	if err := L.DoString(script); err != nil {
		return out.String(), err
	}
	return out.String(), nil
}

func luaError(L *lua.LState, err error) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	return 2
}
