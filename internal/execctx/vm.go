package execctx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dop251/goja"
)

// setupVM installs the builtins and seeds the persistent namespace into a
// fresh VM for one run.
func (c *Context) setupVM(vm *goja.Runtime, printed *strings.Builder) error {
	printFunc := func(call goja.FunctionCall) goja.Value {
		args := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			args[i] = arg.String()
		}
		printed.WriteString(strings.Join(args, " "))
		printed.WriteString("\n")
		return goja.Undefined()
	}
	if err := vm.Set("print", printFunc); err != nil {
		return fmt.Errorf("failed to set print: %w", err)
	}

	console := vm.NewObject()
	if err := console.Set("log", printFunc); err != nil {
		return fmt.Errorf("failed to set console.log: %w", err)
	}
	if err := vm.Set("console", console); err != nil {
		return fmt.Errorf("failed to set console: %w", err)
	}

	if err := setupRegexModule(vm); err != nil {
		return fmt.Errorf("failed to setup regex module: %w", err)
	}
	if err := setupFSModule(vm, c.fs); err != nil {
		return fmt.Errorf("failed to setup fs module: %w", err)
	}

	for name, value := range c.namespace {
		if err := vm.Set(name, value); err != nil {
			return fmt.Errorf("failed to set variable %s: %w", name, err)
		}
	}

	return nil
}

// setupRegexModule adds the 're' object with regex helper functions.
func setupRegexModule(vm *goja.Runtime) error {
	re := vm.NewObject()

	// re.findAll(pattern, text) -> array of matches
	findAll := func(call goja.FunctionCall) goja.Value {
		pattern, text := twoStringArgs(vm, call, "findAll")
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(compiled.FindAllString(text, -1))
	}
	if err := re.Set("findAll", findAll); err != nil {
		return err
	}

	// re.search(pattern, text) -> first match or empty string
	search := func(call goja.FunctionCall) goja.Value {
		pattern, text := twoStringArgs(vm, call, "search")
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(compiled.FindString(text))
	}
	if err := re.Set("search", search); err != nil {
		return err
	}

	// re.split(pattern, text, n) -> array of strings
	split := func(call goja.FunctionCall) goja.Value {
		pattern, text := twoStringArgs(vm, call, "split")
		n := -1
		if len(call.Arguments) >= 3 {
			n = int(call.Arguments[2].ToInteger())
		}
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(compiled.Split(text, n))
	}
	if err := re.Set("split", split); err != nil {
		return err
	}

	// re.replace(pattern, text, replacement) -> replaced string
	replace := func(call goja.FunctionCall) goja.Value {
		pattern, text := twoStringArgs(vm, call, "replace")
		if len(call.Arguments) < 3 {
			panic(vm.NewTypeError("replace requires 3 arguments: pattern, text, replacement"))
		}
		replacement := call.Arguments[2].String()
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(compiled.ReplaceAllString(text, replacement))
	}
	if err := re.Set("replace", replace); err != nil {
		return err
	}

	return vm.Set("re", re)
}

func twoStringArgs(vm *goja.Runtime, call goja.FunctionCall, fn string) (string, string) {
	if len(call.Arguments) < 2 {
		panic(vm.NewTypeError("%s requires 2 arguments: pattern, text", fn))
	}
	return call.Arguments[0].String(), call.Arguments[1].String()
}
