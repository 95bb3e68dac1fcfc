package utils

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"unicode"
)

var sourceDir string

func init() {
	_, file, _, _ := runtime.Caller(0)
	// compatible solution to get the module source directory with various operating systems
	sourceDir = moduleDir(file)
}

func moduleDir(file string) string {
	dir := filepath.Dir(file)
	dir = filepath.Dir(dir)
	return filepath.ToSlash(dir) + "/"
}

// CallerFrame retrieves the first relevant stack frame outside of this module's internal code
func CallerFrame() runtime.Frame {
	pcs := [13]uintptr{}
	// the third caller usually from module internal
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.File, sourceDir) || strings.HasSuffix(frame.File, "_test.go") {
			return frame
		}
		if !more {
			break
		}
	}
	return runtime.Frame{}
}

// FileWithLineNum return the file name and line number of the current file
func FileWithLineNum() string {
	frame := CallerFrame()
	if frame.PC != 0 {
		return string(strconv.AppendInt(append([]byte(frame.File), ':'), int64(frame.Line), 10))
	}
	return ""
}

// CallerName returns the bare name of the function skip frames above the
// function calling CallerName, CallerName(1) is the caller's caller.
// Empty when the stack is not that deep.
func CallerName(skip int) string {
	pcs := [4]uintptr{}
	n := runtime.Callers(skip+2, pcs[:])
	if n == 0 {
		return ""
	}

	frame, _ := runtime.CallersFrames(pcs[:n]).Next()
	return FuncName(frame.Function)
}

// FuncName trims a fully qualified function name to the declared name,
// `example.com/app/models.(*Book).Author-fm` -> `Author`, closures resolve to
// the function declaring them
func FuncName(name string) string {
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSuffix(name, "-fm")

	// type parameters, `pkg.Find[...]`
	for {
		start := strings.IndexByte(name, '[')
		if start < 0 {
			break
		}
		end := strings.IndexByte(name[start:], ']')
		if end < 0 {
			name = name[:start]
			break
		}
		name = name[:start] + name[start+end+1:]
	}

	parts := strings.Split(name, ".")
	for i := len(parts) - 1; i > 0; i-- {
		if !isClosure(parts[i]) {
			return parts[i]
		}
	}
	return ""
}

func isClosure(name string) bool {
	for _, prefix := range []string{"func", "gowrap", "deferwrap"} {
		if strings.HasPrefix(name, prefix) {
			name = strings.TrimPrefix(name, prefix)
			break
		}
	}
	if name == "" {
		return true
	}
	for _, r := range name {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Contains check elem exists in elems
func Contains(elems []string, elem string) bool {
	for _, e := range elems {
		if elem == e {
			return true
		}
	}
	return false
}

// ToString format a stored discriminator value as string
func ToString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case nil:
		return ""
	}
	return fmt.Sprint(value)
}
