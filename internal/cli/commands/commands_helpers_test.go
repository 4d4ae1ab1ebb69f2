package commands

import (
	"bytes"
	"runtime"
	"testing"
)

// withTempConfig переопределяет пользовательский каталог на время теста,
// чтобы токен и логин создавались в temp.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
		t.Setenv("HOME", dir)
	}
	return dir
}

// withStdoutCapture перехватывает вывод CLI на время fn.
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}
