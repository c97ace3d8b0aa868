package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_从子目录向上查找(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "cmd", "village"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "configs", "conf.yml")
	if err := os.WriteFile(want, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(filepath.Join(root, "cmd", "village"))

	got, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve err=%v", err)
	}
	// macOS 的 TempDir 可能带 /private 前缀
	if filepath.Base(filepath.Dir(got)) != "configs" || filepath.Base(got) != "conf.yml" {
		t.Fatalf("got=%s want=%s", got, want)
	}
}

func TestResolve_找不到返回ErrNotFound(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing.yml"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestDecode_json(t *testing.T) {
	var out struct {
		Name  string `mapstructure:"name"`
		Level int    `mapstructure:"level"`
	}
	if err := Decode([]byte(`{"name":"farm","level":2}`), "json", &out); err != nil {
		t.Fatalf("Decode err=%v", err)
	}
	if out.Name != "farm" || out.Level != 2 {
		t.Fatalf("out=%+v", out)
	}
}
