package rhaiconfig

import "testing"

func TestDecode(t *testing.T) {
	data := []byte("source:\n  include:\n    - \"src/**/*.rhai\"\n  file_rule: \"\\\\.rhai$\"\n")
	cfg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(cfg.Include) != 1 || cfg.Include[0] != "src/**/*.rhai" {
		t.Errorf("Include = %v, want [\"src/**/*.rhai\"]", cfg.Include)
	}
	if cfg.FileRule != `\.rhai$` {
		t.Errorf("FileRule = %q, want %q", cfg.FileRule, `\.rhai$`)
	}
}

func TestDecodeRequiresInclude(t *testing.T) {
	_, err := Decode([]byte("source:\n  file_rule: \"x\"\n"))
	if err == nil {
		t.Fatal("expected an error when source.include is empty")
	}
}

func TestDecodeInvalidYAML(t *testing.T) {
	_, err := Decode([]byte("not: [valid: yaml"))
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
