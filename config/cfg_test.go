package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfiguration_Defaults(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() failed: %v", err)
	}

	if cfg.Format.Parser != "native" {
		t.Errorf("default parser = %q, want %q", cfg.Format.Parser, "native")
	}
	if len(cfg.Format.ParserCommand) != 0 {
		t.Errorf("default parser command = %v, want empty", cfg.Format.ParserCommand)
	}
	if cfg.Format.IgnoreCharset || cfg.Format.IgnoreComments || cfg.Format.IgnoreEmptyRules {
		t.Error("ignore switches should default to false")
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("default console log level = %q, want %q", cfg.Logging.ConsoleLogger.Level, "normal")
	}
	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("default file log level = %q, want %q", cfg.Logging.FileLogger.Level, "none")
	}
	if cfg.Reporting.Destination == "" {
		t.Error("default reporting destination should not be empty")
	}
}

func TestLoadConfiguration_FileOverlay(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "config.yaml")
	data := `format:
  parser: exec
  parser_command: ["node", "css-to-json.js"]
  ignore_comments: true
`
	if err := os.WriteFile(fname, []byte(data), 0644); err != nil {
		t.Fatalf("unable to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(fname)
	if err != nil {
		t.Fatalf("LoadConfiguration() failed: %v", err)
	}

	if cfg.Format.Parser != "exec" {
		t.Errorf("parser = %q, want %q", cfg.Format.Parser, "exec")
	}
	if len(cfg.Format.ParserCommand) != 2 || cfg.Format.ParserCommand[0] != "node" {
		t.Errorf("parser command = %v, want [node css-to-json.js]", cfg.Format.ParserCommand)
	}
	if !cfg.Format.IgnoreComments {
		t.Error("ignore_comments should be true")
	}
	// untouched values keep template defaults
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("console log level = %q, want %q", cfg.Logging.ConsoleLogger.Level, "normal")
	}
}

func TestLoadConfiguration_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown field", data: "format:\n  no_such_option: true\n"},
		{name: "bad parser", data: "format:\n  parser: quantum\n"},
		{name: "exec without command", data: "format:\n  parser: exec\n"},
		{name: "bad console level", data: "logging:\n  console:\n    level: chatty\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fname := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(fname, []byte(tt.data), 0644); err != nil {
				t.Fatalf("unable to write config file: %v", err)
			}
			if _, err := LoadConfiguration(fname); err == nil {
				t.Error("expected configuration to be rejected")
			}
		})
	}
}

func TestPrepareAndDump(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() failed: %v", err)
	}
	if !strings.Contains(string(data), "parser: native") {
		t.Error("default configuration does not mention the native parser")
	}

	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() failed: %v", err)
	}
	dump, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() failed: %v", err)
	}
	if !strings.Contains(string(dump), "format:") {
		t.Errorf("dumped configuration is missing format section:\n%s", dump)
	}
}
