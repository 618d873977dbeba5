package config

import "testing"

func validConfig() Config {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Library: LibraryConfig{Dir: "yml"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Library: LibraryConfig{Dir: "yml"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected http timeout defaults: %+v", cfg.HTTP)
	}
	if cfg.Library.Extension != ".yml" {
		t.Errorf("extension = %q, want .yml", cfg.Library.Extension)
	}
	if cfg.Library.Workers != 5 {
		t.Errorf("workers = %d, want 5", cfg.Library.Workers)
	}
	if cfg.Docs.URL != "/docs" {
		t.Errorf("docs url = %q, want /docs", cfg.Docs.URL)
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingLibraryDir(t *testing.T) {
	cfg := validConfig()
	cfg.Library.Dir = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing library.dir")
	}
	if err.Error() != "library.dir is required" {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestValidate_BadExtension(t *testing.T) {
	cfg := validConfig()
	cfg.Library.Extension = "yml"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for extension without dot")
	}
}

func TestValidate_TooManyWorkers(t *testing.T) {
	cfg := validConfig()
	cfg.Library.Workers = 128

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for oversized worker pool")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DOCSHELF_TEST_DIR", "/data/yml")

	in := []byte("dir: ${DOCSHELF_TEST_DIR}\nport: ${DOCSHELF_TEST_PORT:-8080}\n")
	out := string(expandEnvVars(in))

	want := "dir: /data/yml\nport: 8080\n"
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}
