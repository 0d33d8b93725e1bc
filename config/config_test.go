package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadHuggingFaceConfig_Upstream(t *testing.T) {
	dir := t.TempDir()
	jf := filepath.Join(dir, ".jfrog", "huggingface")
	if err := os.MkdirAll(jf, 0755); err != nil {
		t.Fatal(err)
	}
	yml := filepath.Join(jf, "huggingface.yml")
	if err := os.WriteFile(yml, []byte("download:\n  etagTimeout: 3600\n  repoType: dataset\n"), 0644); err != nil {
		t.Fatal(err)
	}
	old, _ := os.Getwd()
	_ = os.Chdir(dir)
	defer func() { _ = os.Chdir(old) }()

	cfg, err := LoadHuggingFaceConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg == nil || cfg.Download == nil || cfg.Download.RepoType != "dataset" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Download.EtagTimeout == nil || *cfg.Download.EtagTimeout != 3600 {
		t.Fatalf("etagTimeout not loaded: %+v", cfg.Download)
	}
}

func TestLoadHuggingFaceConfig_YamlExtension(t *testing.T) {
	dir := t.TempDir()
	jf := filepath.Join(dir, ".jfrog", "huggingface")
	if err := os.MkdirAll(jf, 0755); err != nil {
		t.Fatal(err)
	}
	yaml := filepath.Join(jf, "huggingface.yaml")
	if err := os.WriteFile(yaml, []byte("download:\n  repoType: model\n"), 0644); err != nil {
		t.Fatal(err)
	}
	old, _ := os.Getwd()
	_ = os.Chdir(dir)
	defer func() { _ = os.Chdir(old) }()

	cfg, err := LoadHuggingFaceConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg == nil || cfg.Download == nil || cfg.Download.RepoType != "model" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadHuggingFaceConfig_EnvOnly(t *testing.T) {
	old, _ := os.Getwd()
	tmp := t.TempDir()
	_ = os.Chdir(tmp)
	defer func() { _ = os.Chdir(old) }()

	_ = os.Setenv("HF_DEFAULT_REPO_TYPE", "dataset")
	defer func() { _ = os.Unsetenv("HF_DEFAULT_REPO_TYPE") }()

	cfg, err := LoadHuggingFaceConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg == nil || cfg.Download == nil || cfg.Download.RepoType != "dataset" {
		t.Fatalf("expected env-only cfg, got: %+v", cfg)
	}
}

func TestLoadHuggingFaceConfig_Missing(t *testing.T) {
	old, _ := os.Getwd()
	tmp := t.TempDir()
	_ = os.Chdir(tmp)
	defer func() { _ = os.Chdir(old) }()

	cfg, err := LoadHuggingFaceConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg != nil {
		t.Fatalf("expected nil cfg when nothing is configured, got: %+v", cfg)
	}
}
