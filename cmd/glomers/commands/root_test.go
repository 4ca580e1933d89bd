package commands

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mosaicnetworks/glomers/src/config"
	"github.com/mosaicnetworks/glomers/src/version"
)

func resetConfig() {
	_config = NewDefaultCLIConfig()
}

func TestLoadConfigFromFlags(t *testing.T) {
	resetConfig()
	defer resetConfig()

	dir, err := ioutil.TempDir("", "glomers-cli")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	cmd := NewRootCmd()
	if err := cmd.ParseFlags([]string{
		"--datadir", dir,
		"--log", "error",
		"--service-listen", "127.0.0.1:9000",
	}); err != nil {
		t.Fatal(err)
	}

	if err := loadConfig(cmd, nil); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if _config.Glomers.DataDir != dir {
		t.Fatalf("DataDir should be %s, not %s", dir, _config.Glomers.DataDir)
	}
	if _config.Glomers.LogLevel != "error" {
		t.Fatalf("LogLevel should be error, not %s", _config.Glomers.LogLevel)
	}
	if _config.Glomers.ServiceAddr != "127.0.0.1:9000" {
		t.Fatalf("ServiceAddr should be 127.0.0.1:9000, not %s", _config.Glomers.ServiceAddr)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	resetConfig()
	defer resetConfig()

	dir, err := ioutil.TempDir("", "glomers-cli")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	toml := "log = \"warn\"\nservice-listen = \"127.0.0.1:9001\"\n"
	if err := ioutil.WriteFile(filepath.Join(dir, "glomers.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewRootCmd()
	if err := cmd.ParseFlags([]string{"--datadir", dir}); err != nil {
		t.Fatal(err)
	}

	if err := loadConfig(cmd, nil); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if _config.Glomers.LogLevel != "warn" {
		t.Fatalf("LogLevel should be warn, not %s", _config.Glomers.LogLevel)
	}
	if _config.Glomers.ServiceAddr != "127.0.0.1:9001" {
		t.Fatalf("ServiceAddr should be 127.0.0.1:9001, not %s", _config.Glomers.ServiceAddr)
	}
}

func TestLoadConfigFileName(t *testing.T) {
	resetConfig()
	defer resetConfig()

	dir, err := ioutil.TempDir("", "glomers-cli")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	yaml := "log: debug\nlog-file: " + filepath.Join(dir, "node.log") + "\n"
	file := filepath.Join(dir, config.DefaultConfigName+".yaml")
	if err := ioutil.WriteFile(file, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewRootCmd()
	if err := cmd.ParseFlags([]string{"--datadir", dir}); err != nil {
		t.Fatal(err)
	}

	if err := loadConfig(cmd, nil); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if _config.Glomers.ConfigFile() != filepath.Join(dir, config.DefaultConfigName) {
		t.Fatalf("unexpected config file %s", _config.Glomers.ConfigFile())
	}
	if _config.Glomers.LogLevel != "debug" {
		t.Fatalf("LogLevel should be debug, not %s", _config.Glomers.LogLevel)
	}
	if _config.Glomers.LogFile != filepath.Join(dir, "node.log") {
		t.Fatalf("LogFile should come from the config file, got %s", _config.Glomers.LogFile)
	}
}

func TestDefaultFlags(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"datadir", "log", "log-file", "service-listen"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("missing flag --%s", name)
		}
	}

	if v := cmd.Flags().Lookup("log").DefValue; v != "info" {
		t.Fatalf("--log should default to info, not %s", v)
	}
	if v := cmd.Flags().Lookup("service-listen").DefValue; v != "" {
		t.Fatalf("--service-listen should default to empty, not %s", v)
	}
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer

	VersionCmd.SetOutput(&out)
	defer VersionCmd.SetOutput(nil)

	VersionCmd.Run(VersionCmd, nil)

	if strings.TrimSpace(out.String()) != version.Version {
		t.Fatalf("expected %s, got %q", version.Version, out.String())
	}
}
