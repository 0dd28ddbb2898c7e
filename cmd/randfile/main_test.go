package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MainTestSuite struct {
	suite.Suite
	dir    string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func (s *MainTestSuite) SetupTest() {
	s.dir = filepath.Join(s.T().TempDir(), "out")
	s.stdout = new(bytes.Buffer)
	s.stderr = new(bytes.Buffer)
}

func (s *MainTestSuite) run(args ...string) int {
	return run(context.Background(), args, s.stdout, s.stderr)
}

func (s *MainTestSuite) writeConfig(content string) string {
	path := filepath.Join(s.T().TempDir(), "randfile.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

// sizes returns the size of every file in the output directory.
func (s *MainTestSuite) sizes() []int64 {
	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	var sizes []int64
	for _, e := range entries {
		info, err := e.Info()
		s.Require().NoError(err)
		sizes = append(sizes, info.Size())
	}
	return sizes
}

func (s *MainTestSuite) TestWriteFiles() {
	code := s.run("-n", "3", "-f", "10KiB", "-c", "4KiB", "-o", s.dir, "--no-sync")
	s.Require().Equal(exitOK, code, s.stderr.String())

	s.Equal([]int64{10240, 10240, 10240}, s.sizes())
	s.Contains(s.stdout.String(), "wrote 3 files, 30 KiB")
	s.Contains(s.stderr.String(), "batch finished")
}

func (s *MainTestSuite) TestParallel() {
	code := s.run("-n", "6", "-j", "3", "-f", "1000", "-c", "256", "-o", s.dir, "--source", "crypto")
	s.Require().Equal(exitOK, code, s.stderr.String())
	s.Len(s.sizes(), 6)
}

func (s *MainTestSuite) TestZeroFiles() {
	code := s.run("-n", "0", "-o", s.dir)
	s.Equal(exitOK, code)
	s.NoDirExists(s.dir)
}

func (s *MainTestSuite) TestInvalidArguments() {
	tests := []struct {
		args []string
		msg  string
	}{
		{[]string{"-c", "0"}, "invalid chunk size"},
		{[]string{"-f", "0"}, "invalid file size"},
		{[]string{"--file-size=-1"}, "must not be negative"},
		{[]string{"-f", "lots"}, "lots"},
		{[]string{"--number-of-files=-2"}, "invalid number of files"},
		{[]string{"-j", "0"}, "invalid jobs"},
		{[]string{"--source", "dice"}, "invalid source"},
		{[]string{"--file-mode", "rw"}, "invalid file mode"},
		{[]string{"--log-level", "loud"}, "invalid log level"},
		{[]string{"--unknown"}, "unknown"},
	}
	for _, tt := range tests {
		s.stderr.Reset()
		code := s.run(append(tt.args, "-o", s.dir)...)
		s.Equal(exitInvalid, code, tt.args)
		s.Contains(s.stderr.String(), tt.msg, tt.args)
		s.True(strings.HasPrefix(s.stderr.String(), "Error: "), tt.args)
		s.NoDirExists(s.dir)
	}
}

func (s *MainTestSuite) TestConfigFile() {
	path := s.writeConfig("number_of_files: 2\nfile_size: 2KiB\nchunk_size: 1000\nsync: false\nfile_mode: \"0600\"\n")

	code := s.run("--config", path, "-o", s.dir)
	s.Require().Equal(exitOK, code, s.stderr.String())
	s.Equal([]int64{2048, 2048}, s.sizes())

	if runtime.GOOS != "windows" {
		entries, err := os.ReadDir(s.dir)
		s.Require().NoError(err)
		info, err := entries[0].Info()
		s.Require().NoError(err)
		s.Equal(os.FileMode(0o600), info.Mode().Perm())
	}
}

// Flags win over the configuration file.
func (s *MainTestSuite) TestFlagsOverrideConfigFile() {
	path := s.writeConfig("number_of_files: 4\nfile_size: 100\n")

	code := s.run("--config", path, "-n", "1", "-o", s.dir)
	s.Require().Equal(exitOK, code, s.stderr.String())
	s.Equal([]int64{100}, s.sizes())
}

func (s *MainTestSuite) TestInvalidConfigFile() {
	for _, content := range []string{
		"files: 2\n",
		"number_of_files: many\n",
		"file_size: [1]\n",
		"- a\n- b\n",
	} {
		s.stderr.Reset()
		code := s.run("--config", s.writeConfig(content), "-o", s.dir)
		s.Equal(exitInvalid, code, content)
		s.NoDirExists(s.dir)
	}

	code := s.run("--config", filepath.Join(s.T().TempDir(), "missing.yaml"), "-o", s.dir)
	s.Equal(exitInvalid, code)
}

func (s *MainTestSuite) TestEnvironment() {
	s.T().Setenv("RANDFILE_NUMBER_OF_FILES", "2")
	s.T().Setenv("RANDFILE_FILE_SIZE", "1 KB")
	s.T().Setenv("RANDFILE_OUTPUT_DIRECTORY", s.dir)

	code := s.run()
	s.Require().Equal(exitOK, code, s.stderr.String())
	s.Equal([]int64{1000, 1000}, s.sizes())
}

// The output directory cannot be created when a file has its name.
func (s *MainTestSuite) TestWriteFailure() {
	s.Require().NoError(os.WriteFile(filepath.Join(filepath.Dir(s.dir), "out"), nil, 0o600))

	code := s.run("-f", "100", "-o", s.dir)
	s.Equal(exitFailure, code)
	s.True(strings.HasPrefix(s.stderr.String(), "Error: "))
	s.Empty(s.stdout.String())
}

func (s *MainTestSuite) TestCanceled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := run(ctx, []string{"-n", "2", "-f", "100", "-o", s.dir}, s.stdout, s.stderr)
	s.Equal(exitFailure, code)
	s.Contains(s.stderr.String(), context.Canceled.Error())
}

func (s *MainTestSuite) TestJSONLogs() {
	code := s.run("-f", "100", "-o", s.dir, "--log-format", "json", "--log-level", "debug")
	s.Require().Equal(exitOK, code, s.stderr.String())

	lines := strings.Split(strings.TrimSpace(s.stderr.String()), "\n")
	s.Len(lines, 4)
	for _, line := range lines {
		var entry map[string]any
		s.NoError(json.Unmarshal([]byte(line), &entry), line)
		s.Contains(entry, "msg")
	}
}

func (s *MainTestSuite) TestVars() {
	v := vars()
	s.Equal("256 MiB", v["chunk_size"])
	s.Equal("1.0 MiB", v["file_size"])
	s.Equal("0644", v["file_mode"])
	s.Equal("fast, crypto", v["sources"])
}

func TestMainTestSuite(t *testing.T) {
	suite.Run(t, new(MainTestSuite))
}
