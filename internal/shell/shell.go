// Package shell builds the machine-readable shell script the tool prints on
// stdout. The invoking shell function sources that output, so every command
// is single-quoted and chained with && ending in true.
package shell

import (
	"fmt"
	"strings"
)

// Script accumulates an &&-chained command sequence.
type Script struct {
	cmds []string
}

// Cd appends a change-directory command.
func (s *Script) Cd(path string) *Script {
	return s.add("cd " + quote(path))
}

// Mkdir appends a recursive mkdir.
func (s *Script) Mkdir(path string) *Script {
	return s.add("mkdir -p " + quote(path))
}

// Touch appends a touch, used to bump a directory's recency.
func (s *Script) Touch(path string) *Script {
	return s.add("touch " + quote(path))
}

// Clone appends a git clone of url into dir.
func (s *Script) Clone(url, dir string) *Script {
	return s.add("git clone " + quote(url) + " " + quote(dir))
}

// RemoveDir appends a recursive delete.
func (s *Script) RemoveDir(path string) *Script {
	return s.add("rm -rf " + quote(path))
}

// Echo appends a user-visible message.
func (s *Script) Echo(msg string) *Script {
	return s.add("echo " + quote(msg))
}

func (s *Script) add(cmd string) *Script {
	s.cmds = append(s.cmds, cmd)
	return s
}

// Empty reports whether no commands were added.
func (s *Script) Empty() bool { return len(s.cmds) == 0 }

// String renders the chain. The trailing true keeps the sourcing shell's
// exit status clean and lets commands be appended unconditionally.
func (s *Script) String() string {
	var b strings.Builder
	for _, cmd := range s.cmds {
		b.WriteString(cmd)
		b.WriteString(" \\\n  && ")
	}
	b.WriteString("true\n")
	return b.String()
}

// quote single-quotes arg for POSIX sh, closing and reopening the quotes
// around any embedded single quote.
func quote(arg string) string {
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// InitScript returns the shell function users eval into their profile. The
// function runs binPath with stdout captured to a temp file and sources the
// file on success, so cd and friends affect the calling shell.
func InitScript(binPath string) string {
	return fmt.Sprintf(`try() {
  if [ "$1" = "init" ]; then
    %[1]s "$@"
    return
  fi
  tmp=$(mktemp)
  %[1]s "$@" > "$tmp"
  ret=$?
  if [ $ret -eq 0 ]; then
    . "$tmp"
  fi
  rm -f "$tmp"
  return $ret
}
`, binPath)
}
