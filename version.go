package main

import (
	"os/exec"
	"runtime/debug"
	"strings"
	"time"
)

var commit = "dev"
var buildDate = ""

// version reads the revision from build info, then git, so pages and
// /healthz can report what is running
func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "dev" && s.Value != "" {
					commit = shortRev(s.Value)
				}
			case "vcs.time":
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil && buildDate == "" {
					buildDate = t.Format("2006-01-02")
				}
			}
		}
	}
	if commit == "dev" {
		if c, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output(); err == nil {
			commit = strings.TrimSpace(string(c))
		}
	}
	if buildDate == "" {
		buildDate = time.Now().Format("2006-01-02")
	}
}

func shortRev(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

func versionString() string {
	return commit + " (" + buildDate + ")"
}
