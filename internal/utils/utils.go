package utils

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/samber/lo"
)

// return left of digest, e.g. "sha256:f85340bf132ae1"
func ShortDigest(input string) string {
	return lo.Substring(input, 0, 19)
}

// remove ansi color codes from string (from console output)
func NoColorCodes(input string) string {
	return stripansi.Strip(input)
}

// return true if given program is installed (found in $PATH)
func IsInstalled(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

func OsWhich(cmd string) (string, error) {
	path, err := exec.LookPath(cmd)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH", cmd)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("error getting absolute path: %s", cmd)
	}
	return absPath, nil
}

func ElapsedFunc() func() time.Duration {
	startTime := time.Now()
	return func() time.Duration {
		return time.Since(startTime)
	}
}

func HumanDeltaMilisec(delta time.Duration) string {
	return delta.Round(10 * time.Millisecond).String()
}
