//go:build windows

package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Windows has no execute bits; PATHEXT decides what the shell would run.
const defaultPathExt = ".COM;.EXE;.BAT;.CMD;.PS1"

func isExecutable(info fs.FileInfo) bool {
	ext := strings.ToUpper(filepath.Ext(info.Name()))
	if ext == "" {
		return false
	}
	return executableExtensions()[ext]
}

func executableExtensions() map[string]bool {
	pathext := os.Getenv("PATHEXT")
	if strings.TrimSpace(pathext) == "" {
		pathext = defaultPathExt
	}
	exts := make(map[string]bool)
	for _, ext := range strings.Split(pathext, ";") {
		ext = strings.ToUpper(strings.TrimSpace(ext))
		if ext != "" {
			exts[ext] = true
		}
	}
	// The launcher runs scripts through PowerShell, which PATHEXT rarely lists.
	exts[".PS1"] = true
	return exts
}
