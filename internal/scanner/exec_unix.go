//go:build !windows

package scanner

import "io/fs"

func isExecutable(info fs.FileInfo) bool {
	return info.Mode().Perm()&0o111 != 0
}
