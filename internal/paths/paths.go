// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"backlight/internal/text"
)

const homeEnv = "HOME"

var tilde = text.FromString("~")

// ValidatePathString validates raw path input before resolution.
func ValidatePathString(path string, maxLen int) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if strings.IndexByte(path, 0) != -1 {
		return fmt.Errorf("path contains null byte")
	}
	if !utf8.ValidString(path) {
		return fmt.Errorf("path is not valid UTF-8")
	}
	if maxLen > 0 && len(path) > maxLen {
		return fmt.Errorf("path exceeds maximum length of %d characters", maxLen)
	}
	return nil
}

// HasPathPrefix returns true when path is within base.
func HasPathPrefix(path, base string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(os.PathSeparator)) && rel != "..")
}

// JoinWithinBase joins name under base lexically and rejects results that
// leave base. Symlinks are not resolved: sysfs class entries are symlinks
// into /sys/devices by design.
func JoinWithinBase(base, name string) (string, error) {
	if err := ValidatePathString(name, 0); err != nil {
		return "", err
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute paths are not allowed")
	}
	joined := filepath.Join(base, name)
	if joined == filepath.Clean(base) || !HasPathPrefix(joined, base) {
		return "", fmt.Errorf("path %q escapes %s", name, base)
	}
	return joined, nil
}

// EnvView returns the value of an environment variable, or an empty view
// when it is unset.
func EnvView(name string) text.View {
	return text.FromString(os.Getenv(name))
}

// HomeView returns $HOME, or "." when it is unset or empty.
func HomeView() text.View {
	home := EnvView(homeEnv)
	if home.IsEmpty() {
		return text.FromString(".")
	}
	return home
}

// ExpandHome replaces a single leading "~" with the home directory.
func ExpandHome(b *text.Buffer) {
	if b.View().HasPrefix(tilde) {
		b.Replace(tilde, HomeView(), 1)
	}
}

// CompressHome replaces a leading home directory prefix with "~". The
// comparison is byte-wise, so "/home/user2" compresses against
// "/home/user" too; callers compressing for display accept that.
func CompressHome(b *text.Buffer) {
	home := HomeView()
	if b.View().PrefixEqual(home, home.Len()) {
		b.Replace(home, tilde, 1)
	}
}

// Expand is ExpandHome for callers holding a plain string.
func Expand(path string) string {
	b := text.NewBufferString(path)
	defer b.Free()
	ExpandHome(b)
	return b.String()
}
