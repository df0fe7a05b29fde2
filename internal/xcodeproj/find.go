package xcodeproj

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

// ErrNotFound indicates no .xcodeproj was found under a root directory.
var ErrNotFound = errors.New("no Xcode project found")

// searchPatterns are tried in order, relative to the project root.
// Expo and React Native keep the native project under ios/.
var searchPatterns = []string{
	filepath.Join("ios", "*.xcodeproj", FileName),
	filepath.Join("*.xcodeproj", FileName),
}

// Find returns the project.pbxproj beneath root. When several projects
// match the same pattern the lexically first is returned; Pods.xcodeproj
// is never selected.
func Find(root string) (string, error) {
	for _, pattern := range searchPatterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return "", fmt.Errorf("searching %s: %w", root, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if filepath.Base(filepath.Dir(m)) == "Pods.xcodeproj" {
				continue
			}
			return m, nil
		}
	}
	return "", fmt.Errorf("%w under %s", ErrNotFound, root)
}
