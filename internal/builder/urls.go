package builder

import "fmt"

// ReleaseDownloadURL returns the GitHub release asset URL for a package
// archive.
func ReleaseDownloadURL(owner, repo, version, filename string) string {
	return fmt.Sprintf("https://github.com/%s/%s/releases/download/v%s/%s", owner, repo, version, filename)
}

// RawIndexURL returns the raw.githubusercontent.com URL an index file
// is served from.
func RawIndexURL(owner, repo, filename string) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/main/dist/%s", owner, repo, filename)
}
