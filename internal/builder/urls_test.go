package builder

import "testing"

func TestReleaseDownloadURL(t *testing.T) {
	got := ReleaseDownloadURL("acme", "widgets", "1.2.0", "com.example.lib_v1.2.0_pcm.zip")
	want := "https://github.com/acme/widgets/releases/download/v1.2.0/com.example.lib_v1.2.0_pcm.zip"
	if got != want {
		t.Errorf("ReleaseDownloadURL = %s, want %s", got, want)
	}
}

func TestRawIndexURL(t *testing.T) {
	got := RawIndexURL("acme", "widgets", "repository.json")
	want := "https://raw.githubusercontent.com/acme/widgets/main/dist/repository.json"
	if got != want {
		t.Errorf("RawIndexURL = %s, want %s", got, want)
	}
}
