package assets

import (
	"io"
	"testing"

	"github.com/spf13/afero"
)

func TestStoreAssetExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "audio/Mata.mp3", []byte("ID3"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := fs.MkdirAll("audio/dir.m4a", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	s := NewStore(fs)

	if !s.AssetExists("audio/Mata.mp3") {
		t.Fatalf("expected audio/Mata.mp3 to exist")
	}
	if s.AssetExists("audio/Mata.m4a") {
		t.Fatalf("audio/Mata.m4a must not exist")
	}
	if s.AssetExists("audio/dir.m4a") {
		t.Fatalf("directories are not assets")
	}
}

func TestStoreOpen(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "audio/Takola.m4a", []byte("frog"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	rc, size, err := NewStore(fs).Open("audio/Takola.m4a")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "frog" || size != 4 {
		t.Fatalf("data=%q size=%d", data, size)
	}
}
