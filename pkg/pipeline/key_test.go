package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/tagcloud/tagcloud/pkg/cache"
	"github.com/tagcloud/tagcloud/pkg/fonts"
)

func TestArtifactKeyTracksFontFileContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house-font.ttf")
	load := func(data []byte) string {
		t.Helper()
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		name, err := fonts.LoadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		return name
	}

	k := cache.NewDefaultKeyer()
	name := load(gomono.TTF)
	opts := Options{Font: name}
	first := k.ArtifactKey("h", opts.ArtifactKeyOpts())
	if opts.ArtifactKeyOpts().FontDigest == "" {
		t.Error("file font should carry a content digest")
	}

	load(goregular.TTF)
	if second := k.ArtifactKey("h", opts.ArtifactKeyOpts()); second == first {
		t.Error("replacing the font file must change the artifact key")
	}
}

func TestArtifactKeyBuiltinFontHasNoDigest(t *testing.T) {
	opts := Options{Font: fonts.DefaultFamily}
	if d := opts.ArtifactKeyOpts().FontDigest; d != "" {
		t.Errorf("FontDigest = %q for built-in family", d)
	}
}
