package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v9.9.9"

	info := Get()
	if info.Version != "v9.9.9" || info.Go == "" {
		t.Errorf("Get() = %+v", info)
	}
	if !strings.Contains(String(), "v9.9.9") || !strings.Contains(Template(), "v9.9.9") {
		t.Error("String and Template should include the version")
	}
}
