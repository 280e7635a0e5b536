package printer

import (
	"fmt"
	"testing"

	"github.com/rs/xid"
	"github.com/spf13/afero"
)

func TestArchive_Save(t *testing.T) {
	a := &Archive{fs: afero.NewMemMapFs()}
	id := xid.New()

	if err := a.Save(id, TestPattern(16, 16)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	exists, err := afero.Exists(a.fs, fmt.Sprintf("%s.png", id))
	if err != nil {
		t.Fatalf("Exists() error: %v", err)
	}
	if !exists {
		t.Fatal("archived file missing")
	}
}

func TestArchive_Disabled(t *testing.T) {
	a, err := NewArchive("")
	if err != nil {
		t.Fatalf("NewArchive() error: %v", err)
	}
	if a.Enabled() {
		t.Fatal("empty dir must disable archiving")
	}
	if err := a.Save(xid.New(), TestPattern(8, 8)); err != nil {
		t.Fatalf("disabled Save() must be a no-op, got %v", err)
	}
}
