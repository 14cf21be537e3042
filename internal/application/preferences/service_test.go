package preferences

import (
	"testing"

	"github.com/doeshing/sensi-go/internal/domain"
	"github.com/doeshing/sensi-go/internal/infrastructure/store"
	"github.com/doeshing/sensi-go/internal/pkg/logger"
)

func TestMutedDefaultsToFalse(t *testing.T) {
	svc := &Service{Store: store.NewFileStore(t.TempDir()), Logger: logger.Nop()}
	if svc.Muted() {
		t.Fatal("expected unmuted by default")
	}
}

func TestSetMutedPersists(t *testing.T) {
	kv := store.NewFileStore(t.TempDir())
	svc := &Service{Store: kv, Logger: logger.Nop()}
	if err := svc.SetMuted(true); err != nil {
		t.Fatalf("SetMuted error: %v", err)
	}

	reopened := &Service{Store: kv, Logger: logger.Nop()}
	if !reopened.Muted() {
		t.Fatal("expected mute preference to survive restart")
	}

	raw, _, _ := kv.Get(domain.MuteStoreKey)
	if string(raw) != "true" {
		t.Fatalf("stored %q, want JSON boolean", raw)
	}
}

func TestMutedIgnoresGarbage(t *testing.T) {
	kv := store.NewFileStore(t.TempDir())
	_ = kv.Put(domain.MuteStoreKey, []byte("maybe"))
	svc := &Service{Store: kv, Logger: logger.Nop()}
	if svc.Muted() {
		t.Fatal("garbage should read as unmuted")
	}
}
