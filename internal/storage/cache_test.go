package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cache.db"), nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCachePutGet(t *testing.T) {
	cache := NewCache(openTestDB(t))

	payload := []byte(`{"root":"t.xsd","concepts":3}`)
	if err := cache.Put("taxonomy/t.xsd", "fp1", payload, time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := cache.Get("taxonomy/t.xsd", "fp1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if string(got) != string(payload) {
		t.Errorf("payload = %q, want %q", got, payload)
	}
}

func TestCacheFingerprintMismatch(t *testing.T) {
	cache := NewCache(openTestDB(t))

	if err := cache.Put("t.xsd", "fp1", []byte("x"), time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, ok, _ := cache.Get("t.xsd", "other"); ok {
		t.Error("expected a fingerprint mismatch to miss")
	}
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache(openTestDB(t))

	if err := cache.Put("t.xsd", "fp1", []byte("x"), -time.Second); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, ok, _ := cache.Get("t.xsd", "fp1"); ok {
		t.Error("expected an expired entry to miss")
	}

	n, err := cache.PurgeExpired()
	if err != nil {
		t.Fatalf("PurgeExpired failed: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d entries, want 1", n)
	}
}

func TestCacheReplace(t *testing.T) {
	cache := NewCache(openTestDB(t))

	if err := cache.Put("t.xsd", "fp1", []byte("old"), time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := cache.Put("t.xsd", "fp2", []byte("new"), time.Hour); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	got, ok, err := cache.Get("t.xsd", "fp2")
	if err != nil || !ok || string(got) != "new" {
		t.Errorf("expected replaced payload, got %q ok=%v err=%v", got, ok, err)
	}

	n, err := cache.Purge()
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d entries, want 1", n)
	}
}

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.xsd")
	if err := os.WriteFile(path, []byte("<schema/>"), 0644); err != nil {
		t.Fatal(err)
	}

	fp1, err := Fingerprint([]string{path})
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("<schema changed='1'/>"), 0644); err != nil {
		t.Fatal(err)
	}
	fp2, err := Fingerprint([]string{path})
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	if fp1 == fp2 {
		t.Error("expected the fingerprint to change with the content")
	}

	if _, err := Fingerprint([]string{filepath.Join(dir, "missing.xsd")}); err == nil {
		t.Error("expected a missing file to fail the fingerprint")
	}
}
