package kvs

import "testing"

// TestRenameMovesValue verifies the new key reads the old key's value
// and the old key is gone.
func TestRenameMovesValue(t *testing.T) {
	s := openTestStore(t)
	s.Set("old", "payload")

	if err := s.Rename("old", "new"); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	if _, ok, _ := s.Get("old"); ok {
		t.Errorf("old key still bound after Rename")
	}
	value, ok, err := s.Get("new")
	if err != nil || !ok || value != "payload" {
		t.Errorf("Get(new) = %q, %v, %v; want payload, true, nil", value, ok, err)
	}
}

// TestRenameMissingOldKey verifies renaming an unbound key fails
// without creating the new key.
func TestRenameMissingOldKey(t *testing.T) {
	s := openTestStore(t)

	if err := s.Rename("ghost", "new"); err != ErrKeyNotFound {
		t.Errorf("Rename(ghost, new) = %v, want ErrKeyNotFound", err)
	}
	if _, ok, _ := s.Get("new"); ok {
		t.Errorf("new key bound despite failed Rename")
	}
}

// TestRenameNewKeyAlreadyExists verifies Rename refuses to clobber an
// already-bound new key.
func TestRenameNewKeyAlreadyExists(t *testing.T) {
	s := openTestStore(t)
	s.Set("old", "a")
	s.Set("new", "b")

	if err := s.Rename("old", "new"); err != ErrKeyExists {
		t.Errorf("Rename(old, new) = %v, want ErrKeyExists", err)
	}
	value, _, _ := s.Get("new")
	if value != "b" {
		t.Errorf("new's value changed to %q despite refused Rename", value)
	}
}

// TestRenameSameKeyIsNoOp verifies renaming a key to itself succeeds
// and leaves the value untouched.
func TestRenameSameKeyIsNoOp(t *testing.T) {
	s := openTestStore(t)
	s.Set("k", "v")

	if err := s.Rename("k", "k"); err != nil {
		t.Errorf("Rename(k, k) = %v, want nil", err)
	}
	value, ok, _ := s.Get("k")
	if !ok || value != "v" {
		t.Errorf("Get(k) = %q, %v; want v, true", value, ok)
	}
}

// TestRenameUnboundSameKey verifies Rename(x, x) on an unbound key still
// reports ErrKeyNotFound.
func TestRenameUnboundSameKey(t *testing.T) {
	s := openTestStore(t)

	if err := s.Rename("ghost", "ghost"); err != ErrKeyNotFound {
		t.Errorf("Rename(ghost, ghost) = %v, want ErrKeyNotFound", err)
	}
}
