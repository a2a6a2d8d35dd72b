package x11

import "testing"

func TestScreenSaverRefcount(t *testing.T) {
	var s screenSaver

	if !s.acquire() {
		t.Fatal("first acquire must disable the saver")
	}
	if s.acquire() {
		t.Fatal("second acquire must leave the saver alone")
	}
	if s.release() {
		t.Fatal("releasing one of two holders must not restore the saver")
	}
	if !s.release() {
		t.Fatal("releasing the last holder must restore the saver")
	}

	if !s.acquire() {
		t.Fatal("the cycle must restart once the count returns to zero")
	}
}
