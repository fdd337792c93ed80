package models

import "testing"

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleCitizen, RoleAmbulance, RoleAdmin} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false, want true", r)
		}
	}
	for _, r := range []Role{"", "superadmin", "driver"} {
		if ValidRole(r) {
			t.Errorf("ValidRole(%q) = true, want false", r)
		}
	}
}

func TestHashAndComparePassword(t *testing.T) {
	u := User{Password: "hunter22"}

	if err := u.HashPassword(); err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if u.Password == "hunter22" {
		t.Fatal("HashPassword left the password in plain text")
	}
	if !u.ComparePassword("hunter22") {
		t.Error("ComparePassword rejected the correct password")
	}
	if u.ComparePassword("wrong") {
		t.Error("ComparePassword accepted a wrong password")
	}
}
