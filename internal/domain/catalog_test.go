package domain

import "testing"

func TestNewCatalog(t *testing.T) {
	t.Run("Preserves Order", func(t *testing.T) {
		c, err := NewCatalog([]string{"PMC", "Architect", "Contractor"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		roles := c.Roles()
		want := []string{"PMC", "Architect", "Contractor"}
		for i, r := range want {
			if roles[i] != r {
				t.Errorf("position %d: got %q, want %q", i, roles[i], r)
			}
		}
	})

	t.Run("Rejects Empty List", func(t *testing.T) {
		if _, err := NewCatalog(nil); err == nil {
			t.Fatal("expected an error, got nil")
		}
	})

	t.Run("Rejects Duplicates", func(t *testing.T) {
		if _, err := NewCatalog([]string{"PMC", "PMC"}); err == nil {
			t.Fatal("expected an error, got nil")
		}
	})

	t.Run("Rejects Blank Names", func(t *testing.T) {
		if _, err := NewCatalog([]string{"PMC", ""}); err == nil {
			t.Fatal("expected an error, got nil")
		}
	})

	t.Run("Roles Returns A Copy", func(t *testing.T) {
		c := MustDefaultCatalog()
		roles := c.Roles()
		roles[0] = "Mutated"
		if c.Roles()[0] == "Mutated" {
			t.Error("catalog was mutated through Roles()")
		}
	})
}

func TestCatalog_IsValid(t *testing.T) {
	c := MustDefaultCatalog()

	if !c.IsValid("PMC") {
		t.Error("PMC should be valid")
	}
	if !c.IsValid("Engineer (Contractor)") {
		t.Error("Engineer (Contractor) should be valid")
	}
	if c.IsValid("Stakeholder") {
		t.Error("Stakeholder should not be valid")
	}
	if c.IsValid("") {
		t.Error("blank role should not be valid")
	}
}
