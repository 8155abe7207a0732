package password

import "testing"

func TestGetHashAndCompare(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "regular password", password: "password123"},
		{name: "password with special chars", password: "p@ssw0rd!@#$%^&*()"},
		{name: "short password", password: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := GetHash(tt.password)
			if err != nil {
				t.Fatalf("GetHash() error = %v", err)
			}
			if hash == "" {
				t.Error("GetHash() returned empty hash")
			}
			if err := CompareHash(hash, tt.password); err != nil {
				t.Errorf("hash does not match original password: %v", err)
			}
			if err := CompareHash(hash, "wrong_password"); err == nil {
				t.Error("CompareHash() should fail for wrong password")
			}
		})
	}
}

func TestGetHash_DifferentPasswordsProduceDifferentHashes(t *testing.T) {
	hash1, err := GetHash("password1")
	if err != nil {
		t.Fatalf("GetHash failed: %v", err)
	}
	hash2, err := GetHash("password2")
	if err != nil {
		t.Fatalf("GetHash failed: %v", err)
	}
	if hash1 == hash2 {
		t.Error("different passwords produced identical hashes")
	}
}
