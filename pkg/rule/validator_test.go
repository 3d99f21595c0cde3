package rule_test

import (
	"strings"
	"testing"

	"github.com/magicfolder/mfvault/pkg/rule"
)

type stagingRequest struct {
	FileName     string `rule:"required"`
	DeclaredHash string `rule:"omitempty,len=64,hexadecimal"`
}

func TestEngine(t *testing.T) {
	if rule.Engine() == nil {
		t.Error("Engine() returned nil")
	}
}

func TestValidateStruct(t *testing.T) {
	valid := stagingRequest{FileName: "scan.pdf"}
	if err := rule.ValidateStruct(valid); err != nil {
		t.Errorf("Expected no error for valid struct, got %v", err)
	}

	withHash := stagingRequest{FileName: "scan.pdf", DeclaredHash: strings.Repeat("ab", 32)}
	if err := rule.ValidateStruct(withHash); err != nil {
		t.Errorf("Expected no error for valid hash, got %v", err)
	}

	missingName := stagingRequest{}
	if err := rule.ValidateStruct(missingName); err == nil {
		t.Error("Expected error for missing file name, got nil")
	}

	shortHash := stagingRequest{FileName: "scan.pdf", DeclaredHash: "abcd"}
	if err := rule.ValidateStruct(shortHash); err == nil {
		t.Error("Expected error for short hash, got nil")
	}

	nonHex := stagingRequest{FileName: "scan.pdf", DeclaredHash: strings.Repeat("zz", 32)}
	if err := rule.ValidateStruct(nonHex); err == nil {
		t.Error("Expected error for non-hex hash, got nil")
	}
}

func TestValidateVar(t *testing.T) {
	if err := rule.ValidateVar("user@example.com", "required,email"); err != nil {
		t.Errorf("Expected no error for valid email, got %v", err)
	}

	if err := rule.ValidateVar("invalid-email", "required,email"); err == nil {
		t.Error("Expected error for invalid email, got nil")
	}
}
