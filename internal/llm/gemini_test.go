package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiAliases(t *testing.T) {
	if got := resolveModel("gemini-flash", geminiAliases); got != "gemini-2.0-flash" {
		t.Fatalf("gemini-flash resolved to %q", got)
	}
	if got := resolveModel("gemini-2.5-pro", geminiAliases); got != "gemini-2.5-pro" {
		t.Fatalf("pass-through resolved to %q", got)
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(tipsTestSchema().Definition)

	if s.Type != genai.TypeObject {
		t.Fatalf("root type = %s", s.Type)
	}
	tips := s.Properties["tips"]
	if tips == nil || tips.Type != genai.TypeArray {
		t.Fatalf("tips property = %+v", tips)
	}
	item := tips.Items
	if item == nil || item.Type != genai.TypeObject {
		t.Fatalf("tips items = %+v", item)
	}
	if item.Properties["fact"].Type != genai.TypeString {
		t.Fatalf("fact type = %s", item.Properties["fact"].Type)
	}
	if len(item.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %v", item.Required)
	}
}

func TestGeminiSchema_Enum(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "string",
		"enum": []string{"easy", "hard"},
	})
	if len(s.Enum) != 2 {
		t.Fatalf("enum = %v", s.Enum)
	}
}
