package prompts

import (
	"strings"
	"testing"

	"github.com/SaiNageswarS/ipl-tweet-agent/schema"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSystemPrompt(t *testing.T) {
	prompt, err := SystemPrompt()
	if err != nil {
		t.Fatalf("Failed to render system prompt: %v", err)
	}

	expected := []string{
		"IPL cricket social media manager",
		schema.ViralTweetPromptTool,
		schema.OneLinerTweetPromptTool,
		"under 280 characters",
	}

	for _, e := range expected {
		if !strings.Contains(prompt, e) {
			t.Errorf("System prompt should contain '%s'", e)
		}
	}
}

func TestRenderPromptRequest(t *testing.T) {
	moment := "Rohit Sharma hit a six off Pat Cummins"

	standard, err := RenderPromptRequest(schema.TweetTypeStandard, moment)
	if err != nil {
		t.Fatalf("Failed to render standard prompt request: %v", err)
	}

	if !strings.Contains(standard, moment) {
		t.Error("Standard prompt request should contain the moment")
	}
	if !strings.Contains(standard, "TweetTools."+schema.ViralTweetPromptTool) {
		t.Error("Standard prompt request should name the viral prompt tool")
	}
	if strings.Contains(standard, "one-liner") {
		t.Error("Standard prompt request should not ask for a one-liner")
	}

	oneLiner, err := RenderPromptRequest(schema.TweetTypeOneLiner, moment)
	if err != nil {
		t.Fatalf("Failed to render one-liner prompt request: %v", err)
	}

	if !strings.Contains(oneLiner, "7-8 words max") {
		t.Error("One-liner prompt request should mention the word limit")
	}
	if !strings.Contains(oneLiner, "TweetTools."+schema.OneLinerTweetPromptTool) {
		t.Error("One-liner prompt request should name the one-liner prompt tool")
	}
}

func TestTweetGenerationInstruction(t *testing.T) {
	standard, err := TweetGenerationInstruction(schema.TweetTypeStandard)
	if err != nil {
		t.Fatalf("Failed to render instruction: %v", err)
	}
	if !strings.Contains(standard, "under 280 characters") {
		t.Error("Standard instruction should enforce the character limit")
	}
	if !strings.Contains(standard, "without any explanation") {
		t.Error("Standard instruction should ask for the bare tweet")
	}

	oneLiner, err := TweetGenerationInstruction(schema.TweetTypeOneLiner)
	if err != nil {
		t.Fatalf("Failed to render instruction: %v", err)
	}
	if !strings.Contains(oneLiner, "ALL CAPS") {
		t.Error("One-liner instruction should ask for caps")
	}
	if standard == oneLiner {
		t.Error("Instructions should differ per tweet type")
	}
}

func TestToolPromptsPreserveContentVerbatim(t *testing.T) {
	inputs := []string{
		"Rohit Sharma hit a six",
		"",
		"Special chars: <>&\"' {{.ContentDump}} %s %d {content_dump}",
		"हिटमैन 110 मीटर छक्का 🚀",
		"multi\nline\n\tmoment",
	}

	for _, in := range inputs {
		viral, err := RenderViralTweetPrompt(in)
		if err != nil {
			t.Fatalf("Failed to render viral prompt: %v", err)
		}
		if !strings.Contains(viral, "<content_dump>\n"+in+"\n</content_dump>") {
			t.Errorf("Viral prompt should embed %q verbatim", in)
		}

		oneLiner, err := RenderOneLinerTweetPrompt(in)
		if err != nil {
			t.Fatalf("Failed to render one-liner prompt: %v", err)
		}
		if !strings.Contains(oneLiner, "<content_dump>\n"+in+"\n</content_dump>") {
			t.Errorf("One-liner prompt should embed %q verbatim", in)
		}
	}
}

func TestRenderToolPrompt(t *testing.T) {
	viral, err := RenderToolPrompt(schema.TweetTypeStandard, "moment")
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	if !strings.HasPrefix(viral, "# Rohit Sharma IPL Boundaries Viral Tweet Generator") {
		t.Error("Standard tool prompt should be the viral template")
	}

	oneLiner, err := RenderToolPrompt(schema.TweetTypeOneLiner, "moment")
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	if !strings.HasPrefix(oneLiner, "# Rohit Sharma IPL One-Liner Viral Tweet Generator") {
		t.Error("One-liner tool prompt should be the one-liner template")
	}
}

func TestRenderConsistency(t *testing.T) {
	a, err1 := RenderViralTweetPrompt("same")
	b, err2 := RenderViralTweetPrompt("same")
	if err1 != nil || err2 != nil {
		t.Fatalf("Render failed: %v %v", err1, err2)
	}
	if a != b {
		t.Error("Prompts should be consistent between calls")
	}
}
