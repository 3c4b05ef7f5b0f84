package extract

import (
	"testing"
)

func TestExtract_TaggedFence(t *testing.T) {
	response := "Here is the code:\n```js\nprint(\"hello\")\n```\nDone."

	blocks := Extract(response)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Code != `print("hello")` {
		t.Errorf("unexpected code: %q", blocks[0].Code)
	}
	if blocks[0].Tier != TierTagged {
		t.Errorf("expected tier %d, got %d", TierTagged, blocks[0].Tier)
	}
}

func TestExtract_JavascriptTag(t *testing.T) {
	response := "```javascript\nlet x = 1\nprint(x)\n```"

	blocks := Extract(response)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Code != "let x = 1\nprint(x)" {
		t.Errorf("unexpected code: %q", blocks[0].Code)
	}
}

func TestExtract_TaggedSuppressesUntagged(t *testing.T) {
	response := "```js\nprint(1)\n```\n\n```\nx = 2\n```"

	blocks := Extract(response)

	if len(blocks) != 1 {
		t.Fatalf("expected only the tagged block, got %d", len(blocks))
	}
	if blocks[0].Code != "print(1)" {
		t.Errorf("unexpected code: %q", blocks[0].Code)
	}
}

func TestExtract_UntaggedFenceWithIndicator(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "assignment", body: "x = 40 + 2"},
		{name: "declaration", body: "let total = 0"},
		{name: "print call", body: "print(\"hi\")"},
		{name: "file open idiom", body: "fs.read(\"data.txt\")"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Extract("```\n" + tt.body + "\n```")
			if len(blocks) != 1 {
				t.Fatalf("expected 1 block, got %d", len(blocks))
			}
			if blocks[0].Tier != TierUntagged {
				t.Errorf("expected tier %d, got %d", TierUntagged, blocks[0].Tier)
			}
		})
	}
}

func TestExtract_UntaggedProseRejected(t *testing.T) {
	response := "```\njust a formatted quotation, nothing to run here\n```"

	blocks := Extract(response)

	if len(blocks) != 0 {
		t.Errorf("expected no blocks for prose fence, got %d", len(blocks))
	}
}

func TestExtract_BareCallLines(t *testing.T) {
	response := "You can check it like this:\nfs.read(\"notes.txt\")\nand that is all."

	blocks := Extract(response)

	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Code != `fs.read("notes.txt")` {
		t.Errorf("unexpected code: %q", blocks[0].Code)
	}
	if blocks[0].Tier != TierBareCall {
		t.Errorf("expected tier %d, got %d", TierBareCall, blocks[0].Tier)
	}
}

func TestExtract_PlainProse(t *testing.T) {
	blocks := Extract("There is no code in this response, only prose.")

	if len(blocks) != 0 {
		t.Errorf("expected empty result, got %d blocks", len(blocks))
	}
}

func TestExtract_DeduplicatesExactText(t *testing.T) {
	response := "```js\nprint(1)\n```\nagain:\n```js\nprint(1)\n```\nand:\n```js\nprint(2)\n```"

	blocks := Extract(response)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 unique blocks, got %d", len(blocks))
	}
	if blocks[0].Code != "print(1)" || blocks[1].Code != "print(2)" {
		t.Errorf("expected first occurrence order preserved, got %v", Texts(blocks))
	}
}

func TestExtract_MalformedFence(t *testing.T) {
	// Unterminated fence must not raise, just yield nothing.
	blocks := Extract("```js\nprint(1)")

	if len(blocks) != 0 {
		t.Errorf("expected no blocks for unterminated fence, got %d", len(blocks))
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	if blocks := Extract(""); len(blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(blocks))
	}
}
