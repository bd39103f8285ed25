package markdown

import (
	"reflect"
	"testing"
)

func TestParseEmpty(t *testing.T) {
	for _, src := range []string{"", "   \n\t\n"} {
		tree := Parse([]byte(src))
		if len(tree.Nodes) != 0 {
			t.Errorf("Parse(%q) = %d nodes, want 0", src, len(tree.Nodes))
		}
	}
}

func TestParsePreambleOnly(t *testing.T) {
	tree := Parse([]byte("Just a paragraph.\n\nAnother one."))
	if len(tree.Nodes) != 1 {
		t.Fatalf("nodes = %d, want 1", len(tree.Nodes))
	}
	n := tree.Nodes[0]
	if n.Level != 0 || n.Heading != "" {
		t.Errorf("preamble node = %+v", n)
	}
	if n.Body != "Just a paragraph.\n\nAnother one." {
		t.Errorf("Body = %q", n.Body)
	}
}

func TestParseHeadings(t *testing.T) {
	src := []byte("# MyLib\n\nA short description.\n\n## Usage\n\n```\nimport mylib\n```\n\n## License\nMIT\n")
	tree := Parse(src)

	if len(tree.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3: %+v", len(tree.Nodes), tree.Nodes)
	}

	if tree.Nodes[0].Level != 1 || tree.Nodes[0].Heading != "MyLib" {
		t.Errorf("node 0 = %+v", tree.Nodes[0])
	}
	if tree.Nodes[0].Body != "A short description." {
		t.Errorf("node 0 body = %q", tree.Nodes[0].Body)
	}

	if tree.Nodes[1].Level != 2 || tree.Nodes[1].Heading != "Usage" {
		t.Errorf("node 1 = %+v", tree.Nodes[1])
	}
	if tree.Nodes[1].Body != "```\nimport mylib\n```" {
		t.Errorf("node 1 body = %q", tree.Nodes[1].Body)
	}

	if tree.Nodes[2].Heading != "License" || tree.Nodes[2].Body != "MIT" {
		t.Errorf("node 2 = %+v", tree.Nodes[2])
	}
}

func TestParseHashInsideFenceIsNotHeading(t *testing.T) {
	src := []byte("# Title\n\n```sh\n# this is a shell comment\necho hi\n```\n")
	tree := Parse(src)

	if len(tree.Nodes) != 1 {
		t.Fatalf("nodes = %d, want 1: %+v", len(tree.Nodes), tree.Nodes)
	}
	if tree.Nodes[0].Heading != "Title" {
		t.Errorf("heading = %q", tree.Nodes[0].Heading)
	}
	if want := "```sh\n# this is a shell comment\necho hi\n```"; tree.Nodes[0].Body != want {
		t.Errorf("body = %q, want %q", tree.Nodes[0].Body, want)
	}
}

func TestParseSetextHeading(t *testing.T) {
	src := []byte("MyLib\n=====\n\nIntro text.\n\nUsage\n-----\n\nCall it.\n")
	tree := Parse(src)

	if len(tree.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2: %+v", len(tree.Nodes), tree.Nodes)
	}
	if tree.Nodes[0].Level != 1 || tree.Nodes[0].Heading != "MyLib" || tree.Nodes[0].Body != "Intro text." {
		t.Errorf("node 0 = %+v", tree.Nodes[0])
	}
	if tree.Nodes[1].Level != 2 || tree.Nodes[1].Heading != "Usage" || tree.Nodes[1].Body != "Call it." {
		t.Errorf("node 1 = %+v", tree.Nodes[1])
	}
}

func TestParseInlineMarkupFlattened(t *testing.T) {
	tree := Parse([]byte("## The `connect` *function*\n\nbody\n"))
	if len(tree.Nodes) != 1 {
		t.Fatalf("nodes = %d", len(tree.Nodes))
	}
	if got := tree.Nodes[0].Heading; got != "The connect function" {
		t.Errorf("heading = %q, want %q", got, "The connect function")
	}
}

func TestParseDeterministic(t *testing.T) {
	src := []byte("intro\n\n# A\n\none\n\n## B\n\ntwo\n\n### C\nthree\n")
	first := Parse(src)
	for range 5 {
		if again := Parse(src); !reflect.DeepEqual(first, again) {
			t.Fatal("Parse is not deterministic for identical input")
		}
	}
}
