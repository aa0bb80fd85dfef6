package input_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/ja-he/narrate/internal/control/action"
	"github.com/ja-he/narrate/internal/input"
)

func TestConfigKeyspecToKeys(t *testing.T) {

	t.Run("valid", func(t *testing.T) {
		expectKeys := func(s input.Keyspec, expected []input.Key) {
			t.Helper()
			keys, err := input.ConfigKeyspecToKeys(s)
			if err != nil {
				t.Fatalf("unexpected error on valid spec '%s': %s", s, err.Error())
			}
			if diff := cmp.Diff(expected, keys); diff != "" {
				t.Errorf("keys for '%s' differ (-want +got):\n%s", s, diff)
			}
		}

		t.Run("empty", func(t *testing.T) {
			expectKeys("", []input.Key{})
		})
		t.Run("single", func(t *testing.T) {
			expectKeys("x", []input.Key{input.RuneKey('x')})
		})
		t.Run("special", func(t *testing.T) {
			expectKeys("<c-a>", []input.Key{{Key: tcell.KeyCtrlA}})
			expectKeys("<space>", []input.Key{input.RuneKey(' ')})
			expectKeys("<UP>", []input.Key{{Key: tcell.KeyUp}})
			expectKeys("<f1>", []input.Key{{Key: tcell.KeyF1}})
			expectKeys("<s-tab>", []input.Key{{Key: tcell.KeyBacktab}})
		})
		t.Run("sequence", func(t *testing.T) {
			expectKeys("xyz", []input.Key{input.RuneKey('x'), input.RuneKey('y'), input.RuneKey('z')})
			expectKeys("x<c-w>z", []input.Key{input.RuneKey('x'), {Key: tcell.KeyCtrlW}, input.RuneKey('z')})
			expectKeys("<home>ä", []input.Key{{Key: tcell.KeyHome}, input.RuneKey('ä')})
		})
	})

	t.Run("invalid", func(t *testing.T) {
		expectInvalid := func(s input.Keyspec) {
			t.Helper()
			keys, err := input.ConfigKeyspecToKeys(s)
			if err == nil {
				t.Errorf("unexpectedly no err on invalid spec '%s'", s)
			}
			if keys != nil {
				t.Error("unexpected key seq on invalid spec:", keys)
			}
		}

		t.Run("unopened special", func(t *testing.T) {
			expectInvalid("c-w>")
		})
		t.Run("unclosed special (EOL)", func(t *testing.T) {
			expectInvalid("<c-w")
		})
		t.Run("unclosed special (double open)", func(t *testing.T) {
			expectInvalid("<c-w<c-a>")
		})
		t.Run("wrong delimiter in special", func(t *testing.T) {
			expectInvalid("<c+a>")
		})
		t.Run("unknown identifier", func(t *testing.T) {
			expectInvalid("<hyper-x>")
		})
	})

}

func TestConfigKeyspecToKey(t *testing.T) {
	k, err := input.ConfigKeyspecToKey("<down>")
	if err != nil {
		t.Fatal("unexpected error:", err.Error())
	}
	if (k != input.Key{Key: tcell.KeyDown}) {
		t.Error("expected <down>, got", k.ToDebugString())
	}

	for _, spec := range []input.Keyspec{"", "ab", "<c-a>x"} {
		if _, err := input.ConfigKeyspecToKey(spec); err == nil {
			t.Errorf("no error for keyspec '%s' which is not a single key", spec)
		}
	}
}

func TestToConfigIdentifierString(t *testing.T) {
	cases := map[input.Key]string{
		input.RuneKey('q'):         "q",
		input.RuneKey(' '):         "<space>",
		{Key: tcell.KeyEnter}:      "<cr>",
		{Key: tcell.KeyTab}:        "<tab>",
		{Key: tcell.KeyBackspace2}: "<bs>",
		{Key: tcell.KeyCtrlR}:      "<c-r>",
		{Key: tcell.KeyPgDn}:       "<pgdn>",
	}
	for k, expected := range cases {
		if actual := input.ToConfigIdentifierString(k); actual != expected {
			t.Errorf("expected '%s' for %s, got '%s'", expected, k.ToDebugString(), actual)
		}
	}

	t.Run("round trip", func(t *testing.T) {
		for _, spec := range []input.Keyspec{"<esc>", "<left>", "<end>", "<c-z>", "x"} {
			k, err := input.ConfigKeyspecToKey(spec)
			if err != nil {
				t.Fatal(err.Error())
			}
			if input.ToConfigIdentifierString(k) != string(spec) {
				t.Errorf("'%s' did not survive round trip, got '%s'", spec, input.ToConfigIdentifierString(k))
			}
		}
	})
}

func TestNewNode(t *testing.T) {
	n := input.NewNode()
	if n.Children == nil {
		t.Error("node.Children not initialized")
	}
	if len(n.Children) != 0 {
		t.Error("node.Children not empty")
	}
	if n.Child(input.RuneKey('x')) != nil {
		t.Error("new node has a child for 'x'")
	}
}

func TestConstructInputTree(t *testing.T) {

	t.Run("empty map produces single-node tree", func(t *testing.T) {
		emptyTree, err := input.ConstructInputTree(make(map[input.Keyspec]action.Action))
		if err != nil {
			t.Fatal(err.Error())
		}
		validateNewlyCreatedTree(t, emptyTree)
		if emptyTree.ProcessInput(input.RuneKey('x')) {
			t.Error("empty tree claims to apply (non-added) input")
		}
	})

	t.Run("sequences", func(t *testing.T) {
		xyzCalled := false
		ctrlaCalled := false
		tree, err := input.ConstructInputTree(map[input.Keyspec]action.Action{
			"xyz":   &DummyAction{F: func() { xyzCalled = true }},
			"<c-a>": &DummyAction{F: func() { ctrlaCalled = true }},
		})
		if err != nil {
			t.Fatal(err.Error())
		}
		validateNewlyCreatedTree(t, tree)

		if tree.ProcessInput(input.Key{}) {
			t.Error("tree processes non-added input")
		}
		if !tree.ProcessInput(input.RuneKey('x')) || !tree.CapturesInput() {
			t.Error("tree fails to enter sequence on 'x'")
		}
		if tree.ProcessInput(input.Key{Key: tcell.KeyCtrlA}) {
			t.Error("tree processes <c-a> in the middle of another sequence")
		}
		if tree.CapturesInput() {
			t.Error("tree still captures after a broken sequence")
		}
		if !tree.ProcessInput(input.Key{Key: tcell.KeyCtrlA}) || !ctrlaCalled {
			t.Error("<c-a> not applied")
		}
		for _, r := range "xyz" {
			if !tree.ProcessInput(input.RuneKey(r)) {
				t.Errorf("tree fails to process '%c'", r)
			}
		}
		if !xyzCalled {
			t.Error("xyz action not applied")
		}
		if tree.CapturesInput() {
			t.Error("tree claims to capture input after complete sequence")
		}
	})

	t.Run("Reset abandons partial sequence", func(t *testing.T) {
		tree, err := input.ConstructInputTree(map[input.Keyspec]action.Action{"ab": &DummyAction{}})
		if err != nil {
			t.Fatal(err.Error())
		}
		tree.ProcessInput(input.RuneKey('a'))
		tree.Reset()
		validateNewlyCreatedTree(t, tree)
	})

	t.Run("invalid keyspec errors", func(t *testing.T) {
		tree, err := input.ConstructInputTree(map[input.Keyspec]action.Action{"<asdf": &DummyAction{}})
		if err == nil {
			t.Error("nil error despite invalid keyspec")
		}
		if tree != nil {
			t.Error("non-nil tree despite invalid keyspec")
		}
	})

	t.Run("conflicting keyspecs error", func(t *testing.T) {
		_, err := input.ConstructInputTree(map[input.Keyspec]action.Action{
			"g":  &DummyAction{},
			"gg": &DummyAction{},
		})
		if err == nil {
			t.Error("nil error despite 'g' being a prefix of 'gg'")
		}
	})

	t.Run("empty keyspec errors", func(t *testing.T) {
		_, err := input.ConstructInputTree(map[input.Keyspec]action.Action{"": &DummyAction{S: "nothing"}})
		if err == nil {
			t.Error("nil error despite empty keyspec")
		}
	})

}

func TestGetHelp(t *testing.T) {
	t.Run("Tree.GetHelp", func(t *testing.T) {
		tree, err := input.ConstructInputTree(
			map[input.Keyspec]action.Action{
				"a":     &DummyAction{S: "A"},
				"bc":    &DummyAction{S: "BC"},
				"<c-r>": &DummyAction{S: "help"},
			},
		)
		if err != nil {
			t.Fatal("unexpectedly tree construction failed while testing help")
		}
		expected := input.Help{"a": "A", "bc": "BC", "<c-r>": "help"}
		if diff := cmp.Diff(expected, tree.GetHelp()); diff != "" {
			t.Errorf("help differs (-want +got):\n%s", diff)
		}
	})
	t.Run("Node.GetHelp", func(t *testing.T) {
		if help := input.NewNode().GetHelp(); help == nil || len(help) != 0 {
			t.Error("expected empty non-nil help from empty node, got", help)
		}
		if help := input.NewLeaf(&DummyAction{}).GetHelp(); len(help) != 1 {
			t.Error("expected one help result from leaf")
		}
	})
	t.Run("HelpEntries", func(t *testing.T) {
		entries := input.HelpEntries(input.Help{"x": "ex", "<c-a>": "ctrl", "b": "bee"})
		expected := []input.HelpEntry{
			{Keys: "<c-a>", Description: "ctrl"},
			{Keys: "b", Description: "bee"},
			{Keys: "x", Description: "ex"},
		}
		if diff := cmp.Diff(expected, entries); diff != "" {
			t.Errorf("entries differ (-want +got):\n%s", diff)
		}
		if len(input.HelpEntries(nil)) != 0 {
			t.Error("entries for nil help not empty")
		}
	})
}

func validateNewlyCreatedTree(t *testing.T, newlyCreated *input.Tree) {
	t.Helper()

	if newlyCreated.Root == nil || newlyCreated.Current == nil {
		t.Error("either root or current is nil on newly created tree:", newlyCreated.Root, ",", newlyCreated.Current)
	}
	if newlyCreated.Root != newlyCreated.Current {
		t.Error("root and current differ on newly created tree:", newlyCreated.Root, ",", newlyCreated.Current)
	}
	if newlyCreated.CapturesInput() {
		t.Error("newly created tree claims to capture input")
	}
}

// to avoid depending on 'action' functions
type DummyAction struct {
	F func()
	S string
}

func (d *DummyAction) Do() {
	if d.F != nil {
		d.F()
	}
}
func (d *DummyAction) Explain() string { return d.S }
