package input

import "sort"

// Help maps key sequences (in config identifier form) to the explanation of
// what they do.
type Help = map[string]string

// HelpEntry is a single line of help as presented to a user.
type HelpEntry struct {
	Keys        string
	Description string
}

// HelpEntries returns the entries of the given help map ordered by their key
// sequences.
func HelpEntries(h Help) []HelpEntry {
	result := make([]HelpEntry, 0, len(h))
	for keys, description := range h {
		result = append(result, HelpEntry{Keys: keys, Description: description})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Keys < result[j].Keys })
	return result
}

// GetHelp returns the help for all complete sequences in this tree.
func (t *Tree) GetHelp() Help {
	return t.Root.GetHelp()
}

// GetHelp returns the help for all complete sequences below this node.
func (n *Node) GetHelp() Help {
	result := Help{}

	if n.Action != nil {
		result[""] = n.Action.Explain()
	} else {
		for k, c := range n.Children {
			for partialCombo, explanation := range c.GetHelp() {
				result[ToConfigIdentifierString(k)+partialCombo] = explanation
			}
		}
	}

	return result
}
