package cli

import (
	"strings"

	"github.com/amp-labs/rbtset/set"
	"github.com/amp-labs/rbtset/sortable"
	"github.com/manifoldco/promptui"
)

const doneItem = "[Done]"

// prefixSearcher matches items starting with the typed input. Items before
// skip are never matched.
func prefixSearcher(items []string, skip int) func(string, int) bool {
	return func(input string, index int) bool {
		if index < skip || input == "" {
			return false
		}

		return strings.HasPrefix(items[index], input)
	}
}

// Choose shows a single-choice menu and returns the chosen item.
func (p Prompter) Choose(label string, items ...string) (string, error) {
	sel := &promptui.Select{
		Label:    label,
		Items:    items,
		Searcher: prefixSearcher(items, 0),
		Stdin:    p.In,
		Stdout:   p.Out,
	}

	_, value, err := sel.Run()

	return value, err
}

// MultiSelect lets the user pick any number of choices, one per round, until
// "[Done]" is picked or nothing is left. Choices are offered in natural order
// and returned in the order they were given.
func (p Prompter) MultiSelect(label string, choices ...string) ([]string, error) {
	if len(choices) == 0 {
		return nil, nil
	}

	remaining := set.NewRBTreeSet[sortable.NaturalString]()
	for _, c := range choices {
		remaining.Insert(sortable.NaturalString(c))
	}

	picked := set.NewRBTreeSet[sortable.NaturalString]()

	for !remaining.IsEmpty() {
		items := menuItems(remaining)

		sel := &promptui.Select{
			Label:    label,
			Items:    items,
			Searcher: prefixSearcher(items, 1),
			Stdin:    p.In,
			Stdout:   p.Out,
		}

		idx, value, err := sel.Run()
		if err != nil {
			return nil, err
		}

		if idx == 0 {
			break
		}

		picked.Insert(sortable.NaturalString(value))
		remaining.Remove(sortable.NaturalString(value))
	}

	return pickedInOrder(choices, picked), nil
}

func menuItems(remaining *set.RBTreeSet[sortable.NaturalString]) []string {
	items := make([]string, 0, remaining.Len()+1)
	items = append(items, doneItem)

	for v := range remaining.Values() {
		items = append(items, string(v))
	}

	return items
}

func pickedInOrder(choices []string, picked *set.RBTreeSet[sortable.NaturalString]) []string {
	var out []string

	for _, c := range choices {
		if picked.Remove(sortable.NaturalString(c)) {
			out = append(out, c)
		}
	}

	return out
}
