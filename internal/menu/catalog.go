package menu

import "strings"

// catalog groups available items by category. Categories keep the order in
// which they were first observed in the snapshot; the dashboard relies on
// that order, so it is part of the contract even though it looks arbitrary.
type catalog struct {
	order  []string
	groups map[string][]Item
}

func newCatalog() *catalog {
	return &catalog{groups: map[string][]Item{}}
}

func (c *catalog) add(item Item) {
	if _, ok := c.groups[item.Category]; !ok {
		c.order = append(c.order, item.Category)
	}
	c.groups[item.Category] = append(c.groups[item.Category], item)
}

func (c *catalog) find(id string) (Item, bool) {
	for _, category := range c.order {
		for _, item := range c.groups[category] {
			if item.ID == id {
				return item, true
			}
		}
	}
	return Item{}, false
}

func (c *catalog) search(term string) []Item {
	term = strings.ToLower(term)
	var matches []Item
	for _, category := range c.order {
		for _, item := range c.groups[category] {
			if strings.Contains(strings.ToLower(item.Name), term) ||
				strings.Contains(strings.ToLower(item.Description), term) {
				matches = append(matches, item)
			}
		}
	}
	return matches
}

func (c *catalog) isEmpty() bool {
	return len(c.order) == 0
}
