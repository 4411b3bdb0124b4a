// Package grouping partitions cart items by the store that sells them.
package grouping

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
)

// Selected returns the items that take part in checkout, in cart order.
func Selected(items []domain.CartItem) []domain.CartItem {
	selected := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if item.Selected {
			selected = append(selected, item)
		}
	}
	return selected
}

// GroupByStore groups items by StoreID. Groups follow the order in which each
// store first appears and items keep their cart order inside a group.
// The result never aliases items.
func GroupByStore(items []domain.CartItem) domain.StoreGroups {
	groups := make(domain.StoreGroups, 0)
	index := make(map[uuid.UUID]int)

	for _, item := range items {
		i, ok := index[item.StoreID]
		if !ok {
			i = len(groups)
			index[item.StoreID] = i
			groups = append(groups, domain.StoreGroup{StoreID: item.StoreID})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}
