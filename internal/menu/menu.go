package menu

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrCategoryNotFound is returned when no category matches the requested
// display name.
var ErrCategoryNotFound = errors.New("category not found")

// Item is a single menu entry. Items are value types; two items are the
// same entry when both name and price match.
type Item struct {
	Name  string
	Price decimal.Decimal
}

// Equal reports whether two items refer to the same menu entry.
func (i Item) Equal(other Item) bool {
	return i.Name == other.Name && i.Price.Equal(other.Price)
}

func (i Item) String() string {
	return fmt.Sprintf("%s - $%s", i.Name, i.Price.StringFixed(2))
}

// Category groups menu items under a display name.
type Category struct {
	DisplayName string
	Items       []Item
}

var catalog = []Category{
	{
		DisplayName: "Main Course",
		Items: []Item{
			{Name: "Steak", Price: mustPrice("25.00")},
			{Name: "Pasta", Price: mustPrice("20.00")},
			{Name: "Pizza", Price: mustPrice("20.00")},
			{Name: "Burger", Price: mustPrice("18.00")},
			{Name: "Grilled Chicken", Price: mustPrice("22.00")},
			{Name: "Salmon", Price: mustPrice("28.00")},
		},
	},
	{
		DisplayName: "Dessert",
		Items: []Item{
			{Name: "Ice Cream", Price: mustPrice("5.00")},
			{Name: "Cheesecake", Price: mustPrice("7.50")},
			{Name: "Brownie", Price: mustPrice("6.50")},
			{Name: "Waffle", Price: mustPrice("8.00")},
		},
	},
	{
		DisplayName: "Drink",
		Items: []Item{
			{Name: "Latte", Price: mustPrice("4.50")},
			{Name: "Milk Tea", Price: mustPrice("4.00")},
			{Name: "Smoothie", Price: mustPrice("5.00")},
			{Name: "Lemonade", Price: mustPrice("3.50")},
		},
	},
}

func mustPrice(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// Categories returns every menu category in display order. The returned
// slices are copies; callers may not mutate the catalog.
func Categories() []Category {
	categories := make([]Category, len(catalog))
	for i, c := range catalog {
		items := make([]Item, len(c.Items))
		copy(items, c.Items)
		categories[i] = Category{DisplayName: c.DisplayName, Items: items}
	}
	return categories
}

// Lookup finds a category by its exact display name.
func Lookup(displayName string) (Category, error) {
	for _, c := range catalog {
		if c.DisplayName == displayName {
			items := make([]Item, len(c.Items))
			copy(items, c.Items)
			return Category{DisplayName: c.DisplayName, Items: items}, nil
		}
	}
	return Category{}, fmt.Errorf("%w: %q", ErrCategoryNotFound, displayName)
}
