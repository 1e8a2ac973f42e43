package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/menu"
	"restaurant-pos/internal/order"
)

const historySeparator = "─"

func main() {
	quiet := flag.Bool("quiet", false, "Suppress non-error log output")
	flag.Parse()

	level := slog.LevelDebug
	if *quiet {
		level = slog.LevelError
	}
	log := logger.NewWithLevel("pos", level)
	requestID := logger.GenerateRequestID()

	manager := order.NewManager()
	service := order.NewService(manager, log)

	log.Info("service_started", "Restaurant ordering system started", requestID, nil)

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("=== Restaurant Ordering System ===")

	for {
		fmt.Println("\n1. Browse menu")
		fmt.Println("2. View current order")
		fmt.Println("3. Finish order")
		fmt.Println("4. Clear order")
		fmt.Println("5. View history")
		fmt.Println("q. Quit")
		fmt.Print("\nEnter your choice: ")

		input, err := reader.ReadString('\n')
		if err != nil {
			break
		}

		switch strings.TrimSpace(input) {
		case "1":
			browseMenu(reader, manager, log)
		case "2":
			showOrder(manager)
		case "3":
			finishOrder(reader, manager, service)
		case "4":
			manager.Clear()
			fmt.Println("Order cleared.")
		case "5":
			showHistory(manager)
		case "q", "Q", "quit", "exit":
			log.Info("service_stopped", "Restaurant ordering system stopped", requestID, nil)
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
	}
}

// browseMenu lets the user pick a category, an item and a quantity, then
// adds the selection to the current order.
func browseMenu(reader *bufio.Reader, manager *order.Manager, log *logger.Logger) {
	requestID := logger.GenerateRequestID()

	categories := menu.Categories()
	fmt.Println("\nMenu Categories:")
	for i, c := range categories {
		fmt.Printf("%d. %s\n", i+1, c.DisplayName)
	}

	choice, ok := promptIndex(reader, "Select category (blank to cancel): ", len(categories))
	if !ok {
		return
	}

	category, err := menu.Lookup(categories[choice].DisplayName)
	if err != nil {
		log.Error("category_lookup_failed", "Failed to look up category", requestID, err, nil)
		fmt.Println("Category not found.")
		return
	}

	fmt.Printf("\n%s Menu:\n", category.DisplayName)
	for i, item := range category.Items {
		fmt.Printf("%d. %s\n", i+1, item)
	}

	itemChoice, ok := promptIndex(reader, "Select item (blank to cancel): ", len(category.Items))
	if !ok {
		fmt.Println("Please select an item!")
		log.Debug("add_rejected", "Add to order attempted without selection", requestID, map[string]interface{}{
			"reason": order.ErrNoSelection.Error(),
		})
		return
	}
	item := category.Items[itemChoice]

	fmt.Print("Quantity: ")
	qtyInput, _ := reader.ReadString('\n')
	qty, err := strconv.Atoi(strings.TrimSpace(qtyInput))
	if err != nil || qty <= 0 {
		fmt.Println("Quantity must be a positive number.")
		return
	}

	manager.AddItem(item, qty)
	log.Debug("item_added", "Item added to order", requestID, map[string]interface{}{
		"item":     item.Name,
		"quantity": qty,
	})
	fmt.Printf("Added: %s x%d\n", item.Name, qty)
}

func showOrder(manager *order.Manager) {
	lines := manager.CurrentOrder()
	if len(lines) == 0 {
		fmt.Println("Your order is empty.")
		return
	}
	fmt.Println("\nYour Order:")
	for _, line := range lines {
		fmt.Println(line)
	}
	fmt.Printf("Total: $%s\n", manager.CalculateTotal().StringFixed(2))
}

// finishOrder walks the checkout dialogs. Abandoning the dining-type or
// table selection aborts with no side effects; skipping the discount
// selection proceeds with no discount.
func finishOrder(reader *bufio.Reader, manager *order.Manager, service *order.Service) {
	if manager.IsEmpty() {
		fmt.Println("Your order is empty!")
		return
	}

	fmt.Println("\n1. Dine-In")
	fmt.Println("2. Take-Out")
	typeChoice, ok := promptIndex(reader, "Choose dining option (blank to cancel): ", 2)
	if !ok {
		return
	}
	dineIn := typeChoice == 0

	table := ""
	if dineIn {
		tables := order.Tables()
		fmt.Println()
		for i, t := range tables {
			fmt.Printf("%d. %s\n", i+1, t)
		}
		tableChoice, ok := promptIndex(reader, "Select table (blank to cancel): ", len(tables))
		if !ok {
			return
		}
		table = tables[tableChoice]
	}

	fmt.Println("\n1. No Discount")
	fmt.Println("2. 10% Off")
	fmt.Println("3. 20% Off")
	discount := order.DiscountNone
	if choice, ok := promptIndex(reader, "Apply discount? (blank for none): ", 3); ok {
		discount = order.Discount(choice)
	}

	result, err := service.Checkout(order.CheckoutRequest{
		DineIn:   dineIn,
		Table:    table,
		Discount: discount,
	})
	if err != nil {
		if errors.Is(err, order.ErrEmptyOrder) {
			fmt.Println("Your order is empty!")
			return
		}
		fmt.Printf("Checkout failed: %v\n", err)
		return
	}

	fmt.Printf("\nOrder Completed - %s\n\n", result.OrderNumber)
	fmt.Println(result.Receipt)
}

func showHistory(manager *order.Manager) {
	records := manager.History()
	if len(records) == 0 {
		fmt.Println("No order history yet.")
		return
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}
	rule := strings.Repeat(historySeparator, 50)
	fmt.Println("\n" + strings.Join(texts, "\n\n"+rule+"\n\n"))
}

// promptIndex reads a 1-based selection and returns it zero-based. Blank
// input, "q" or an out-of-range number reports no selection.
func promptIndex(reader *bufio.Reader, prompt string, size int) (int, bool) {
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		return 0, false
	}
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || trimmed == "q" {
		return 0, false
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 1 || n > size {
		return 0, false
	}
	return n - 1, true
}
