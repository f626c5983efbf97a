package structured

import (
	"fmt"
	"io"
)

type CoffeeMenuItem struct {
	Category    string `json:"category"`
	Item        string `json:"item"`
	Description string `json:"description"`
	Price       string `json:"price,omitempty"`
}

type CoffeeMenu struct {
	Items []CoffeeMenuItem `json:"items"`
}

const SampleMenuText = `
Espresso Drinks
- Espresso: A strong coffee brewed by forcing hot water under pressure through finely ground coffee beans. $2.99
- Cappuccino: Espresso with steamed milk and a layer of foam. $3.99

Cold Brews
- Cold Brew: Coffee brewed cold for a smooth, rich flavor. $4.99
- Nitro Cold Brew: Cold brew infused with nitrogen for a creamy texture. $5.99
`

// MenuPrompt asks the model to turn raw menu text into a CoffeeMenu.
func MenuPrompt(raw string) string {
	return fmt.Sprintf(`You are a menu parser. Convert the following raw text from a coffee menu into structured JSON with the fields:
- category
- item
- description
- price (if available)

Here is the coffee menu text:
---
%s
---`, raw)
}

func PrintMenu(w io.Writer, menu CoffeeMenu) {
	for _, item := range menu.Items {
		fmt.Fprintf(w, "Category: %s\n", item.Category)
		fmt.Fprintf(w, "Item: %s\n", item.Item)
		fmt.Fprintf(w, "Description: %s\n", item.Description)
		fmt.Fprintf(w, "Price: %s\n", item.Price)
		fmt.Fprintln(w)
	}
}
