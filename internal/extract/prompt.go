package extract

import (
	"fmt"
	"strings"
)

// Ounces of recoverable silver per unit for the forms the instruction
// teaches the model. Weights reaching the evaluator must already be resolved
// through this vocabulary or stated outright in the post.
const (
	OuncesPerKilo       = 32.15
	OuncesPer90PctFV    = 0.715 // Per $1 face value of 90% coinage
	OuncesPer40PctCoin  = 0.148 // 40% silver half dollar
	OuncesPerWarNickel  = 0.056 // 35% silver war nickel
	OuncesPerFineCoin   = 1.0   // .999 fine rounds and bullion coins
	DefaultShippingCost = 6.0   // Assumed when the post lists variable shipping
)

// premiumSeries are sovereign bullion series that command a collector
// premium over melt.
var premiumSeries = []string{
	"American Silver Eagle",
	"Canadian Maple Leaf",
	"Britannia",
	"Krugerrand",
	"Austrian Philharmonic",
	"Australian Kangaroo",
	"Kookaburra",
	"Libertad",
	"Morgan dollar",
	"Peace dollar",
}

// BuildPrompt assembles the extraction instruction for one listing. It embeds
// the current spot price, the unit-conversion vocabulary, the category and
// quantity rules, and the strict output schema.
func BuildPrompt(title, body string, spot float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are a precious metals listing analyzer.
The current silver spot price is $%.2f per troy ounce.

Analyze the sale post below and extract every priced silver item.

WEIGHT CONVERSION TABLE (troy ounces of silver):
- 1 kilo bar = %.2f oz
- 10 oz bar = 10 oz; 5 oz bar = 5 oz; other bars = their stated weight
- 90%% "junk" silver = %.3f oz per $1.00 of face value
- 40%% silver half dollar = %.3f oz per coin
- 35%% silver war nickel = %.3f oz per coin
- .999 fine round or bullion coin = %.1f oz per coin
`, spot, OuncesPerKilo, OuncesPer90PctFV, OuncesPer40PctCoin, OuncesPerWarNickel, OuncesPerFineCoin)

	fmt.Fprintf(&b, `
CATEGORY RULE:
- "Premium": recognized sovereign bullion series (%s) and any key-date or numismatic coin.
- "Bullion": generic rounds, bars, junk/fractional silver, war nickels.

QUANTITY RULE:
- If the price is explicitly "each", quantity_available is the number offered.
- If one price covers a lot, roll, or tube, quantity_available is 1 no matter how many coins are inside; weight_oz is then the total silver in the lot.

SHIPPING RULE:
- Extract the shipping cost charged once for the whole order. If shipping is variable or unstated, use %.2f.

Return JSON ONLY, exactly this schema:
{
  "shipping_cost": number,
  "items": [
    {
      "name": "string",
      "category": "Premium" or "Bullion",
      "listed_price": number,
      "quantity_available": number,
      "weight_oz": number
    }
  ]
}
weight_oz must be a single resolved number per item, never a formula or expression.
If the post offers no silver items, return {"shipping_cost": 0, "items": []}.

TITLE: %s
BODY:
%s
`, strings.Join(premiumSeries, ", "), DefaultShippingCost, title, body)

	return b.String()
}
