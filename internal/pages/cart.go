package pages

import (
	"github.com/advantage-qa/aos-e2e/internal/browser"
)

// Cart locators
var (
	MenuCart     = browser.CSS("#menuCart")
	ShoppingCart = browser.CSS("#shoppingCart")
	CartItems    = browser.CSS(".productName")
	CartTotal    = browser.CSS(`.cart-total, .total, [class*="total"]`)
)

// CartPage is the shopping cart view
type CartPage struct {
	page browser.Page
}

// NewCartPage creates a cart page object
func NewCartPage(page browser.Page) *CartPage {
	return &CartPage{page: page}
}

// Open clicks the cart menu and waits for the cart
func (c *CartPage) Open() error {
	if err := expectVisible(c.page, MenuCart, defaultWait); err != nil {
		return err
	}
	if err := c.page.Click(MenuCart); err != nil {
		return err
	}
	return expectVisible(c.page, ShoppingCart, defaultWait)
}

// ItemCount returns the number of product rows in the cart
func (c *CartPage) ItemCount() (int, error) {
	return c.page.Count(CartItems)
}

// Total returns the cart total text, or "" when it cannot be read
func (c *CartPage) Total() string {
	text, err := c.page.TextContent(CartTotal.First())
	if err != nil {
		return ""
	}
	return text
}
