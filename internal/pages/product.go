package pages

import (
	"github.com/advantage-qa/aos-e2e/internal/browser"
)

// Product page locators
var (
	AddToCartButton = browser.CSS(`[name="save_to_cart"]`)
	CheckoutPopUp   = browser.CSS("#checkOutPopUp")
)

// ProductPage is a single product's detail page
type ProductPage struct {
	page browser.Page
}

// NewProductPage creates a product page object
func NewProductPage(page browser.Page) *ProductPage {
	return &ProductPage{page: page}
}

// AddToCart adds the product and waits for the cart popup
func (p *ProductPage) AddToCart() error {
	if err := p.page.WaitVisible(AddToCartButton.First(), defaultWait); err != nil {
		return err
	}
	if err := p.page.Click(AddToCartButton.First()); err != nil {
		return err
	}
	return expectVisible(p.page, CheckoutPopUp, popupWait)
}
