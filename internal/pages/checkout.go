package pages

import (
	"github.com/advantage-qa/aos-e2e/internal/browser"
)

// Checkout locators
var (
	AddressInput        = browser.CSS(`[name="address"]`)
	CountrySelect       = browser.CSS(`[name="countryListbox"]`)
	CityInput           = browser.CSS(`input[name="city"]`)
	StateInput          = browser.CSS(`input[name="state_/_province_/_region"]`)
	ZipCodeInput        = browser.CSS(`[name="postal_code"]`)
	CheckoutPopupButton = browser.CSS(`[name="check_out_btn"]`)
	CheckoutButton      = browser.CSS(`#checkOutButton[name="check_out_btn"]`)
	EditShippingLink    = browser.CSS(`[translate="Edit_shipping_Details"]`)
	NextButton          = browser.CSS("#next_btn")
	SafePayUsername     = browser.CSS(`[name="safepay_username"]`)
	SafePayPassword     = browser.CSS(`[name="safepay_password"]`)
	PayNowButton        = browser.CSS("#pay_now_btn_SAFEPAY")
)

// ShippingAddress is the shipping details form content
type ShippingAddress struct {
	Address string
	City    string
	State   string
	ZipCode string
	Country string
}

// CheckoutPage drives the order payment flow
type CheckoutPage struct {
	page browser.Page
}

// NewCheckoutPage creates a checkout page object
func NewCheckoutPage(page browser.Page) *CheckoutPage {
	return &CheckoutPage{page: page}
}

// ProceedToCheckout hovers the cart and uses the popup's checkout button when
// shown, the cart page's button otherwise
func (c *CheckoutPage) ProceedToCheckout() error {
	if err := c.page.Hover(MenuCart); err != nil {
		return err
	}
	visible, err := c.page.IsVisible(CheckoutPopupButton.First())
	if err != nil {
		return err
	}
	if visible {
		return c.page.Click(CheckoutPopupButton.First())
	}
	return c.page.Click(CheckoutButton)
}

// FillShippingAddress fills the shipping form and moves to payment
func (c *CheckoutPage) FillShippingAddress(addr ShippingAddress) error {
	if err := c.page.SelectOptionByLabel(CountrySelect, addr.Country); err != nil {
		return err
	}
	if err := fillAll(c.page, []formField{
		{CityInput, addr.City},
		{AddressInput, addr.Address},
		{StateInput, addr.State},
		{ZipCodeInput, addr.ZipCode},
	}); err != nil {
		return err
	}
	return c.page.Click(NextButton.Last())
}

// FillPaymentInfo pays with SafePay credentials
func (c *CheckoutPage) FillPaymentInfo(username, password string) error {
	if err := fillAll(c.page, []formField{
		{SafePayUsername, username},
		{SafePayPassword, password},
	}); err != nil {
		return err
	}
	return c.page.Click(PayNowButton)
}

// EditShippingDetails reopens the shipping form
func (c *CheckoutPage) EditShippingDetails() error {
	return c.page.Click(EditShippingLink)
}
