package pages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/advantage-qa/aos-e2e/internal/browser"
)

// Home page locators
var (
	UserIcon               = browser.CSS("#hrefUserIcon")
	CreateNewAccount       = browser.CSS(".create-new-account")
	UserMenu               = browser.CSS(`[aria-label="UserMenu"]`)
	CategoryTile           = browser.CSS(".categoryCell")
	UserMenuTitle          = browser.CSS(`[id="loginMiniTitle"]`)
	ProductNameList        = browser.CSS(".productName")
	LoginCloseButton       = browser.CSS(".loginPopUpCloseBtn")
	SpeakersTile           = browser.CSS(`[aria-label="SpeakersCategoryTxt"]`)
	BuyNowButton           = browser.CSS(`[name="buy_now"]`)
	UsernameInOrderPayment = browser.CSS(`[name="usernameInOrderPayment"]`)
	RegistrationButton     = browser.CSS("#registration_btn")
	SignOutLabel           = label("Sign out").Last()
	OurProductsMenu        = browser.CSS(".menu").WithText("OUR PRODUCTS")
)

// HomePage is the storefront landing page with the user menu
type HomePage struct {
	page browser.Page
}

// NewHomePage creates a home page object
func NewHomePage(page browser.Page) *HomePage {
	return &HomePage{page: page}
}

// Open loads the storefront
func (h *HomePage) Open() error {
	return h.page.Navigate("/")
}

// OpenUserMenu clicks the user menu
func (h *HomePage) OpenUserMenu() error {
	return h.page.Click(UserMenu.First())
}

// UserMenuName returns the login name shown on the user menu
func (h *HomePage) UserMenuName() (string, error) {
	text, err := h.page.InnerText(UserMenu.First())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ClickSignUp opens the registration form from the user icon
func (h *HomePage) ClickSignUp() error {
	if err := h.page.Click(UserIcon); err != nil {
		return err
	}
	return h.page.Click(CreateNewAccount)
}

// Logout signs the current user out. The menu animates open, so the sign
// out label is clicked with force after a pause.
func (h *HomePage) Logout() error {
	if err := h.page.WaitVisible(CategoryTile.First(), defaultWait); err != nil {
		return err
	}
	if err := h.OpenUserMenu(); err != nil {
		return err
	}
	sleep(userMenuSettle)
	return h.page.ForceClick(SignOutLabel)
}

// IsUserLoggedIn opens the user menu and reports whether "Sign out" is
// offered. A login popup opened instead is closed again.
func (h *HomePage) IsUserLoggedIn() (bool, error) {
	if err := h.OpenUserMenu(); err != nil {
		return false, err
	}
	loggedIn, err := h.page.IsVisible(SignOutLabel)
	if err != nil {
		return false, err
	}

	count, err := h.page.Count(LoginCloseButton)
	if err != nil {
		return false, err
	}
	if count > 0 {
		visible, err := h.page.IsVisible(LoginCloseButton.First())
		if err != nil {
			return false, err
		}
		if visible {
			if err := h.page.Click(LoginCloseButton.First()); err != nil {
				return false, err
			}
			if err := h.page.WaitHidden(CreateNewAccount, defaultWait); err != nil {
				return false, err
			}
		}
	}
	return loggedIn, nil
}

// SelectFirstProduct opens the speakers category and the first product in it
func (h *HomePage) SelectFirstProduct() error {
	if err := h.page.Click(SpeakersTile); err != nil {
		return err
	}
	if err := h.page.WaitVisible(BuyNowButton.First(), defaultWait); err != nil {
		return err
	}
	return h.page.Click(ProductNameList.First())
}

// ValidateUserLoginOnCheckout checks the login prompt shown to anonymous
// users at checkout
func (h *HomePage) ValidateUserLoginOnCheckout() error {
	var errs []error
	for _, l := range []browser.Locator{
		label("Already have an account?"),
		UsernameInOrderPayment,
		label("New user?"),
		RegistrationButton,
	} {
		if err := expectVisible(h.page, l, popupWait); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("checkout login prompt incomplete: %w", errors.Join(errs...))
	}
	return nil
}
