package pages

import (
	"fmt"
	"regexp"

	"github.com/advantage-qa/aos-e2e/internal/browser"
)

// Login page locators and messages
var (
	UsernameInput      = browser.CSS(`input[name="username"]`)
	PasswordInput      = browser.CSS(`input[name="password"]`)
	SignInButton       = browser.CSS("#sign_in_btn")
	SignInErrorMessage = browser.CSS("#signInResultMessage.invalid")
	RequiredFieldLabel = browser.CSS("label.invalid")
	anyURL             = regexp.MustCompile(`.*`)
)

const (
	InvalidLoginMessage     = "Incorrect user name or password."
	UsernameRequiredMessage = "Username field is required"
	PasswordRequiredMessage = "Password field is required"
)

// LoginPage is the sign in form
type LoginPage struct {
	page browser.Page
}

// NewLoginPage creates a login page object
func NewLoginPage(page browser.Page) *LoginPage {
	return &LoginPage{page: page}
}

// Open loads the login route
func (l *LoginPage) Open() error {
	return l.page.Navigate("/#/login")
}

// Login submits credentials
func (l *LoginPage) Login(username, password string) error {
	if err := l.page.Fill(UsernameInput.First(), username); err != nil {
		return err
	}
	if err := l.page.Fill(PasswordInput.First(), password); err != nil {
		return err
	}
	if err := l.page.Click(SignInButton); err != nil {
		return err
	}
	return l.page.WaitForURL(anyURL, loginSettleWait)
}

// ValidateErrorDisplayed checks the invalid credentials message
func (l *LoginPage) ValidateErrorDisplayed() error {
	if err := l.page.WaitVisible(SignInErrorMessage, defaultWait); err != nil {
		return err
	}
	text, err := l.page.InnerText(SignInErrorMessage)
	if err != nil {
		return err
	}
	if text != InvalidLoginMessage {
		return fmt.Errorf("expected error %q, got %q", InvalidLoginMessage, text)
	}
	return nil
}

// SubmitEmptyForm clears both fields and submits
func (l *LoginPage) SubmitEmptyForm() error {
	if err := l.page.Fill(UsernameInput.First(), ""); err != nil {
		return err
	}
	if err := l.page.Fill(PasswordInput.First(), ""); err != nil {
		return err
	}
	return l.page.ForceClick(SignInButton)
}

// ValidateRequiredFields checks both required field messages
func (l *LoginPage) ValidateRequiredFields() error {
	if err := expectVisible(l.page, RequiredFieldLabel.WithText(UsernameRequiredMessage), popupWait); err != nil {
		return err
	}
	return expectVisible(l.page, RequiredFieldLabel.WithText(PasswordRequiredMessage), popupWait)
}
