package pages

import (
	"github.com/advantage-qa/aos-e2e/internal/browser"
)

// Register page locators
var (
	RegisterUsername        = browser.CSS(`[name="usernameRegisterPage"]`)
	RegisterEmail           = browser.CSS(`[name="emailRegisterPage"]`)
	RegisterPassword        = browser.CSS(`[name="passwordRegisterPage"]`)
	RegisterConfirmPassword = browser.CSS(`[name="confirm_passwordRegisterPage"]`)
	RegisterFirstName       = browser.CSS(`[name="first_nameRegisterPage"]`)
	RegisterLastName        = browser.CSS(`[name="last_nameRegisterPage"]`)
	IAgreeCheckbox          = browser.CSS(`[name="i_agree"]`)
	RegisterButton          = browser.CSS("#register_btn")

	// The login popup stays in the DOM, so generic email and password
	// inputs can match twice
	emailInputs    = browser.CSS(`input[type="email"], input[name*="email" i]`)
	passwordInputs = browser.CSS(`input[type="password"], input[name*="password" i]`)
)

// RegisterPage is the account creation form
type RegisterPage struct {
	page browser.Page
}

// NewRegisterPage creates a register page object
func NewRegisterPage(page browser.Page) *RegisterPage {
	return &RegisterPage{page: page}
}

// Open loads the register route
func (r *RegisterPage) Open() error {
	return r.page.Navigate("/#/register")
}

// FillUsername fills the first username field
func (r *RegisterPage) FillUsername(username string) error {
	return r.page.Fill(RegisterUsername.First(), username)
}

// FillEmail fills the register email field, which is the second email input
// when the login popup's input is also present
func (r *RegisterPage) FillEmail(email string) error {
	count, err := r.page.Count(emailInputs)
	if err != nil {
		return err
	}
	if count > 1 {
		return r.page.Fill(emailInputs.At(1), email)
	}
	return r.page.Fill(emailInputs.First(), email)
}

// FillPassword fills the first password input
func (r *RegisterPage) FillPassword(password string) error {
	return r.page.Fill(passwordInputs.First(), password)
}

// FillConfirmPassword fills the last password input. It does nothing when
// only one password input exists.
func (r *RegisterPage) FillConfirmPassword(password string) error {
	count, err := r.page.Count(passwordInputs)
	if err != nil {
		return err
	}
	if count < 2 {
		return nil
	}
	return r.page.Fill(passwordInputs.At(count-1), password)
}

// ClickRegister submits the form
func (r *RegisterPage) ClickRegister() error {
	return r.page.Click(RegisterButton)
}

// Registration holds the values typed into the register form
type Registration struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// FillRegistrationForm fills the named fields and accepts the terms
func (r *RegisterPage) FillRegistrationForm(reg Registration) error {
	steps := []formField{
		{RegisterUsername, reg.Username},
		{RegisterEmail, reg.Email},
		{RegisterPassword, reg.Password},
		{RegisterConfirmPassword, reg.Password},
	}
	if reg.FirstName != "" {
		steps = append(steps, formField{RegisterFirstName, reg.FirstName})
	}
	if reg.LastName != "" {
		steps = append(steps, formField{RegisterLastName, reg.LastName})
	}

	if err := fillAll(r.page, steps); err != nil {
		return err
	}
	return r.page.Click(IAgreeCheckbox)
}
