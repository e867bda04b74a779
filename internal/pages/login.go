package pages

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/goliatone/go-formgrid/internal/logging"
	"github.com/goliatone/go-formgrid/pkg/form"
	"github.com/goliatone/go-formgrid/pkg/model"
	"github.com/goliatone/go-formgrid/pkg/render"
	"github.com/goliatone/go-formgrid/pkg/validation"
)

const (
	// LoginSuccessNotice is shown after a successful sign in.
	LoginSuccessNotice = "Login successful"
	// LoginFailureMessage is shown when the credentials do not match.
	LoginFailureMessage = "Invalid email or password"
)

// ErrInvalidCredentials is returned by an Authenticator that rejects the
// submitted pair. Its user message is LoginFailureMessage.
var ErrInvalidCredentials error = credentialsError{}

type credentialsError struct{}

func (credentialsError) Error() string       { return "invalid credentials" }
func (credentialsError) UserMessage() string { return LoginFailureMessage }

// Credentials is the login form payload.
type Credentials struct {
	Email    string
	Password string `masq:"secret"`
	Remember bool
}

// Authenticator checks a credential pair.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) error
}

// StaticAuthenticator accepts exactly one credential pair after an artificial
// delay. The delay is cut short when ctx is cancelled.
type StaticAuthenticator struct {
	Email    string
	Password string `masq:"secret"`
	Delay    time.Duration
}

// Authenticate implements Authenticator.
func (a StaticAuthenticator) Authenticate(ctx context.Context, creds Credentials) error {
	if a.Delay > 0 {
		timer := time.NewTimer(a.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return goerr.Wrap(ctx.Err(), "login aborted")
		case <-timer.C:
		}
	}
	if creds.Email != a.Email || creds.Password != a.Password {
		return goerr.Wrap(ErrInvalidCredentials, "login rejected", goerr.V("email", creds.Email))
	}
	return nil
}

// LoginState is the per-session state of the login page. Error persists until
// the next submit attempt; Notice is shown once.
type LoginState struct {
	Error  string
	Notice string
	Email  string
}

// LoginFields is the login form schema.
func LoginFields() []model.Field {
	return []model.Field{
		{
			Name:  "email",
			Label: "Email",
			Kind:  model.KindText,
			Rules: model.Rules{
				Required: model.RequiredMessage("Email is required"),
				Pattern:  `^[^\s@]+@[^\s@]+\.[^\s@]+$`,
			},
			Hints: map[string]string{"autocomplete": "email", "placeholder": "you@example.com"},
		},
		{
			Name:  "password",
			Label: "Password",
			Kind:  model.KindPassword,
			Rules: model.Rules{
				Required:  model.RequiredMessage("Password is required"),
				MinLength: model.Int(6),
			},
			Hints: map[string]string{"autocomplete": "current-password", "placeholder": "••••••••"},
		},
		{
			Name:    "remember",
			Label:   "Remember me",
			Kind:    model.KindCheckbox,
			Default: true,
		},
	}
}

// Login is the sign in page.
type Login struct {
	auth Authenticator
	form *form.Form
}

// NewLogin builds the login page over auth.
func NewLogin(auth Authenticator) *Login {
	return &Login{
		auth: auth,
		form: form.New(LoginFields(), form.WithID("login"), form.WithAction("POST", PathLogin)),
	}
}

// Defaults returns the starting values, prefilled with email when known.
func (p *Login) Defaults(email string) model.Values {
	values := p.form.Defaults()
	if email != "" {
		values["email"] = email
	}
	return values
}

// LoginResult is the outcome of a login submission.
type LoginResult struct {
	Submission form.Submission
	// Error is the form level message for rejected credentials.
	Error string
}

// Submit validates the payload and, when valid, authenticates it. Rejected
// credentials are reported through LoginResult.Error; the returned error is
// reserved for failures other than a mismatch.
func (p *Login) Submit(ctx context.Context, payload url.Values) (LoginResult, error) {
	submission, err := p.form.Submit(ctx, payload, func(ctx context.Context, values model.Values) error {
		creds := Credentials{
			Email:    values.String("email"),
			Password: values.String("password"),
			Remember: values.Bool("remember"),
		}
		logging.Default().Info("login attempt", "credentials", creds)
		return p.auth.Authenticate(ctx, creds)
	})
	result := LoginResult{Submission: submission}
	if err == nil {
		return result, nil
	}
	if errors.Is(err, ErrInvalidCredentials) {
		result.Error = form.ErrorMessage(err)
		return result, nil
	}
	return result, err
}

// LoginView is what the login page displays.
type LoginView struct {
	Values model.Values
	Errors validation.Errors
	Error  string
	Notice string
}

// Login renders the login page body.
func (v *Views) Login(ctx context.Context, page *Login, view LoginView, hidden map[string]string) (string, error) {
	values := view.Values
	if values == nil {
		values = page.form.Defaults()
	}
	// Passwords are never echoed back into the page.
	values = values.Clone()
	values["password"] = ""

	markup, err := v.renderForm(ctx, page.form.Model(), render.RenderOptions{
		Values:       values,
		Errors:       view.Errors.Lists(),
		ErrorMessage: view.Error,
		Notice:       view.Notice,
		SubmitLabel:  "Sign in",
		Layout:       render.LayoutStack,
		Hidden:       hidden,
	})
	if err != nil {
		return "", err
	}
	return v.execute("templates/login.tmpl", "login", map[string]any{
		"heading": "Welcome back",
		"form":    markup,
	})
}
