package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brand = Brand{CompanyName: "Acme", AppName: "Accounts", SupportURL: "https://acme.test/help"}

func TestRenderWelcome(t *testing.T) {
	data := NewEmailData(brand, "user.created", "Maria Silva", "maria@example.com",
		WithTime(time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)))

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Accounts", subject)
	assert.Contains(t, text, "Hi Maria Silva,")
	assert.Contains(t, text, "01 May 2024, 12:30")
	assert.Contains(t, html, "<strong>maria@example.com</strong>")
}

func TestRenderAccountNoticeEscapesHTML(t *testing.T) {
	data := NewEmailData(brand, "user.blocked", "<b>Maria</b>", "maria@example.com",
		WithNotice("Your account was blocked", "Sign-in is disabled."),
		WithStatus("Blocked"))

	subject, text, html, err := Render(AccountNotice, data)
	require.NoError(t, err)

	assert.Equal(t, "Your account was blocked", subject)
	assert.Contains(t, text, "Current status: Blocked")
	assert.NotContains(t, html, "<b>Maria</b>")
	assert.Contains(t, html, "&lt;b&gt;Maria&lt;/b&gt;")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", EmailData{})
	assert.Error(t, err)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "x", defaultFn("x", ""))
	assert.Equal(t, "x", defaultFn("x", nil))
	assert.Equal(t, "x", defaultFn("x", 0))
	assert.Equal(t, "y", defaultFn("x", "y"))
}
