package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeHTML = template.Must(template.New("welcome").Parse(`<!doctype html>
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Welcome, {{.FirstName}}!</h2>
    <p>Your account on {{.AppName}} is ready. Sign in, write your first draft,
    and publish it whenever you like.</p>
    <p style="color:#888;font-size:12px;">You received this email because an
    account was created for {{.Email}}.</p>
  </body>
</html>`))

// Render produces subject, text, and HTML bodies for a known template name.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case "welcome":
		var buf bytes.Buffer
		if err = welcomeHTML.Execute(&buf, data); err != nil {
			return "", "", "", err
		}
		subject = "Welcome aboard"
		text = fmt.Sprintf("Welcome, %v! Your account is ready.", data["FirstName"])
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
