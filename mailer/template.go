package mailer

import (
	"html/template"
	"strings"
)

const linkEmailHTML = `<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #1a1a1a; max-width: 480px; margin: 0 auto; padding: 24px;">
	<h2>Sign in to {{.Product}}</h2>
	<p>Click the button below to sign in. This link can be used once and expires shortly.</p>
	<p style="margin: 32px 0;">
		<a href="{{.Link}}" style="background: #1a1a1a; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Sign in</a>
	</p>
	<p style="color: #6b7280; font-size: 14px;">If the button does not work, copy this address into your browser:<br>{{.Link}}</p>
	<p style="color: #6b7280; font-size: 14px;">If you did not request this email, you can safely ignore it. No one can sign in without following the link.</p>
</body>
</html>`

var linkEmailTemplate = template.Must(template.New("magic_link").Parse(linkEmailHTML))

func renderLinkEmail(product, link string) (string, error) {
	var sb strings.Builder
	err := linkEmailTemplate.Execute(&sb, struct {
		Product string
		Link    string
	}{Product: product, Link: link})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
