package mail

import "fmt"

// ResetMessage builds the password-reset email carrying the reset link.
func ResetMessage(from, to, appDomain, token string) Message {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", appDomain, token)

	return Message{
		From:    from,
		To:      to,
		Subject: "Password Reset Request",
		Text:    fmt.Sprintf("You requested a password reset. Use the following link to reset your password: %s", resetLink),
		HTML: fmt.Sprintf(`<p>You requested a password reset.</p>
<p>Use the following link to reset your password:</p>
<a href=%q>%s</a>`, resetLink, resetLink),
	}
}
