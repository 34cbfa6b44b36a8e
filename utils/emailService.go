package utils

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"rkzs/config"
)

// SendEmail delivers an HTML email through the configured SMTP server.
// Declared as a variable so tests can stub delivery out.
var SendEmail = func(to []string, subject string, htmlBody string) error {
	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: RKZS Management <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outgoing emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #0078D4; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #333333; line-height: 1.6; }
			.content h2 { color: #0078D4; margin-top: 0; }
			.code-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #0078D4; margin: 20px 0; font-size: 1.5em; letter-spacing: 2px; text-align: center; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>RKZS MANAGEMENT</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; RKZS Management. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendPasswordResetEmail mails the reset code to the account's address.
func SendPasswordResetEmail(email, resetCode string) error {
	subject := "Your RKZS account password reset code"
	body := fmt.Sprintf(`
		<p><strong>Password reset code</strong></p>
		<p>Please use this code to reset the password for the account associated with <strong>%s</strong>.</p>
		<div class="code-box"><strong>%s</strong></div>
		<p>If you don't recognize the account <strong>%s</strong>, you can ignore this email.</p>
		<p>Thanks,<br/><strong>The RKZS team</strong></p>
		<p style="font-size: 0.9em; color: #666;">Date: %s</p>
	`, email, resetCode, email, time.Now().Format("02 Jan 2006 15:04"))

	return SendEmail([]string{email}, subject, getEmailTemplate("Password Reset", body))
}
