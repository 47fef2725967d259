package mail

import (
	"fmt"
	"strings"
)

const (
	SubjectOrderConfirmation = "Order Confirmation - ShopNext"
	SubjectStatusUpdate      = "Order Status Update - ShopNext"
	SubjectOTP               = "Your OTP for ShopNext"
	SubjectResetOTP          = "OTP for Password Reset"
	SubjectPasswordChanged   = "Password Changed for your ShopNext Account"
	SubjectContactAdmin      = "New Contact Form Submission from ShopNext"
	SubjectContactReply      = "Thank you for reaching out customer care!"
)

func OrderConfirmationBody(total float64, status, paymentID, name, phone, address string) string {
	if paymentID == "" {
		paymentID = "N/A"
	}
	return fmt.Sprintf(`
		<h2>Thank you for your order!</h2>
		<p><strong>Total:</strong> ₹%.2f</p>
		<p><strong>Status:</strong> %s</p>
		<p><strong>Payment ID:</strong> %s</p>
		<hr />
		<p><strong>Shipping to:</strong><br/>
		%s<br/>
		%s<br/>
		%s</p>
	`, total, status, paymentID, name, phone, address)
}

func StatusUpdateBody(userName string, orderID uint, status string) string {
	return fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Your order <strong>#%d</strong> status has been updated to:</p>
		<p style="font-size: 18px;"><strong>%s</strong></p>
		<p>Thank you for shopping with us!</p>
	`, userName, orderID, status)
}

func OTPBody(code string) string {
	return fmt.Sprintf("<h3>Your OTP is: %s</h3>", code)
}

func PasswordChangedBody() string {
	return `
		<h3>Your password has been changed</h3>
		<p>If you haven't done this, please contact Customer Support immediately.</p>
	`
}

func ContactAdminBody(name, email, message string) string {
	return fmt.Sprintf(`
		<h3>Contact Form Submission</h3>
		<p><strong>Name:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Message:</strong><br>%s</p>
	`, name, email, strings.ReplaceAll(message, "\n", "<br>"))
}

func ContactReplyBody(name string) string {
	return fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Thank you for reaching out! We've received your message and would love to get back to your service as soon as possible.</p>
		<p>Best regards,<br>ShopNext Team</p>
	`, name)
}
