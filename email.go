// email.go

package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

type Mailer interface {
	Send(to, subject, html string) error
}

type resendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) Mailer {
	return &resendMailer{client: resend.NewClient(apiKey), from: from}
}

func (m *resendMailer) Send(to, subject, html string) error {
	_, err := m.client.Emails.Send(&resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	return err
}

// sendMail delivers best-effort transactional mail. Failures are logged and
// never affect the outcome of the operation that triggered them.
func sendMail(to, subject, html string) {
	if to == "" {
		return
	}
	if err := mailer.Send(to, subject, html); err != nil {
		log.Printf("email to %s failed: %v", to, err)
	}
}

// ----- Templates -----

func emailShell(body string) string {
	return fmt.Sprintf(`<div style="font-family:Arial,sans-serif;background:#f9f9f9;padding:20px;">
  <div style="max-width:600px;margin:auto;background:#fff;border-radius:8px;padding:20px;border:1px solid #eee;">
    %s
    <hr style="border:none;border-top:1px solid #eee;">
    <p style="font-size:12px;text-align:center;color:#aaa;">&copy; %d NextBuy. All rights reserved.</p>
  </div>
</div>`, body, time.Now().Year())
}

func otpEmailHTML(otp string) string {
	return emailShell(fmt.Sprintf(`<h2 style="text-align:center;color:#4f46e5;">NextBuy</h2>
    <p style="font-size:16px;">Hello,</p>
    <p style="font-size:16px;">Your One-Time Password (OTP) for verification is:</p>
    <div style="text-align:center;margin:20px 0;">
      <span style="font-size:24px;font-weight:bold;color:#4f46e5;">%s</span>
    </div>
    <p style="font-size:14px;color:#666;">This OTP is valid for 10 minutes. Please do not share it with anyone.</p>`, otp))
}

func orderConfirmationHTML(name string, order Order) string {
	if name == "" {
		name = "Customer"
	}
	var items strings.Builder
	for _, it := range order.Items {
		fmt.Fprintf(&items, "<li>%s × %d — ₹%.2f</li>", it.Name, it.Quantity, it.Price*float64(it.Quantity))
	}
	return emailShell(fmt.Sprintf(`<h2 style="text-align:center;color:#4f46e5;">NextBuy</h2>
    <h3>Order Confirmation</h3>
    <p>Hi %s,</p>
    <p>Thank you for shopping with us! Your order has been successfully placed.</p>
    <h4>Order Summary:</h4>
    <ul>%s</ul>
    <p><strong>Total:</strong> ₹%.2f</p>
    <p>We'll notify you when your order ships.</p>`, name, items.String(), order.Total))
}

func orderCancelledHTML(name string, orderID string) string {
	if name == "" {
		name = "Customer"
	}
	return emailShell(fmt.Sprintf(`<h2 style="text-align:center;color:#dc2626;">NextBuy</h2>
    <h3>Order Cancelled</h3>
    <p>Hi %s,</p>
    <p>Your order <b>#%s</b> has been cancelled successfully.</p>
    <p>If this was a mistake, please contact our support team.</p>`, name, orderID))
}

func orderReturnedHTML(name, orderID, reason string) string {
	if name == "" {
		name = "Customer"
	}
	return emailShell(fmt.Sprintf(`<h2 style="text-align:center;color:#16a34a;">NextBuy</h2>
    <h3>Return Initiated</h3>
    <p>Hi %s,</p>
    <p>Your return request for order <b>#%s</b> has been successfully initiated.</p>
    <p>Reason: %s</p>
    <p>Your refund will be processed within 5-7 business days.</p>`, name, orderID, reason))
}

func pendingOrderReminderHTML(name, orderID string, placed time.Time) string {
	if name == "" {
		name = "Customer"
	}
	return emailShell(fmt.Sprintf(`<h2 style="text-align:center;color:#4f46e5;">NextBuy</h2>
    <h3>Your order is on its way</h3>
    <p>Hi %s,</p>
    <p>Your order <b>#%s</b> placed on %s is still being prepared.</p>
    <p>We're sorry for the wait and will update you as soon as it ships.</p>`,
		name, orderID, placed.Format("02 Jan 2006")))
}
