// email_test.go

package main

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var errSendFailed = errors.New("send failed")

func TestOrderConfirmationHTML(t *testing.T) {
	order := Order{
		Total: 270,
		Items: []OrderItem{
			{Name: "Teak Chair", Quantity: 3, Price: 90},
		},
	}
	html := orderConfirmationHTML("Asha", order)

	for _, want := range []string{"Asha", "Teak Chair", "× 3", "270.00"} {
		if !strings.Contains(html, want) {
			t.Errorf("confirmation mail missing %q", want)
		}
	}
}

func TestOrderConfirmationHTML_FallbackName(t *testing.T) {
	html := orderConfirmationHTML("", Order{})
	if !strings.Contains(html, "Hi Customer,") {
		t.Error("empty buyer name should fall back to Customer")
	}
}

func TestOrderReturnedHTML_IncludesReason(t *testing.T) {
	html := orderReturnedHTML("Asha", "abc123", "damaged on arrival")
	if !strings.Contains(html, "damaged on arrival") {
		t.Error("return mail should carry the stated reason")
	}
	if !strings.Contains(html, "abc123") {
		t.Error("return mail should carry the order id")
	}
}

func TestPendingOrderReminderHTML(t *testing.T) {
	placed := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	html := pendingOrderReminderHTML("Asha", "abc123", placed)
	if !strings.Contains(html, "01 Aug 2026") {
		t.Errorf("reminder mail should show the order date, got %s", html)
	}
}

func TestSendMail_FailureIsSwallowed(t *testing.T) {
	old := mailer
	defer func() { mailer = old }()

	mailer = &stubMailer{err: errSendFailed}
	sendMail("a@example.com", "subject", "<p>body</p>") // must not panic or propagate

	stub := &stubMailer{}
	mailer = stub
	sendMail("", "subject", "<p>body</p>")
	if stub.count() != 0 {
		t.Error("mail to empty recipient should be skipped")
	}
}
