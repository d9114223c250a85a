package email

import (
	"errors"
	"strings"
	"testing"

	"github.com/deppfellow/ressourcerie/internal/config"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "em_1"}, nil
}

func TestPreviewDataRendersEveryTemplate(t *testing.T) {
	for name, data := range PreviewData {
		body, err := Render(name, data)
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", name, err)
		}
		if strings.Contains(body, "<no value>") {
			t.Fatalf("%s: template references missing data:\n%s", name, body)
		}
	}
}

func TestSendDemandApprovedEmail(t *testing.T) {
	logger := zerolog.Nop()
	fake := &fakeSender{}
	c := &Client{emails: fake, from: "Ressourcerie <noreply@example.org>", logger: &logger}

	err := c.SendDemandApprovedEmail("camille@example.org", DemandApprovedData{
		MemberName: "Camille <3",
		OfferName:  "Wooden Table",
		OfferID:    12,
		DemandID:   34,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(fake.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(fake.sent))
	}

	req := fake.sent[0]
	if req.To[0] != "camille@example.org" || req.From != c.from {
		t.Fatalf("unexpected request %+v", req)
	}
	if !strings.Contains(req.Subject, "Wooden Table") {
		t.Fatalf("unexpected subject %q", req.Subject)
	}
	if !strings.Contains(req.Html, "Camille &lt;3") || !strings.Contains(req.Html, "Demand #34") {
		t.Fatalf("expected escaped member name and demand id in body:\n%s", req.Html)
	}

	fake.err = errors.New("rate limited")
	if err := c.SendDemandApprovedEmail("camille@example.org", DemandApprovedData{OfferName: "x"}); err == nil {
		t.Fatalf("expected send error")
	}
}

func TestNewClientWithoutKey(t *testing.T) {
	logger := zerolog.Nop()
	if c := NewClient(&config.Config{}, &logger); c != nil {
		t.Fatalf("expected nil client without api key")
	}
}
