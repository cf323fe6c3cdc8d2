package notify

import (
	"fmt"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSNotifier sends transactional texts via Twilio. Credentials come from the
// standard TWILIO_ACCOUNT_SID / TWILIO_AUTH_TOKEN environment variables; an
// empty from-number disables sending.
type SMSNotifier struct {
	client *twilio.RestClient
	from   string
}

func NewSMSNotifier() *SMSNotifier {
	return &SMSNotifier{
		client: twilio.NewRestClient(),
		from:   os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

func (n *SMSNotifier) Enabled() bool {
	return n.from != ""
}

func (n *SMSNotifier) send(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(body)

	_, err := n.client.Api.CreateMessage(params)
	return err
}

// DealInquiry texts a deal owner that a member expressed interest. Callers
// treat a failure here as non-fatal.
func (n *SMSNotifier) DealInquiry(ownerPhone, dealTitle, inquirerName string) error {
	if !n.Enabled() || ownerPhone == "" {
		return nil
	}
	body := fmt.Sprintf("New inquiry on %q from %s. Check your pipeline for details.", dealTitle, inquirerName)
	return n.send(ownerPhone, body)
}
