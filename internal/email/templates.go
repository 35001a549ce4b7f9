package email

import (
	"bytes"
	"html/template"
)

const (
	subjectOrderConfirmation = "Your repair request is booked"
	subjectOrderCompleted    = "Your repair is complete"
)

type orderEmailData struct {
	CustomerName  string
	ApplianceName string
	ServiceDate   string
}

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Parse(`
<html><body>
<p>Hi {{.CustomerName}},</p>
<p>Your repair request for <strong>{{.ApplianceName}}</strong> is booked for {{.ServiceDate}}.
A technician has been assigned and will confirm shortly.</p>
<p>— FixServe</p>
</body></html>`))

var orderCompletedTmpl = template.Must(template.New("order_completed").Parse(`
<html><body>
<p>Hi {{.CustomerName}},</p>
<p>The repair of your <strong>{{.ApplianceName}}</strong> is complete. Thank you for choosing FixServe.</p>
<p>— FixServe</p>
</body></html>`))

func renderOrderEmail(tmpl *template.Template, data orderEmailData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
