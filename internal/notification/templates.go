package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"storefront-be/internal/utils"
)

const brandName = "Chlothzy"

var funcs = map[string]any{
	"inr":  utils.FormatINR,
	"year": func() int { return time.Now().Year() },
}

const layoutHTML = `{{define "layout"}}<div style="font-family: 'Segoe UI', Tahoma, sans-serif; max-width: 600px; margin: 0 auto; border: 1px solid #e5e5e5; border-radius: 8px; overflow: hidden; color: #1C1917;">
  <div style="background-color: #78350F; padding: 30px; text-align: center;">
    <h1 style="color: #ffffff; margin: 0; font-size: 28px; letter-spacing: 2px; font-family: serif;">CHLOTHZY</h1>
  </div>
  <div style="padding: 40px 30px;">{{template "content" .}}</div>
  <div style="background-color: #F9F8F6; padding: 20px; text-align: center; font-size: 12px; color: #78716c;">
    <p style="margin: 5px 0;">&copy; {{year}} Chlothzy Clothing. All Rights Reserved.</p>
  </div>
</div>{{end}}`

const orderPlacedHTML = `{{define "content"}}
<h2 style="margin-top: 0; color: #78350F;">Order Confirmed</h2>
<p>Hello <strong>{{.To.DisplayName}}</strong>,</p>
<p>Thank you for choosing Chlothzy. We've received your order and are getting it ready for shipment.</p>
<div style="margin: 25px 0; padding: 20px; background-color: #fcfaf9; border-left: 4px solid #78350F;">
  <p style="margin: 0;"><strong>Order ID:</strong> #{{.OrderID}}</p>
  <p style="margin: 5px 0 0;"><strong>Est. Delivery:</strong> {{.EstimatedDelivery}}</p>
</div>
<table style="width: 100%; border-collapse: collapse;">
  <tbody>{{range .Items}}
    <tr>
      <td style="padding: 12px 0; border-bottom: 1px solid #f0f0f0;">
        <span style="font-weight: 600; display: block;">{{.Name}}</span>
        <span style="font-size: 12px; color: #666;">Size: {{.Size}} | Qty: {{.Quantity}}</span>
      </td>
      <td style="padding: 12px 0; border-bottom: 1px solid #f0f0f0; text-align: right;">{{inr .FinalPrice}}</td>
    </tr>{{end}}
  </tbody>
</table>
<p style="text-align: right; font-size: 18px;"><strong>Total Amount: {{inr .Total}}</strong></p>
{{end}}`

const statusChangedHTML = `{{define "content"}}
<h2 style="margin-top: 0; color: #78350F;">Order Update</h2>
<p>Hi {{.To.DisplayName}},</p>
<p>The status of your order <strong>#{{.OrderID}}</strong> has been updated:</p>
<div style="background: #fdf8f6; padding: 30px; margin: 25px 0; text-align: center; border: 1px dashed #78350F;">
  <span style="text-transform: uppercase; font-size: 12px; color: #78716c;">Current Status</span>
  <h3 style="margin: 10px 0; color: #78350F; font-size: 24px;">{{.Status}}</h3>
  {{if .EstimatedDelivery}}<p style="margin: 0;">Expected Delivery: <strong>{{.EstimatedDelivery}}</strong></p>{{end}}
</div>
<p style="font-size: 14px;">If you have any questions regarding this change, reply to this email.</p>
{{end}}`

var (
	orderPlacedTmpl   = htmltemplate.Must(htmltemplate.New("placed").Funcs(funcs).Parse(layoutHTML + orderPlacedHTML))
	statusChangedTmpl = htmltemplate.Must(htmltemplate.New("status").Funcs(funcs).Parse(layoutHTML + statusChangedHTML))

	orderPlacedText = texttemplate.Must(texttemplate.New("placed").Funcs(funcs).Parse(
		`Thank you for your order, {{.To.DisplayName}}. Order ID: {{.OrderID}}. Total: {{inr .Total}}. Estimated delivery: {{.EstimatedDelivery}}.`))
	statusChangedText = texttemplate.Must(texttemplate.New("status").Funcs(funcs).Parse(
		`Your order #{{.OrderID}} status is now: {{.Status}}.{{if .EstimatedDelivery}} Expected delivery: {{.EstimatedDelivery}}.{{end}}`))
)

type rendered struct {
	Subject string
	HTML    string
	Text    string
}

func renderOrderPlaced(msg OrderPlaced) (rendered, error) {
	var html, text bytes.Buffer
	if err := orderPlacedTmpl.ExecuteTemplate(&html, "layout", msg); err != nil {
		return rendered{}, fmt.Errorf("render order placed html: %w", err)
	}
	if err := orderPlacedText.Execute(&text, msg); err != nil {
		return rendered{}, fmt.Errorf("render order placed text: %w", err)
	}
	return rendered{
		Subject: fmt.Sprintf("Order Confirmed: #%s | %s", msg.OrderID, brandName),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

func renderStatusChanged(msg StatusChanged) (rendered, error) {
	var html, text bytes.Buffer
	if err := statusChangedTmpl.ExecuteTemplate(&html, "layout", msg); err != nil {
		return rendered{}, fmt.Errorf("render status html: %w", err)
	}
	if err := statusChangedText.Execute(&text, msg); err != nil {
		return rendered{}, fmt.Errorf("render status text: %w", err)
	}
	return rendered{
		Subject: fmt.Sprintf("Update on your %s order #%s", brandName, msg.OrderID),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
