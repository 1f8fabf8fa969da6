// internal/service/notification/application/email.go
package application

import (
	"bytes"
	"fmt"
	"html/template"

	"staybook/internal/service/notification/domain"
)

// 确认邮件正文模板。这份 HTML 同时也是 PDF 附件的渲染源。
var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body>
  <h2>Booking Confirmation {{.ConfirmationNumber}}</h2>
  <p>Thank you for your booking. Your stay details are below.</p>
  <table border="0" cellpadding="4">
    <tr><td><b>Confirmation Number</b></td><td>{{.ConfirmationNumber}}</td></tr>
    <tr><td><b>Hotel Address</b></td><td>{{.HotelAddress}}</td></tr>
    <tr><td><b>Rooms</b></td><td>{{.Rooms}}</td></tr>
    <tr><td><b>Check-in</b></td><td>{{.CheckIn}}</td></tr>
    <tr><td><b>Check-out</b></td><td>{{.CheckOut}}</td></tr>
    <tr><td><b>Total Price</b></td><td>{{.Total}}</td></tr>
  </table>
  <p>We look forward to welcoming you.</p>
</body>
</html>`))

type confirmationView struct {
	ConfirmationNumber string
	HotelAddress       string
	Rooms              string
	CheckIn            string
	CheckOut           string
	Total              string
}

// composeConfirmationEmail 渲染确认邮件的主题和 HTML 正文。
func composeConfirmationEmail(c *domain.BookingConfirmation) (subject, htmlBody string, err error) {
	subject = fmt.Sprintf("Your booking confirmation %s", c.ConfirmationNumber)

	var buf bytes.Buffer
	err = confirmationTemplate.Execute(&buf, confirmationView{
		ConfirmationNumber: c.ConfirmationNumber,
		HotelAddress:       c.HotelAddress,
		Rooms:              c.JoinedRoomDescriptions(),
		CheckIn:            c.CheckIn,
		CheckOut:           c.CheckOut,
		Total:              c.TotalAfterDiscount,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render confirmation email: %w", err)
	}
	return subject, buf.String(), nil
}
