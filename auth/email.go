package auth

import "fmt"

const (
	verificationSubject       = "ONGOD PHONE GADGET - Email Verification Code"
	verificationResendSubject = "ONGOD PHONE GADGET - Email Verification Code (Resent)"
)

func verificationBody(code string) string {
	return fmt.Sprintf(`<h2>ONGOD PHONE GADGET</h2>
<p>Your verification code is: <b>%s</b></p>
<p>Please enter this code to complete your registration.</p>
<p>If you did not request this, ignore this email.</p>`, code)
}

func verificationResendBody(code string) string {
	return fmt.Sprintf(`<h2>ONGOD PHONE GADGET</h2>
<p>Your new verification code is: <b>%s</b></p>
<p>Please enter this code to complete your registration.</p>
<p>If you did not request this, ignore this email.</p>`, code)
}
