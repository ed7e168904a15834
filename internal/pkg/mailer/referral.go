package mailer

import "fmt"

// ReferralEmail builds the message sent to a referee who is asked to
// vouch for an item on a candidate's profile. The link stays valid for
// seven days.
func ReferralEmail(frontendURL, referralName, candidateName, itemLabel, token string) (subject, body string) {
	subject = fmt.Sprintf("%s asked you to verify their %s", candidateName, itemLabel)
	body = fmt.Sprintf(
		"Hi %s,\n\n"+
			"%s listed you as a reference for their %s and asked you to confirm it.\n\n"+
			"You can review and respond here:\n%s/verify/%s\n\n"+
			"This link expires in 7 days. If you don't recognize this request you can ignore this email.\n",
		referralName, candidateName, itemLabel, frontendURL, token,
	)
	return subject, body
}
