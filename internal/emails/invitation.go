package emails

import (
	"fmt"
	"html/template"
	"strings"
)

// InvitationData fills the group-invitation email template. AcceptURL must
// already embed the signed token and the encoded invitee id.
type InvitationData struct {
	GroupName   string
	InviterName string
	AcceptURL   string
}

var invitationTemplate = template.Must(template.New("group-invitation").Parse(`<!DOCTYPE html>
<html>
<body>
  <p>Hi,</p>
  <p>{{.InviterName}} invited you to join the reading group <strong>{{.GroupName}}</strong>.</p>
  <p><a href="{{.AcceptURL}}">Accept the invitation</a></p>
  <p>If you were not expecting this invitation you can ignore this email.</p>
</body>
</html>
`))

// RenderInvitation renders the HTML body of a group-invitation email.
func RenderInvitation(data InvitationData) (string, error) {
	var body strings.Builder
	if err := invitationTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render invitation email: %w", err)
	}
	return body.String(), nil
}
