package mailer

import (
	"bytes"
	"html/template"

	"github.com/drivesphere/backend/pkg/queue"
)

// InviteSubject is the subject line for company and driver invites.
const InviteSubject = "You've been invited to DriveSphere 🚛"

// SuperadminInviteSubject is the subject line for superadmin invites.
const SuperadminInviteSubject = "Your DriveSphere superadmin invitation"

var inviteTmpl = template.Must(template.New("invite").Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:24px;">
  <h2 style="color:#1a1a2e;">You've been invited to DriveSphere 🚛</h2>
  {{if .CompanyName}}<p>You have been invited to join <strong>{{.CompanyName}}</strong> on DriveSphere.</p>{{end}}
  {{if .CustomMessage}}<p style="border-left:3px solid #4a6cf7;padding-left:12px;color:#555;">{{.CustomMessage}}</p>{{end}}
  <p>Click the button below to set up your account:</p>
  <p style="text-align:center;margin:32px 0;">
    <a href="{{.InviteLink}}" style="background:#4a6cf7;color:#fff;padding:12px 28px;border-radius:6px;text-decoration:none;font-weight:bold;">Accept Invitation</a>
  </p>
  <p style="color:#888;font-size:12px;">If the button does not work, copy this link into your browser:<br>{{.InviteLink}}</p>
</div>`))

var superadminTmpl = template.Must(template.New("superadmin").Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:24px;">
  <h2 style="color:#1a1a2e;">DriveSphere superadmin invitation</h2>
  <p>You have been invited as a DriveSphere superadmin{{if .PackageID}} on package <strong>{{.PackageID}}</strong>{{end}}.</p>
  <p style="text-align:center;margin:32px 0;">
    <a href="{{.SignupURL}}" style="background:#4a6cf7;color:#fff;padding:12px 28px;border-radius:6px;text-decoration:none;font-weight:bold;">Accept Invitation</a>
  </p>
  <p style="color:#888;font-size:12px;">If the button does not work, copy this link into your browser:<br>{{.SignupURL}}</p>
</div>`))

// RenderInvite renders the email body for an invite job payload.
func RenderInvite(payload queue.InviteEmailPayload) Message {
	var buf bytes.Buffer
	switch payload.EmailType {
	case "superadmin_invite":
		_ = superadminTmpl.Execute(&buf, payload)
		return Message{Subject: SuperadminInviteSubject, HTML: buf.String()}
	default:
		_ = inviteTmpl.Execute(&buf, payload)
		return Message{Subject: InviteSubject, HTML: buf.String()}
	}
}
