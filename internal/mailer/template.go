package mailer

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"
)

//go:embed templates/*
var templateFS embed.FS

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/confirmation.html"))
	textTmpl = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/confirmation.txt"))
)

// DateLayout is the human readable submission date used in emails
const DateLayout = "Monday, 2 January 2006 at 3:04 pm"

// Subject of the confirmation email
const Subject = "Application Received - BIS Standards Club VIT Board Enrollment"

const (
	clubName = "BIS Standards Club VIT"
	logoURL  = "https://standardsclubvitv.github.io/image-api/images/logo_club.png"
)

type link struct {
	Label string
	URL   string
}

var socialLinks = []link{
	{"LinkedIn", "https://www.linkedin.com/in/standards-club-vit-b512a829a/"},
	{"Instagram", "https://www.instagram.com/standardsclubvit/"},
	{"YouTube", "https://www.youtube.com/@IndianStandard"},
	{"Website", "https://www.standardsvit.live/"},
}

type templateData struct {
	ClubName      string
	LogoURL       string
	Name          string
	Positions     []string
	ApplicationID string
	SubmittedOn   string
	Year          int
	SupportEmail  string
	Links         []link
}

// FormatDate renders t in loc using DateLayout
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

func render(p ConfirmationParams, supportEmail string, loc *time.Location) (html string, text string, err error) {
	submitted := p.SubmittedAt
	if loc != nil {
		submitted = submitted.In(loc)
	}

	data := templateData{
		ClubName:      clubName,
		LogoURL:       logoURL,
		Name:          p.Name,
		Positions:     p.Positions,
		ApplicationID: p.ApplicationID,
		SubmittedOn:   FormatDate(p.SubmittedAt, loc),
		Year:          submitted.Year(),
		SupportEmail:  supportEmail,
		Links:         socialLinks,
	}

	var hb, tb bytes.Buffer
	if err := htmlTmpl.Execute(&hb, data); err != nil {
		return "", "", fmt.Errorf("render html body: %w", err)
	}
	if err := textTmpl.Execute(&tb, data); err != nil {
		return "", "", fmt.Errorf("render text body: %w", err)
	}
	return hb.String(), tb.String(), nil
}
