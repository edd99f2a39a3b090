// Package report renders an issue list into the alert email bodies.
package report

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/brishavK71/kafka-monitoring/internal/monitor"
)

const timeLayout = "2006-01-02 15:04:05"

// Rendered is the alert in both delivery forms.
type Rendered struct {
	Subject string
	Text    string
	HTML    string
}

type issueView struct {
	Index   int
	Service string
	Status  monitor.Status
	Message string
	Time    string
}

type reportView struct {
	GeneratedAt string
	Count       int
	Issues      []issueView
}

const textTemplate = `KAFKA SERVICES ALERT
Generated at {{.GeneratedAt}}
============================================================

{{.Count}} issue(s) detected:

{{range .Issues}}{{.Index}}. {{.Service}} - {{.Status}}
   {{.Message}}
   Time: {{.Time}}

{{end}}============================================================
Please investigate and resolve these issues as soon as possible.
`

const htmlTemplate = `<html>
<head>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.header { background-color: #d9534f; color: white; padding: 20px; text-align: center; }
.alert { border: 1px solid #d9534f; background-color: #f2dede; margin: 10px 0; padding: 15px; border-radius: 5px; }
.alert-title { font-weight: bold; color: #d9534f; margin-bottom: 5px; }
.timestamp { color: #666; font-size: 0.9em; }
.footer { margin-top: 20px; padding: 10px; background-color: #f5f5f5; font-size: 0.9em; }
</style>
</head>
<body>
<div class="header">
<h1>Kafka Services Alert</h1>
<p>Generated at {{.GeneratedAt}}</p>
</div>
<div style="padding: 20px;">
<h2>Alert Summary</h2>
<p><strong>{{.Count}} issue(s)</strong> detected in your Kafka infrastructure:</p>
{{range .Issues}}<div class="alert">
<div class="alert-title">{{.Service}} - {{.Status}}</div>
<div>{{.Message}}</div>
<div class="timestamp">Time: {{.Time}}</div>
</div>
{{end}}</div>
<div class="footer">
<p>This is an automated alert from your Kafka monitoring agent.</p>
<p>Please investigate and resolve these issues as soon as possible.</p>
</div>
</body>
</html>
`

var (
	textTmpl = texttemplate.Must(texttemplate.New("text").Parse(textTemplate))
	htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Parse(htmlTemplate))
)

// Render builds the alert subject and both bodies from the issue list.
// It is a pure function of its inputs.
func Render(issues []monitor.Issue, generatedAt time.Time) (Rendered, error) {
	view := reportView{
		GeneratedAt: generatedAt.Format(timeLayout),
		Count:       len(issues),
	}
	for i, issue := range issues {
		view.Issues = append(view.Issues, issueView{
			Index:   i + 1,
			Service: issue.Service,
			Status:  issue.Status,
			Message: issue.Message,
			Time:    issue.Timestamp.Format(timeLayout),
		})
	}

	var text strings.Builder
	if err := textTmpl.Execute(&text, view); err != nil {
		return Rendered{}, fmt.Errorf("render text body: %w", err)
	}

	var html strings.Builder
	if err := htmlTmpl.Execute(&html, view); err != nil {
		return Rendered{}, fmt.Errorf("render html body: %w", err)
	}

	return Rendered{
		Subject: fmt.Sprintf("Kafka Services Alert - %d Issue(s) Detected", len(issues)),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
