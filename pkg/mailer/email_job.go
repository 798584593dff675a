package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Template selects a known template rendered worker-side; Text/HTML are used
// as-is when no template is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}
