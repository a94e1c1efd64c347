package email

// Config holds email transport configuration.
// Tokens are optional to support development environments where outbound
// email is written to disk instead of sent. SenderEmail establishes the
// sender identity for all outbound notification emails.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	ReplyToEmail         string `env:"REPLY_TO_EMAIL"`
	MessageStream        string `env:"POSTMARK_MESSAGE_STREAM" envDefault:"notifications"`
}
