package mailer

// Config holds link delivery configuration. Postmark tokens are optional to
// support development environments where the Dev sender is used instead.
// SenderEmail establishes the sender identity for all outbound emails;
// SupportEmail, when set, becomes the reply-to address.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL"`
	ProductName          string `env:"PRODUCT_NAME" envDefault:"our app"`
}
