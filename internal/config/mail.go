package config

type MailEncryption string

const (
	MailEncryptionNone     MailEncryption = "none"
	MailEncryptionTLS      MailEncryption = "tls"
	MailEncryptionStartTLS MailEncryption = "starttls"
)

type MailAuthType string

const (
	MailAuthPlain   MailAuthType = "plain"
	MailAuthLogin   MailAuthType = "login"
	MailAuthCramMD5 MailAuthType = "crammd5"
)

// MailConfig contains the SMTP settings for outgoing notification mails.
// Mail notifications are disabled if no host is configured.
type MailConfig struct {
	Host           string         `yaml:"host"`
	Port           int            `yaml:"port"`
	Encryption     MailEncryption `yaml:"encryption"`
	CertValidation bool           `yaml:"cert_check"`
	Username       string         `yaml:"user"`
	Password       string         `yaml:"pass"`
	AuthType       MailAuthType   `yaml:"auth"`

	From string `yaml:"from"`
}
