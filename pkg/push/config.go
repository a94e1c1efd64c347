package push

// APNSConfig holds Apple Push Notification service credentials.
// Token-based auth (a .p8 signing key) is used rather than certificates so
// a single key covers all app environments.
type APNSConfig struct {
	KeyPath string `env:"APNS_KEY_PATH,required"`
	KeyID   string `env:"APNS_KEY_ID,required"`
	TeamID  string `env:"APNS_TEAM_ID,required"`
	Topic   string `env:"APNS_TOPIC,required"` // App bundle identifier
	Sandbox bool   `env:"APNS_SANDBOX" envDefault:"false"`
}

// FCMConfig holds Firebase Cloud Messaging credentials.
type FCMConfig struct {
	CredentialsFile string `env:"FCM_CREDENTIALS_FILE,required"`
}
