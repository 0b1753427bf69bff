package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// MailChecker checks the notification mailer's availability.
type MailChecker interface {
	HealthCheck(ctx context.Context) error
}
