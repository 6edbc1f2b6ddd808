package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"google.golang.org/api/option"

	"github.com/thebar-catering/thebar-site/internal/archive"
	appconfig "github.com/thebar-catering/thebar-site/internal/config"
	"github.com/thebar-catering/thebar-site/internal/notify"
	"github.com/thebar-catering/thebar-site/internal/sheets"
	"github.com/thebar-catering/thebar-site/internal/submissions"
	"github.com/thebar-catering/thebar-site/pkg/logging"
)

// Email provider names accepted in EMAIL_PROVIDER.
const (
	EmailProviderAuto     = "auto"
	EmailProviderSendGrid = "sendgrid"
	EmailProviderSES      = "ses"
	EmailProviderStub     = "stub"
)

// BuildEmailSender picks the email backend. sesClient may be nil when AWS is
// not configured. The returned provider name is empty when email is disabled.
func BuildEmailSender(cfg *appconfig.Config, sesClient notify.SESAPI, logger *logging.Logger) (notify.EmailSender, string) {
	if cfg == nil {
		return nil, ""
	}
	if logger == nil {
		logger = logging.Default()
	}

	sendgrid := func() (notify.EmailSender, string) {
		if s := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); s != nil {
			return s, EmailProviderSendGrid
		}
		return nil, ""
	}
	ses := func() (notify.EmailSender, string) {
		if strings.TrimSpace(cfg.SESFromEmail) == "" {
			return nil, ""
		}
		if s := notify.NewSESSender(sesClient, notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger); s != nil {
			return s, EmailProviderSES
		}
		return nil, ""
	}

	switch cfg.EmailProvider {
	case EmailProviderSendGrid:
		return sendgrid()
	case EmailProviderSES:
		return ses()
	case EmailProviderStub:
		return notify.NewStubEmailSender(logger), EmailProviderStub
	}

	if sender, name := sendgrid(); sender != nil {
		return sender, name
	}
	if sender, name := ses(); sender != nil {
		return sender, name
	}
	if cfg.Env != "production" {
		return notify.NewStubEmailSender(logger), EmailProviderStub
	}
	return nil, ""
}

// BuildNotifiers assembles the operator notification channels: the email
// notification and, when a sheet is configured, the Google Sheets mirror.
func BuildNotifiers(ctx context.Context, cfg *appconfig.Config, email notify.EmailSender, loc *time.Location, logger *logging.Logger, sheetOpts ...option.ClientOption) ([]submissions.Notifier, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	var notifiers []submissions.Notifier
	if svc := notify.NewService(email, notify.Config{To: cfg.NotifyEmail, Location: loc}, logger); svc != nil {
		notifiers = append(notifiers, svc)
	}

	if strings.TrimSpace(cfg.GoogleSheetID) != "" {
		if path := strings.TrimSpace(cfg.GoogleCredentialsPath); path != "" {
			sheetOpts = append([]option.ClientOption{option.WithCredentialsFile(path)}, sheetOpts...)
		}
		appender, err := sheets.New(ctx, sheets.Config{
			SpreadsheetID: cfg.GoogleSheetID,
			Range:         cfg.GoogleSheetRange,
			Location:      loc,
		}, logger, sheetOpts...)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: sheets: %w", err)
		}
		if appender != nil {
			notifiers = append(notifiers, appender)
		}
	}
	return notifiers, nil
}

// BuildExportArchiver returns the S3 export archive, or nil when no bucket is
// configured.
func BuildExportArchiver(cfg *appconfig.Config, s3Client archive.S3API, logger *logging.Logger) submissions.ExportArchiver {
	if cfg == nil {
		return nil
	}
	if store := archive.NewStore(s3Client, cfg.ExportArchiveBucket, logger); store != nil {
		return store
	}
	return nil
}

// AWSClients are the AWS service clients the server may use.
type AWSClients struct {
	S3  *s3.Client
	SES *sesv2.Client
}

// BuildAWSClients creates the S3 and SES clients. Path-style S3 addressing is
// used when an endpoint override (LocalStack) is set.
func BuildAWSClients(awsCfg aws.Config, cfg *appconfig.Config) AWSClients {
	pathStyle := cfg != nil && cfg.AWSEndpointOverride != ""
	return AWSClients{
		S3: s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.UsePathStyle = pathStyle
		}),
		SES: sesv2.NewFromConfig(awsCfg),
	}
}
