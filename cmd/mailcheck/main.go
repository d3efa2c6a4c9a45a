// Command mailcheck sends one plain-text message through the configured mail
// transport and exits non-zero when it is not accepted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"secureauth/internal/config"
	"secureauth/internal/implementations/email"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

func main() {
	to := flag.String("to", "", "recipient address")
	subject := flag.String("subject", "Test Email from SecureAuth", "message subject")
	flag.Parse()

	if *to == "" {
		fmt.Fprintln(os.Stderr, "error: -to must be set")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	transport, err := newTransport(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	err = transport.Send(context.Background(), email.Message{
		To:      *to,
		Subject: *subject,
		Body:    "Hello! This is a test email sent by SecureAuth.",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Email sent successfully!")
}

func newTransport(cfg *config.Config) (email.Transport, error) {
	if cfg.MailTransport != config.MailTransportSES {
		return email.NewSMTP(email.SMTPConfig{
			Host:     cfg.SmtpHost,
			Port:     cfg.SmtpPort,
			Username: cfg.SmtpUsername,
			Password: cfg.SmtpPassword,
			From:     cfg.MailFrom,
			Timeout:  cfg.MailTimeout,
		}), nil
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(cfg.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AwsAccessKey,
				cfg.AwsSecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return email.NewSES(awsCfg, cfg.MailFrom, cfg.MailTimeout), nil
}
