package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestNewMailer(t *testing.T) {
	tests := []struct {
		name    string
		config  MailerConfig
		wantErr bool
		wantSES bool
	}{
		{name: "noop", config: MailerConfig{Provider: "noop"}},
		{name: "empty provider", config: MailerConfig{}},
		{name: "unknown provider falls back to noop", config: MailerConfig{Provider: "carrier-pigeon"}},
		{
			name: "ses",
			config: MailerConfig{
				Provider:    "ses",
				FromAddress: "events@summits.example",
				SES:         SESConfig{Region: "eu-west-1", AccessKeyID: "id", SecretAccessKey: "secret"},
			},
			wantSES: true,
		},
		{name: "ses without credentials", config: MailerConfig{Provider: "ses", FromAddress: "events@summits.example"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMailer(tt.config, testLogger)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, isSES := m.(*sesMailer)
			assert.Equal(t, tt.wantSES, isSES)
		})
	}
}

func TestSESMailer_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("builds message with both bodies", func(t *testing.T) {
		client := &fakeSES{}
		m := &sesMailer{client: client, fromAddress: "events@summits.example", fromName: "Summits", logger: testLogger}

		require.NoError(t, m.Send(ctx, "sam@corp.example", "Hi", "<p>Hi</p>", "Hi"))
		require.NotNil(t, client.input)
		assert.Equal(t, "Summits <events@summits.example>", aws.ToString(client.input.Source))
		assert.Equal(t, []string{"sam@corp.example"}, client.input.Destination.ToAddresses)
		assert.Equal(t, "<p>Hi</p>", aws.ToString(client.input.Message.Body.Html.Data))
		assert.Equal(t, "Hi", aws.ToString(client.input.Message.Body.Text.Data))
	})

	t.Run("text only", func(t *testing.T) {
		client := &fakeSES{}
		m := &sesMailer{client: client, fromAddress: "events@summits.example", logger: testLogger}

		require.NoError(t, m.Send(ctx, "sam@corp.example", "Hi", "", "Hi"))
		assert.Equal(t, "events@summits.example", aws.ToString(client.input.Source))
		assert.Nil(t, client.input.Message.Body.Html)
	})

	t.Run("client error", func(t *testing.T) {
		m := &sesMailer{client: &fakeSES{err: errors.New("throttled")}, fromAddress: "events@summits.example", logger: testLogger}
		err := m.Send(ctx, "sam@corp.example", "Hi", "", "Hi")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "throttled")
	})
}
