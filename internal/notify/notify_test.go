package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/horsh321/teem-server/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMailer captures messages and optionally fails.
type recordingMailer struct {
	sent []Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	m.sent = append(m.sent, msg)
	return m.err
}

func testMailConfig() config.MailConfig {
	return config.MailConfig{
		FromAddress: "no-reply@teem.store",
		FromName:    "Teem",
		ProductName: "Teem",
		ClientURL:   "https://teem.store",
	}
}

func TestNotifier_Notify(t *testing.T) {
	tests := []struct {
		name        string
		mailerErr   error
		wantSuccess bool
		wantMessage string
	}{
		{name: "Sent", wantSuccess: true, wantMessage: "Email sent successfully"},
		{name: "Mailer failure is reported, not returned", mailerErr: errors.New("smtp down"), wantSuccess: false, wantMessage: "Failed to send email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &recordingMailer{err: tt.mailerErr}
			n := NewNotifier(mailer, testMailConfig(), zerolog.Nop())

			res := n.Notify(context.Background(), KindOrderCreated,
				Address{Name: "ada", Email: "ada@example.com"},
				Data{OrderID: "o-1", Total: "2095.00"})

			assert.Equal(t, tt.wantSuccess, res.Success)
			assert.Equal(t, tt.wantMessage, res.Message)
			require.Len(t, mailer.sent, 1)

			msg := mailer.sent[0]
			assert.Equal(t, "You created an order", msg.Subject)
			assert.Equal(t, "ada@example.com", msg.To.Email)
			assert.Equal(t, "no-reply@teem.store", msg.From.Email)
			assert.Contains(t, msg.HTML, "Your order o-1 was successfully created. You are to pay #2095.00")
			assert.Contains(t, msg.Text, "Hi ada,")
		})
	}
}

func TestNotifier_SendIsStrict(t *testing.T) {
	mailerErr := errors.New("rejected")
	n := NewNotifier(&recordingMailer{err: mailerErr}, testMailConfig(), zerolog.Nop())

	err := n.Send(context.Background(), KindPasswordReset, Address{Name: "ada", Email: "ada@example.com"},
		Data{Link: "https://teem.store/reset/abc"})

	assert.ErrorIs(t, err, mailerErr)
	assert.True(t, KindPasswordReset.Strict())
	assert.True(t, KindLoginLink.Strict())
	assert.False(t, KindOrderCreated.Strict())
}

func TestNotifier_KindMustMatchPath(t *testing.T) {
	to := Address{Name: "ada", Email: "ada@example.com"}

	t.Run("best effort kind refused by Send", func(t *testing.T) {
		mailer := &recordingMailer{}
		n := NewNotifier(mailer, testMailConfig(), zerolog.Nop())

		err := n.Send(context.Background(), KindOrderCreated, to, Data{OrderID: "o-1"})

		assert.ErrorIs(t, err, ErrWrongPath)
		assert.Empty(t, mailer.sent)
	})

	t.Run("strict kind refused by Notify", func(t *testing.T) {
		mailer := &recordingMailer{}
		n := NewNotifier(mailer, testMailConfig(), zerolog.Nop())

		res := n.Notify(context.Background(), KindLoginLink, to, Data{Link: "https://teem.store/login/x"})

		assert.False(t, res.Success)
		assert.Empty(t, mailer.sent)
	})

	t.Run("strict kind sent by Send", func(t *testing.T) {
		mailer := &recordingMailer{}
		n := NewNotifier(mailer, testMailConfig(), zerolog.Nop())

		require.NoError(t, n.Send(context.Background(), KindLoginLink, to, Data{Link: "https://teem.store/login/x"}))
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "Your login code", mailer.sent[0].Subject)
	})
}

func TestNotifier_UnknownKind(t *testing.T) {
	mailer := &recordingMailer{}
	n := NewNotifier(mailer, testMailConfig(), zerolog.Nop())

	res := n.Notify(context.Background(), Kind("nope"), Address{Email: "a@b.c"}, Data{})

	assert.False(t, res.Success)
	assert.Empty(t, mailer.sent)
}

func TestRender_Templates(t *testing.T) {
	tests := []struct {
		kind    Kind
		data    Data
		subject string
		intro   string
		button  string
	}{
		{kind: KindPaymentReceived, data: Data{OrderID: "o-1", Reference: "PSK-9"}, subject: "Payment received", intro: "reference id: PSK-9.", button: "Visit"},
		{kind: KindPaymentReceived, data: Data{OrderID: "o-1"}, subject: "Payment received", intro: "reference id: o-1.", button: "Visit"},
		{kind: KindOrderDelivered, data: Data{OrderID: "o-2"}, subject: "Order fulfillment", intro: "delivered your order with reference id: o-2.", button: "Visit"},
		{kind: KindMerchantCreated, data: Data{MerchantName: "Shoe Hub", MerchantCode: "SH1"}, subject: "Start selling", intro: "Your merchant code is SH1.", button: "Visit"},
		{kind: KindWelcome, subject: "New user registration", intro: "Welcome to Teem!", button: "Visit"},
		{kind: KindLoginLink, data: Data{Link: "https://teem.store/login/x"}, subject: "Your login code", intro: "expires in 5 minutes", button: "Quick Login"},
		{kind: KindPasswordReset, subject: "Password recovery link", intro: "reset your password", button: "Reset password"},
		{kind: KindPasswordChanged, subject: "Password update", intro: "successfully changed your password", button: "Visit"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			r, err := render(tt.kind, "ada", tt.data, "Teem", "https://teem.store")

			require.NoError(t, err)
			assert.Equal(t, tt.subject, r.Subject)
			assert.Contains(t, r.HTML, tt.intro)
			assert.Contains(t, r.HTML, tt.button)
			assert.Contains(t, r.Text, tt.intro)
		})
	}
}

func TestRender_EscapesUserInput(t *testing.T) {
	r, err := render(KindWelcome, `<script>alert(1)</script>`, Data{}, "Teem", "https://teem.store")

	require.NoError(t, err)
	assert.NotContains(t, r.HTML, "<script>")
	assert.Contains(t, r.HTML, "&lt;script&gt;")
	assert.Contains(t, r.HTML, `href="https://teem.store"`)
}

func TestSendGridMailer_Send(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody map[string]interface{}
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	mailer := NewSendGridMailer("SG.test", server.URL, zerolog.Nop())

	err := mailer.Send(context.Background(), Message{
		From:    Address{Name: "Teem", Email: "no-reply@teem.store"},
		To:      Address{Name: "ada", Email: "ada@example.com"},
		Subject: "Payment received",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	})

	require.NoError(t, err)
	assert.Equal(t, "/v3/mail/send", gotPath)
	assert.Equal(t, "Bearer SG.test", gotAuth)
	assert.Equal(t, "Payment received", gotBody["subject"])
}

func TestSendGridMailer_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer server.Close()

	mailer := NewSendGridMailer("SG.bad", server.URL, zerolog.Nop())

	err := mailer.Send(context.Background(), Message{To: Address{Email: "ada@example.com"}, Subject: "x", Text: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestLogMailer(t *testing.T) {
	assert.NoError(t, NewLogMailer(zerolog.Nop()).Send(context.Background(), Message{Subject: "x"}))
}
