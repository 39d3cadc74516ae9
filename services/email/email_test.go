package emailsvc

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/tests"
)

func digestMessage() *core.EmailMessage {
	return &core.EmailMessage{
		To:           []mail.Address{{Name: "Ann", Address: "ann@test.io"}},
		Cc:           []mail.Address{{Address: "tutor@test.io"}},
		Subject:      "Your week ahead",
		TemplateName: "digest",
		TemplateData: map[string]interface{}{
			"Until": "Mon, Mar 18",
			"GPA":   3.25,
			"Stats": map[string]int{"Pending": 2, "Overdue": 0},
			"Items": []map[string]string{{"Label": "Due Tomorrow", "Title": "Essay", "Course": "Lit", "Priority": "high"}},
		},
	}
}

func TestConsoleService_Send(t *testing.T) {
	testutil.ParseTemplates(t)
	out := new(bytes.Buffer)
	svc := NewConsoleService(testutil.NewConfig(), testutil.NewLogger(), out)

	require.NoError(t, svc.Send(digestMessage()))

	body := out.String()
	assert.Contains(t, body, "Subject: [StudySync] Your week ahead\r\n")
	assert.Contains(t, body, "To: \"Ann\" <ann@test.io>\r\n")
	assert.Contains(t, body, "CC: <tutor@test.io>\r\n")
	assert.Contains(t, body, "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, body, "- [Due Tomorrow] Essay (Lit) - priority high")
	assert.Contains(t, body, "Content-Type: text/html; charset=utf-8")
	assert.Contains(t, body, "GPA: <strong>3.25</strong>")

	sent := svc.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Your week ahead", sent[0].Subject)
}

func TestConsoleService_Send_skips(t *testing.T) {
	out := new(bytes.Buffer)
	svc := NewConsoleService(testutil.NewConfig(), testutil.NewLogger(), out)

	// nothing to say, or nobody to say it to
	require.NoError(t, svc.Send(&core.EmailMessage{To: []mail.Address{{Address: "a@test.io"}}}))
	require.NoError(t, svc.Send(&core.EmailMessage{BodyStr: "hello"}))
	assert.Empty(t, out.String())
	assert.Empty(t, svc.Sent())

	err := svc.Send(&core.EmailMessage{To: []mail.Address{{Address: "a@test.io"}}, TemplateName: "lol"})
	assert.EqualError(t, err, "rendering email: lol: email template not found")
}

func TestConsoleService_SendMessages(t *testing.T) {
	svc := NewConsoleService(testutil.NewConfig(), testutil.NewLogger(), io.Discard)
	svc.SendMessages(
		&core.EmailMessage{To: []mail.Address{{Address: "a@test.io"}}, BodyStr: "one"},
		&core.EmailMessage{To: []mail.Address{{Address: "b@test.io"}}, BodyStr: "two"},
	)
	assert.Eventually(t, func() bool { return len(svc.Sent()) == 2 }, time.Second, 10*time.Millisecond)
}

func TestSendgridService_Send(t *testing.T) {
	testutil.ParseTemplates(t)

	var got struct {
		From struct {
			Email string `json:"email"`
		} `json:"from"`
		Personalizations []struct {
			To      []struct{ Email string } `json:"to"`
			Subject string                   `json:"subject"`
		} `json:"personalizations"`
		Content []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"content"`
	}
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Path != endpoint {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	oldHost := host
	host = srv.URL
	defer func() { host = oldHost }()

	conf := testutil.NewConfig()
	conf.SendgridAPIKey = "sg-key"
	svc := NewSendgridService(conf, testutil.NewLogger())

	require.NoError(t, svc.Send(digestMessage()))
	assert.Equal(t, "Bearer sg-key", auth)
	assert.Equal(t, "noreply@localhost", got.From.Email)
	require.Len(t, got.Personalizations, 1)
	assert.Equal(t, "[StudySync] Your week ahead", got.Personalizations[0].Subject)
	assert.Equal(t, "ann@test.io", got.Personalizations[0].To[0].Email)
	require.Len(t, got.Content, 2)
	assert.Equal(t, "text/plain", got.Content[0].Type)
	assert.Equal(t, "text/html", got.Content[1].Type)
}

func TestSendgridService_Send_error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	oldHost := host
	host = srv.URL
	defer func() { host = oldHost }()

	svc := NewSendgridService(testutil.NewConfig(), testutil.NewLogger())
	err := svc.Send(&core.EmailMessage{To: []mail.Address{{Address: "a@test.io"}}, BodyStr: "hi"})
	assert.EqualError(t, err, `sendgrid status 401: {"errors":[{"message":"bad key"}]}`)
}
