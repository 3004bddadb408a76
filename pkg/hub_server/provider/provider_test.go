package provider_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/provider"
	"github.com/stretchr/testify/suite"
)

type ProviderTestSuite struct {
	suite.Suite
	ctx    context.Context
	mux    *http.ServeMux
	server *httptest.Server
}

func TestProvider(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}

func (s *ProviderTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
}

func (s *ProviderTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ProviderTestSuite) cloudConnection() model.Connection {
	return model.Connection{
		ID:            "wac_1",
		Provider:      model.ProviderCloudAPI,
		Status:        model.ConnectionConnected,
		PhoneNumberID: "1098765432",
		AccessToken:   "EAAG-token",
	}
}

func (s *ProviderTestSuite) uazConnection() model.Connection {
	return model.Connection{
		ID:          "wac_2",
		Provider:    model.ProviderUazAPI,
		Status:      model.ConnectionConnected,
		UazAPIURL:   s.server.URL + "/",
		UazAPIToken: "uaz-token",
	}
}

func (s *ProviderTestSuite) TestNormalizePhone() {
	s.Equal("5511987654321", provider.NormalizePhone("(11) 98765-4321"))
	s.Equal("551133334444", provider.NormalizePhone("11 3333-4444"))
	s.Equal("5511987654321", provider.NormalizePhone("+55 11 98765-4321"))
	s.Equal("14155550100", provider.NormalizePhone("+1 415 555 0100"))
	s.Equal("4915123456789", provider.NormalizePhone(" +49 151 2345 6789"))
	s.Equal("5514155550100", provider.NormalizePhone("1 415 555 0100"))
	s.Equal("5511987654321", provider.CleanPhone("5511987654321@s.whatsapp.net"))
	s.Equal("120363000000", provider.CleanPhone("120363000000@g.us"))
}

func (s *ProviderTestSuite) TestCloudAPISendText() {
	s.mux.HandleFunc("/1098765432/messages", func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("Bearer EAAG-token", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		s.JSONEq(`{"messaging_product":"whatsapp","to":"5511987654321","type":"text","text":{"body":"Olá","preview_url":false}}`, string(body))
		_, _ = w.Write([]byte(`{"messaging_product":"whatsapp","messages":[{"id":"wamid.ABC"}]}`))
	})

	sender := provider.NewCloudAPISender(s.server.URL, 5*time.Second)
	res, err := sender.Send(s.ctx, s.cloudConnection(), provider.SendRequest{To: "11987654321", Body: "Olá"})
	s.Require().NoError(err)
	s.Equal(provider.SendResult{MessageID: "wamid.ABC", Provider: "cloud_api"}, res)
}

func (s *ProviderTestSuite) TestCloudAPISendDocument() {
	s.mux.HandleFunc("/1098765432/messages", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.JSONEq(`{"messaging_product":"whatsapp","to":"5511987654321","type":"document","document":{"link":"https://cdn.example.com/a.pdf","caption":"invoice","filename":"a.pdf"}}`, string(body))
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.DOC"}]}`))
	})

	sender := provider.NewCloudAPISender(s.server.URL, 5*time.Second)
	req := provider.SendRequest{To: "11987654321", Body: "invoice", MediaURL: "https://cdn.example.com/a.pdf", MimeType: "application/pdf", FileName: "a.pdf"}
	res, err := sender.Send(s.ctx, s.cloudConnection(), req)
	s.Require().NoError(err)
	s.Equal("wamid.DOC", res.MessageID)
}

func (s *ProviderTestSuite) TestCloudAPISendFailure() {
	s.mux.HandleFunc("/1098765432/messages", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Recipient phone number not in allowed list","code":131030}}`))
	})

	sender := provider.NewCloudAPISender(s.server.URL, 5*time.Second)
	_, err := sender.Send(s.ctx, s.cloudConnection(), provider.SendRequest{To: "11987654321", Body: "hi"})
	s.Require().ErrorIs(err, model.ErrSendFailed)
	s.Contains(err.Error(), "Recipient phone number not in allowed list")

	_, err = sender.Send(s.ctx, s.cloudConnection(), provider.SendRequest{To: "120363000000@g.us", Body: "hi"})
	s.ErrorIs(err, model.ErrSendFailed)

	conn := s.cloudConnection()
	conn.AccessToken = ""
	_, err = sender.Send(s.ctx, conn, provider.SendRequest{To: "11987654321", Body: "hi"})
	s.ErrorIs(err, model.ErrSendFailed)
}

func (s *ProviderTestSuite) TestUazAPISend() {
	s.mux.HandleFunc("/send/image", func(w http.ResponseWriter, r *http.Request) {
		s.Equal("uaz-token", r.Header.Get("Token"))
		body, _ := io.ReadAll(r.Body)
		s.JSONEq(`{"phone":"5511987654321","image":"https://cdn.example.com/p.jpg","caption":"look"}`, string(body))
		_, _ = w.Write([]byte(`{"key":{"id":"3EB0C767D26A"}}`))
	})
	s.mux.HandleFunc("/send/text", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	})

	sender := provider.NewUazAPISender(5 * time.Second)
	res, err := sender.Send(s.ctx, s.uazConnection(), provider.SendRequest{To: "5511987654321@s.whatsapp.net", Body: "look", MediaURL: "https://cdn.example.com/p.jpg", MediaType: "IMAGE"})
	s.Require().NoError(err)
	s.Equal(provider.SendResult{MessageID: "3EB0C767D26A", Provider: "uazapi"}, res)

	_, err = sender.Send(s.ctx, s.uazConnection(), provider.SendRequest{To: "5511987654321", Body: "hi"})
	s.Require().ErrorIs(err, model.ErrSendFailed)
	s.Contains(err.Error(), "invalid token")
}

func (s *ProviderTestSuite) TestRouter() {
	calls := map[string]int{}
	s.mux.HandleFunc("/1098765432/messages", func(w http.ResponseWriter, r *http.Request) {
		calls["cloud"]++
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	})
	s.mux.HandleFunc("/send/text", func(w http.ResponseWriter, r *http.Request) {
		calls["uaz"]++
		_, _ = w.Write([]byte(`{"id":"uaz.1"}`))
	})

	router := provider.NewRouter(provider.NewCloudAPISender(s.server.URL, time.Second), provider.NewUazAPISender(time.Second))
	req := provider.SendRequest{To: "11987654321", Body: "hi"}

	_, err := router.Send(s.ctx, s.cloudConnection(), req)
	s.Require().NoError(err)
	_, err = router.Send(s.ctx, s.uazConnection(), req)
	s.Require().NoError(err)

	legacy := s.uazConnection()
	legacy.Provider = "legacy"
	_, err = router.Send(s.ctx, legacy, req)
	s.Require().NoError(err)
	s.Equal(map[string]int{"cloud": 1, "uaz": 2}, calls)

	manual := model.Connection{Provider: model.ProviderManual, Status: model.ConnectionConnected}
	_, err = router.Send(s.ctx, manual, req)
	s.ErrorIs(err, model.ErrUnsupportedProvider)

	disconnected := s.cloudConnection()
	disconnected.Status = model.ConnectionWaitingQR
	_, err = router.Send(s.ctx, disconnected, req)
	s.ErrorIs(err, model.ErrConnectionNotConnected)
}

func (s *ProviderTestSuite) TestGraphSubscribeApp() {
	attempts := 0
	s.mux.HandleFunc("/waba_1/subscribed_apps", func(w http.ResponseWriter, r *http.Request) {
		attempts++
		s.Equal("Bearer token", r.Header.Get("Authorization"))
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	s.mux.HandleFunc("/waba_2/subscribed_apps", func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"missing permission","code":200}}`))
	})

	client := provider.NewGraphClient(s.server.URL, time.Second, provider.WithGraphRetry(3, time.Millisecond))
	s.Require().NoError(client.SubscribeApp(s.ctx, "waba_1", "token"))
	s.Equal(3, attempts)

	attempts = 0
	err := client.SubscribeApp(s.ctx, "waba_2", "token")
	s.Require().Error(err)
	s.Contains(err.Error(), "missing permission")
	s.Equal(1, attempts)

	s.Error(client.SubscribeApp(s.ctx, "", "token"))
}
