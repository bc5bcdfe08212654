package facebook

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/digiwolf/leads/internal/infra/logger"
	"github.com/digiwolf/leads/internal/infra/metrics"
)

const (
	DefaultBaseURL = "https://graph.facebook.com/v21.0"
	EventNameLead  = "Lead"
	ActionWebsite  = "website"
)

var ErrNotConfigured = errors.New("facebook conversion api não configurada")

type Client struct {
	baseURL       string
	pixelID       string
	accessToken   string
	testEventCode string
	http          *http.Client
}

func NewClient(pixelID, accessToken, testEventCode string) *Client {
	return &Client{
		baseURL:       DefaultBaseURL,
		pixelID:       pixelID,
		accessToken:   accessToken,
		testEventCode: testEventCode,
		http:          &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL troca o endpoint da Graph API (usado nos testes com httptest).
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

func (c *Client) Configured() bool {
	return c != nil && c.pixelID != "" && c.accessToken != ""
}

// SendLeadEvent envia um evento "Lead" server-side. Dados pessoais vão com hash SHA-256.
func (c *Client) SendLeadEvent(ctx context.Context, input LeadEventInput) error {
	_, err := c.sendEvent(ctx, buildLeadEvent(input))
	if err != nil {
		metrics.RecordIntegrationError("facebook")
		metrics.RecordConversionEvent(metrics.OutcomeFailed)
		return err
	}
	metrics.RecordConversionEvent(metrics.OutcomeSent)
	return nil
}

func buildLeadEvent(input LeadEventInput) serverEvent {
	eventTime := input.EventTime
	if eventTime == 0 {
		eventTime = time.Now().Unix()
	}

	ud := userData{
		ClientIPAddress: input.ClientIPAddress,
		ClientUserAgent: input.ClientUserAgent,
	}
	if v := HashValue(input.Email); v != "" {
		ud.Em = []string{v}
	}
	if v := HashValue(input.Phone); v != "" {
		ud.Ph = []string{v}
	}
	if v := HashValue(input.FirstName); v != "" {
		ud.Fn = []string{v}
	}
	if v := HashValue(input.LastName); v != "" {
		ud.Ln = []string{v}
	}

	value := input.Value
	cd := &customData{
		Currency:        input.Currency,
		Value:           &value,
		ContentName:     input.ContentName,
		ContentCategory: input.ContentCategory,
	}

	event := serverEvent{
		EventName:      EventNameLead,
		EventTime:      eventTime,
		EventID:        input.EventID,
		EventSourceURL: input.EventSourceURL,
		ActionSource:   ActionWebsite,
		CustomData:     cd,
	}
	if !ud.empty() {
		event.UserData = &ud
	}
	return event
}

func (c *Client) sendEvent(ctx context.Context, event serverEvent) (*EventsResponse, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	payload := eventsRequest{
		Data:          []serverEvent{event},
		TestEventCode: c.testEventCode,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar json do evento: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/events?access_token=%s",
		c.baseURL, url.PathEscape(c.pixelID), url.QueryEscape(c.accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro na conexão com a conversion api: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Log.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Str("event_id", event.EventID).
			Msg("facebook conversion api rejeitou o evento")
		return nil, fmt.Errorf("conversion api rejeitou (status %d): %s", resp.StatusCode, string(body))
	}

	var result EventsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("erro ao ler resposta da conversion api: %w", err)
	}

	logger.Log.Info().
		Str("event_id", event.EventID).
		Int("events_received", result.EventsReceived).
		Str("fbtrace_id", result.FBTraceID).
		Msg("evento Lead enviado para o facebook")

	return &result, nil
}

// HashValue normaliza (trim + lowercase) e aplica SHA-256. Vazio continua vazio.
func HashValue(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
