package facebook

// LeadEventInput é o que o caso de uso conhece; o client converte para o formato da Graph API.
type LeadEventInput struct {
	EventID         string  `json:"event_id"`
	EventTime       int64   `json:"event_time"`
	EventSourceURL  string  `json:"event_source_url,omitempty"`
	Email           string  `json:"email,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	FirstName       string  `json:"first_name,omitempty"`
	LastName        string  `json:"last_name,omitempty"`
	ClientIPAddress string  `json:"client_ip_address,omitempty"`
	ClientUserAgent string  `json:"client_user_agent,omitempty"`
	ContentName     string  `json:"content_name,omitempty"`
	ContentCategory string  `json:"content_category,omitempty"`
	Value           float64 `json:"value"`
	Currency        string  `json:"currency,omitempty"`
}

type eventsRequest struct {
	Data          []serverEvent `json:"data"`
	TestEventCode string        `json:"test_event_code,omitempty"`
}

type serverEvent struct {
	EventName      string      `json:"event_name"`
	EventTime      int64       `json:"event_time"`
	EventID        string      `json:"event_id,omitempty"`
	EventSourceURL string      `json:"event_source_url,omitempty"`
	ActionSource   string      `json:"action_source"`
	UserData       *userData   `json:"user_data,omitempty"`
	CustomData     *customData `json:"custom_data,omitempty"`
}

type userData struct {
	Em              []string `json:"em,omitempty"`
	Ph              []string `json:"ph,omitempty"`
	Fn              []string `json:"fn,omitempty"`
	Ln              []string `json:"ln,omitempty"`
	ClientIPAddress string   `json:"client_ip_address,omitempty"`
	ClientUserAgent string   `json:"client_user_agent,omitempty"`
}

func (u userData) empty() bool {
	return len(u.Em) == 0 && len(u.Ph) == 0 && len(u.Fn) == 0 && len(u.Ln) == 0 &&
		u.ClientIPAddress == "" && u.ClientUserAgent == ""
}

type customData struct {
	Currency        string   `json:"currency,omitempty"`
	Value           *float64 `json:"value,omitempty"`
	ContentName     string   `json:"content_name,omitempty"`
	ContentCategory string   `json:"content_category,omitempty"`
}

type EventsResponse struct {
	EventsReceived int `json:"events_received"`
	Messages       []struct {
		ID    string `json:"id"`
		Error *struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Code    int    `json:"code"`
		} `json:"error"`
	} `json:"messages"`
	FBTraceID string `json:"fbtrace_id"`
}
