package usecase

import "github.com/digiwolf/leads/internal/entity"

type SubmitLeadInput struct {
	Name                string `json:"name"`
	Phone               string `json:"phone"`
	Email               string `json:"email,omitempty"`
	Category            string `json:"category"`
	BusinessDescription string `json:"businessDescription,omitempty"`
	Browser             string `json:"browser,omitempty"`
	UserAgent           string `json:"userAgent,omitempty"`
	PhoneModel          string `json:"phoneModel,omitempty"`
	EventSourceURL      string `json:"eventSourceUrl,omitempty"`

	// Preenchidos pelo handler a partir dos headers.
	ClientIP         string `json:"-"`
	RequestUserAgent string `json:"-"`
}

type AbandonedLeadInput struct {
	Name                string `json:"name,omitempty"`
	Phone               string `json:"phone"`
	Email               string `json:"email,omitempty"`
	Category            string `json:"category,omitempty"`
	BusinessDescription string `json:"businessDescription,omitempty"`
	Browser             string `json:"browser,omitempty"`
	UserAgent           string `json:"userAgent,omitempty"`
	PhoneModel          string `json:"phoneModel,omitempty"`
}

type SubmitLeadOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	// Upgraded indica que um lead abandonado foi reaproveitado.
	Upgraded bool `json:"-"`
	// Created é false quando o abandono caiu na janela de recência.
	Created bool `json:"-"`
}

type LeadStats struct {
	Total      int                    `json:"total"`
	Abandoned  int                    `json:"abandoned"`
	Active     int                    `json:"active"`
	ByCategory []entity.CategoryCount `json:"byCategory"`
	ByBrowser  []entity.BrowserCount  `json:"byBrowser"`
	ByTime     TimeBuckets            `json:"byTime"`
}

type TimeBuckets struct {
	Today     int `json:"today"`
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
}
